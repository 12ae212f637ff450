package ecc

import (
	"sync"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// The three fixed generators used throughout the core:
//   - G: the standard secp256k1 base point, blinding-factor generator.
//   - J: a second, nothing-up-my-sleeve generator used by the switch
//     commitment's "sk0_J" tweak (SwitchCommitment.get_sk1).
//   - H: the default (asset id zero) value generator.
//
// G is the curve's canonical base point. J and H are derived the same way
// HGenFromAID derives a per-asset generator: hash a domain tag with the
// Oracle and rejection-sample an X coordinate until ImportNnz succeeds.
// This keeps the "nothing up my sleeve" property: nobody can know a
// discrete-log relation between G, J and H because each is independently
// hash-derived.

var (
	initGens sync.Once
	genG     Point
	genJ     Point
	genH     Point
	genHBig  Point
)

func hashDerivedGenerator(tag string) Point {
	o := NewOracle()
	o.WriteString(tag)
	for i := 0; i < 1000; i++ {
		o.WriteString("gen-try")
		hv := o.ReadHash()
		var enc [33]byte
		enc[0] = 0x02 // even-Y candidate; ImportNnz will reject invalid X anyway
		copy(enc[1:], hv[:])
		if p, err := ImportNnz(enc); err == nil {
			return p
		}
	}
	panic("ecc: generator derivation failed to find a valid point")
}

func ensureGenerators() {
	initGens.Do(func() {
		genG = basePoint()
		genJ = hashDerivedGenerator("ledgercore-gen-J")
		genH = hashDerivedGenerator("ledgercore-gen-H")
		genHBig = hashDerivedGenerator("ledgercore-gen-H-big")
	})
}

// G returns the blinding-factor generator (the curve's base point).
func G() Point { ensureGenerators(); return genG }

// J returns the switch-commitment tweak generator.
func J() Point { ensureGenerators(); return genJ }

// H returns the default (asset id zero) value generator.
func H() Point { ensureGenerators(); return genH }

// HBig returns the generator used for 128-bit coinbase amount totals that
// exceed a single Amount word (AmountBig.AddTo in the original).
func HBig() Point { ensureGenerators(); return genHBig }

func basePoint() Point {
	one := ScalarFromUint64(1)
	var r secp.JacobianPoint
	secp.ScalarBaseMultNonConst(&one.v, &r)
	return Point{j: r}
}
