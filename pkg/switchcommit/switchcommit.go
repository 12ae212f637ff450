// Package switchcommit implements the switch commitment: the value-bound
// blinding tweak every Input/Output commitment is built from, plus the
// asset-generator derivation (HGenFromAID) confidential (non-default)
// assets commit against.
package switchcommit

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/keys"
)

// SwitchCommitment binds a value generator — either the default H (asset
// id zero) or an asset-specific generator derived by HGenFromAID — to the
// key derivation performed by Create/Recover.
type SwitchCommitment struct {
	hGen ecc.Point // Zero means "use the default H generator"
}

// New builds a SwitchCommitment for assetID. The zero Hash selects the
// default asset (native currency), whose value generator is ecc.H().
func New(assetID ecc.Hash) SwitchCommitment {
	return SwitchCommitment{hGen: HGenFromAID(assetID)}
}

// HGenFromAID derives the per-asset value generator by rejection-sampling
// an X coordinate from an Oracle seeded with the asset id, exactly as the
// original: absorb "a-id"+assetID once, then loop writing "a-gen" and
// reading a candidate X coordinate until it imports as a valid,
// non-identity point.
func HGenFromAID(assetID ecc.Hash) ecc.Point {
	if assetID.IsZero() {
		return ecc.Zero
	}
	o := ecc.NewOracle()
	o.WriteString("a-id")
	o.WriteHash(assetID)
	for i := 0; i < 1000; i++ {
		o.WriteString("a-gen")
		x := o.ReadHash()
		var enc [33]byte
		enc[0] = 0x02
		copy(enc[1:], x[:])
		if p, err := ecc.ImportNnz(enc); err == nil {
			return p
		}
	}
	panic("switchcommit: HGenFromAID failed to find a valid generator")
}

// valueGenerator resolves the generator AddValue commits value against.
func (sc SwitchCommitment) valueGenerator() ecc.Point {
	if sc.hGen.IsZero() {
		return ecc.H()
	}
	return sc.hGen
}

// AddValue folds v into comm along the resolved value generator.
func (sc SwitchCommitment) AddValue(comm ecc.Point, v uint64) ecc.Point {
	return comm.Add(sc.valueGenerator().Mul(ecc.ScalarFromUint64(v)))
}

// GetHash derives the commitment-derivation hash for kidv, dispatching on
// its scheme exactly as the original's SwitchCommitment::get_Hash:
//   - SchemeBB21 forces a V0 (legacy) hash of a copy of kidv coerced back
//     to SchemeV0 — the BB2.1 workaround.
//   - SchemeV0 hashes without the value (legacy, no anti-tamper binding).
//   - Anything newer (SchemeV1) binds the value into the hash so a
//     commitment cannot be tampered with for an unknown blinding factor.
func GetHash(kidv keys.IDV) ecc.Hash {
	switch kidv.Scheme {
	case keys.SchemeBB21:
		legacy := kidv
		legacy.Scheme = keys.SchemeV0
		return legacyHash(legacy)
	case keys.SchemeV0:
		return legacyHash(kidv)
	default:
		o := ecc.NewOracle()
		o.WriteString("kidv-1")
		o.WriteUint64(kidv.Idx)
		o.WriteUint32(uint32(kidv.Type))
		o.WriteUint32(kidv.SubIdx)
		o.WriteUint64(kidv.Value)
		return o.ReadHash()
	}
}

func legacyHash(kidv keys.IDV) ecc.Hash {
	o := ecc.NewOracle()
	o.WriteString("kidv-legacy")
	o.WriteUint64(kidv.Idx)
	o.WriteUint32(uint32(kidv.Type))
	o.WriteUint32(kidv.SubIdx)
	return o.ReadHash()
}

func getSk1(comm0, sk0J ecc.Point) ecc.Scalar {
	o := ecc.NewOracle()
	o.WritePoint(comm0)
	o.WritePoint(sk0J)
	return o.ReadScalar()
}

// createInternal is the shared body of Create/CreateWithCommitment,
// matching the original's CreateInternal(sk, comm, bComm, kdf, kidv).
func (sc SwitchCommitment) createInternal(kdf keys.IKdf, kidv keys.IDV, wantComm bool) (ecc.Scalar, ecc.Point) {
	hv := GetHash(kidv)
	sk := kdf.DeriveKeyHash(hv)

	comm := sk.BaseMul()
	comm = sc.AddValue(comm, kidv.Value)

	sk0J := ecc.J().Mul(sk)
	sk1 := getSk1(comm, sk0J)

	sk = sk.Add(sk1)
	if wantComm {
		comm = comm.Add(sk1.BaseMul())
	}
	return sk, comm
}

// Create derives kidv's blinding scalar without computing its commitment.
func (sc SwitchCommitment) Create(kdf keys.IKdf, kidv keys.IDV) ecc.Scalar {
	sk, _ := sc.createInternal(kdf, kidv, false)
	return sk
}

// CreateWithCommitment derives kidv's blinding scalar and its commitment.
func (sc SwitchCommitment) CreateWithCommitment(kdf keys.IKdf, kidv keys.IDV) (ecc.Scalar, ecc.Point) {
	return sc.createInternal(kdf, kidv, true)
}

// Recover reconstructs kidv's commitment from the public half of the KDF
// alone, without ever learning the blinding scalar. Used by
// Output.VerifyRecovered to confirm a recovered IDV actually produced the
// output's stored commitment.
func (sc SwitchCommitment) Recover(pkdf keys.IPKdf, kidv keys.IDV) ecc.Point {
	hv := GetHash(kidv)

	sk0J := pkdf.DerivePKeyJ(hv)
	res := pkdf.DerivePKeyG(hv)
	res = sc.AddValue(res, kidv.Value)

	sk1 := getSk1(res, sk0J)
	res = res.Add(sk1.BaseMul())
	return res
}
