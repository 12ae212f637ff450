// Package merkle interprets the Merkle proof shapes this core's block
// layer verifies against: a flat path up to a known root (Interpret), and
// the Merkle Mountain Range interpretation a HardVerifier walks to fold a
// position in a growing, append-only forest up to its containing peak and
// then on to a final combined root (InterpretMmr/InterpretOnce).
package merkle

import "github.com/aquila-chain/ledgercore/pkg/ecc"

// Node is one step of a flat Merkle path: Hash is the sibling absorbed at
// this level, OnRight reports whether the hash being proven sits to the
// sibling's right (sibling first, then the running hash) or left.
type Node struct {
	OnRight bool
	Hash    ecc.Hash
}

// Proof is a flat path from a leaf up to a root.
type Proof []Node

func combine(onRight bool, sibling, hv ecc.Hash) ecc.Hash {
	o := ecc.NewOracle()
	o.WriteString("merkle-node")
	if onRight {
		o.WriteHash(sibling)
		o.WriteHash(hv)
	} else {
		o.WriteHash(hv)
		o.WriteHash(sibling)
	}
	return o.ReadHash()
}

// Interpret folds p's steps into hv, in order, returning the resulting
// root. Matches Merkle::Interpret(Hash&, const Proof&).
func Interpret(hv ecc.Hash, p Proof) ecc.Hash {
	for _, n := range p {
		hv = combine(n.OnRight, n.Hash, hv)
	}
	return hv
}

// HardProof is the sibling list a HardVerifier consumes left-to-right:
// first enough hashes to climb from a leaf to its containing MMR peak,
// then one hash per explicit InterpretOnce call used to bag that peak
// together with its neighbors. Matches Merkle::HardProof.
type HardProof []ecc.Hash

// HardVerifier walks a HardProof, mutating HV as each step is consumed.
// Callers seed HV with the leaf hash being proven, then call InterpretMmr
// followed by zero or more InterpretOnce calls per the specific proof
// shape (IsValidProofShieldedTxo, IsValidProofState), finishing with
// IsEnd to confirm every proof element was consumed. Matches
// Merkle::HardVerifier.
type HardVerifier struct {
	Proof HardProof
	HV    ecc.Hash

	idx int
}

// NewHardVerifier returns a HardVerifier over proof with HV left zero;
// the caller is expected to set HV before interpreting.
func NewHardVerifier(proof HardProof) *HardVerifier {
	return &HardVerifier{Proof: proof}
}

func (h *HardVerifier) next() (ecc.Hash, bool) {
	if h.idx >= len(h.Proof) {
		return ecc.Hash{}, false
	}
	v := h.Proof[h.idx]
	h.idx++
	return v, true
}

// IsEnd reports whether every element of Proof has been consumed.
func (h *HardVerifier) IsEnd() bool {
	return h.idx == len(h.Proof)
}

// InterpretOnce consumes one proof element and folds it into HV, with HV
// placed on the right (onRight true) or left (onRight false) of the pair.
// Returns false if the proof is exhausted.
func (h *HardVerifier) InterpretOnce(onRight bool) bool {
	sib, ok := h.next()
	if !ok {
		return false
	}
	h.HV = combine(onRight, sib, h.HV)
	return true
}

// mmrPeaks decomposes a forest of count leaves into its constituent
// perfect-binary-tree peaks, largest first, as (startLeaf, size) pairs —
// the standard Merkle Mountain Range peak decomposition: one peak per set
// bit of count, from the most significant bit down.
func mmrPeaks(count uint64) [][2]uint64 {
	var peaks [][2]uint64
	var start uint64
	for bit := uint(63); ; bit-- {
		size := uint64(1) << bit
		if count&size != 0 {
			peaks = append(peaks, [2]uint64{start, size})
			start += size
		}
		if bit == 0 {
			break
		}
	}
	return peaks
}

// InterpretMmr climbs from leaf position pos, in a forest of count
// leaves, to the root of the single perfect-binary peak containing pos,
// consuming one proof element per level. HV must already hold the leaf's
// own hash. Returns false if pos is out of range or the proof runs out
// before reaching the peak root.
func (h *HardVerifier) InterpretMmr(pos, count uint64) bool {
	if pos >= count {
		return false
	}

	for _, peak := range mmrPeaks(count) {
		start, size := peak[0], peak[1]
		if pos < start || pos >= start+size {
			continue
		}

		idx := pos - start
		for levelSize := size; levelSize > 1; levelSize /= 2 {
			onRight := idx%2 == 1
			if !h.InterpretOnce(onRight) {
				return false
			}
			idx /= 2
		}
		return true
	}
	return false
}
