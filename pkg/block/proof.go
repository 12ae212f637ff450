package block

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/merkle"
	"github.com/aquila-chain/ledgercore/pkg/rules"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// UtxoProof is a flat Merkle path from a spent output's commitment, at the
// height it was created, up to a state's definition root —
// Input::Proof.
type UtxoProof struct {
	CreateHeight txbase.Height
	Proof        merkle.Proof
}

// leafID is the UTXO tree's leaf identity: the creation height binds a
// commitment to the specific output it identifies even if the same
// commitment is reused (spend-then-recreate) — StateExtra::Full::get_ID.
func (p UtxoProof) leafID(comm ecc.Point) ecc.Hash {
	o := ecc.NewOracle()
	o.WriteString("utxo")
	o.WriteUint64(uint64(p.CreateHeight))
	o.WritePoint(comm)
	return o.ReadHash()
}

// IsValidProofUtxo checks a proof that comm was a UTXO at the state s
// describes. The proof's terminal step must not be a right-child — the
// original's "last node (history) should be at left" requirement, which
// rules out a proof that would otherwise also validate a not-yet-spent
// output as if it were historical — Element::IsValidProofUtxo.
func (s State) IsValidProofUtxo(comm ecc.Point, p UtxoProof) bool {
	if len(p.Proof) == 0 || p.Proof[len(p.Proof)-1].OnRight {
		return false
	}
	hv := p.leafID(comm)
	return s.IsValidProofToDefinition(hv, p.Proof)
}

// ShieldedTxoDescription identifies a shielded output within the shielded
// pool's own MMR: its serial public key, its commitment, and its
// position — ShieldedTxo::Description.
type ShieldedTxoDescription struct {
	SerialPub  ecc.Point
	Commitment ecc.Point
	ID         uint64
}

// Hash derives the description's leaf identity —
// ShieldedTxo::Description::get_Hash.
func (d ShieldedTxoDescription) Hash() ecc.Hash {
	o := ecc.NewOracle()
	o.WriteString("stxo")
	o.WritePoint(d.SerialPub)
	o.WritePoint(d.Commitment)
	o.WriteUint64(d.ID)
	return o.ReadHash()
}

// IsValidProofShieldedTxo checks a proof that d is a member of the
// shielded pool (nTotal entries deep) at s: an MMR climb to d's
// containing peak, then two fixed sibling foldings bagging the shielded
// pool's root together with the rest of the state definition —
// Element::IsValidProofShieldedTxo.
func (s State) IsValidProofShieldedTxo(d ShieldedTxoDescription, p merkle.HardProof, nTotal uint64) bool {
	hver := merkle.NewHardVerifier(p)
	hver.HV = d.Hash()

	return hver.InterpretMmr(d.ID, nTotal) &&
		hver.InterpretOnce(false) &&
		hver.InterpretOnce(false) &&
		hver.IsEnd() &&
		hver.HV == s.Definition
}

// KernelLongProof proves a kernel ID was included in an earlier state:
// Inner is the flat path from the kernel ID to that state's own kernels
// root, State is that earlier header, and Outer (consulted only if State
// isn't s itself) is the HardProof climbing from State's ID up to s's
// definition — TxKernel::LongProof.
type KernelLongProof struct {
	Inner merkle.Proof
	State State
	Outer merkle.HardProof
}

// IsValidProofKernel checks a LongProof for hvID against s: first that
// Inner actually reaches proof.State's kernels root, then either that
// proof.State is s itself, or that proof.State is an ancestor of s proved
// via Outer — Full::IsValidProofKernel.
func (s State) IsValidProofKernel(r *rules.Rules, hvID ecc.Hash, proof KernelLongProof) bool {
	if !proof.State.IsSane(r) {
		return false
	}

	hv := merkle.Interpret(hvID, proof.Inner)
	if hv != proof.State.Kernels {
		return false
	}

	if proof.State.Cmp(s) == txbase.CmpEqual {
		return true
	}
	if proof.State.Height > s.Height {
		return false
	}

	return s.IsValidProofState(r, proof.State.ID(r), proof.Outer)
}

// IsValidProofState checks a HardProof that the earlier state id is an
// ancestor of s: an MMR climb from id's height (relative to genesis) up
// to its containing peak in the forest of s's preceding states, then one
// more folding to reach s's definition root — Full::IsValidProofState.
func (s State) IsValidProofState(r *rules.Rules, id ID, proof merkle.HardProof) bool {
	if id.Height < txbase.HeightGenesis || id.Height >= s.Height {
		return false
	}

	hver := merkle.NewHardVerifier(proof)
	hver.HV = id.Hash

	return hver.InterpretMmr(uint64(id.Height-txbase.HeightGenesis), uint64(s.Height-txbase.HeightGenesis)) &&
		hver.InterpretOnce(true) &&
		hver.IsEnd() &&
		hver.HV == s.Definition
}
