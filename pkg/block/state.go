// Package block implements the chain header (SystemState.Full), an
// in-memory history window (HistoryMap), transaction-body assembly
// (Builder, BodyBase), and the Merkle proof verification surface a block
// or light client checks a UTXO/kernel/shielded-TXO/state proof against.
package block

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/merkle"
	"github.com/aquila-chain/ledgercore/pkg/pow"
	"github.com/aquila-chain/ledgercore/pkg/rules"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// PoWProof is the mined proof-of-work payload attached to a header: a
// packed difficulty target, the solution nonce, and the opaque solver
// indices (Equihash-family or otherwise — the solver itself is out of
// scope, see pkg/pow).
type PoWProof struct {
	Difficulty uint32
	Nonce      uint64
	Indices    []byte
}

// State is a chain header — Block::SystemState::Full in the original.
// ChainWork accumulates total proof-of-work as an opaque 32-byte value
// rather than a big-integer type, matching this core's "opaque hash/point,
// no bignum dependency" stance (SPEC_FULL.md's wide-arithmetic design
// note); only equality/ordering on it is ever needed here.
type State struct {
	Height     txbase.Height
	Prev       ecc.Hash
	ChainWork  ecc.Hash
	Kernels    ecc.Hash
	Definition ecc.Hash
	Timestamp  uint64
	PoW        PoWProof
}

// ID identifies a State by (height, hash) — Block::SystemState::ID.
type ID struct {
	Height txbase.Height
	Hash   ecc.Hash
}

// Cmp gives States their canonical total order, matching
// Full::cmp's field order: height, kernels root, definition root, prev,
// chain-work, timestamp, packed difficulty, nonce, solver indices.
func (s State) Cmp(v State) txbase.Cmp {
	if c := txbase.CmpUint64(uint64(s.Height), uint64(v.Height)); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpBytes(s.Kernels[:], v.Kernels[:]); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpBytes(s.Definition[:], v.Definition[:]); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpBytes(s.Prev[:], v.Prev[:]); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpBytes(s.ChainWork[:], v.ChainWork[:]); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpUint64(s.Timestamp, v.Timestamp); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpUint64(uint64(s.PoW.Difficulty), uint64(v.PoW.Difficulty)); c != txbase.CmpEqual {
		return c
	}
	if c := txbase.CmpUint64(s.PoW.Nonce, v.PoW.Nonce); c != txbase.CmpEqual {
		return c
	}
	return txbase.CmpBytes(s.PoW.Indices, v.PoW.Indices)
}

// hashInternal composes s's header digest: height, prev, chain-work,
// kernels root, definition root, timestamp, packed difficulty, plus —
// starting at Fork2 — the enclosing fork's own checksum, so a header
// mined under a different parameter set can never collide with one mined
// under this chain's. When bTotal is set, the mined solution (indices,
// nonce) is folded in too, giving the "total" hash used for block
// identity; omitting it is what lets a miner grind nonce/indices without
// re-deriving the rest of the header — Full::get_HashInternal.
func (s State) hashInternal(r *rules.Rules, bTotal bool) ecc.Hash {
	o := ecc.NewOracle()
	o.WriteUint64(uint64(s.Height))
	o.WriteHash(s.Prev)
	o.WriteHash(s.ChainWork)
	o.WriteHash(s.Kernels)
	o.WriteHash(s.Definition)
	o.WriteUint64(s.Timestamp)
	o.WriteUint32(s.PoW.Difficulty)

	if iFork := r.FindFork(s.Height); iFork >= 2 {
		o.WriteHash(r.ForkHash(iFork))
	}

	if bTotal {
		o.WriteBytes(s.PoW.Indices)
		o.WriteUint64(s.PoW.Nonce)
	}

	return o.ReadHash()
}

// HashForPoW is the digest a miner grinds nonce/indices against —
// Full::get_HashForPoW.
func (s State) HashForPoW(r *rules.Rules) ecc.Hash {
	return s.hashInternal(r, false)
}

// Hash is s's full identity hash: the hard-coded Prehistoric constant at
// pre-genesis heights, otherwise the total header digest —
// Full::get_Hash.
func (s State) Hash(r *rules.Rules) ecc.Hash {
	if s.Height < txbase.HeightGenesis {
		return r.Prehistoric
	}
	return s.hashInternal(r, true)
}

// IsSane checks the minimal structural invariant every header must
// satisfy: height at least genesis, and the genesis header's Prev
// pinned to Prehistoric — Full::IsSane.
func (s State) IsSane(r *rules.Rules) bool {
	if s.Height < txbase.HeightGenesis {
		return false
	}
	if s.Height == txbase.HeightGenesis && s.Prev != r.Prehistoric {
		return false
	}
	return true
}

// IsNext reports whether next directly follows s: one greater in height,
// with next.Prev equal to s's own hash — Full::IsNext.
func (s State) IsNext(next State, r *rules.Rules) bool {
	if s.Height+1 != next.Height {
		return false
	}
	return next.Prev == s.Hash(r)
}

// NextPrefix advances s in place to the prefix of its successor: Prev set
// to s's own hash, Height incremented — Full::NextPrefix. The caller
// fills in the remaining fields (kernels/definition roots, timestamp,
// chain-work, PoW) before the result is a complete header.
func (s *State) NextPrefix(r *rules.Rules) {
	s.Prev = s.Hash(r)
	s.Height++
}

// ID returns s's (height, hash) identity — Full::get_ID.
func (s State) ID(r *rules.Rules) ID {
	return ID{Height: s.Height, Hash: s.Hash(r)}
}

// IsValidPoW reports whether e accepts s's mined proof, short-circuiting
// to true when Rules.FakePoW is set — Full::IsValidPoW.
func (s State) IsValidPoW(r *rules.Rules, e pow.Engine) bool {
	if r.FakePoW {
		return true
	}
	hv := s.HashForPoW(r)
	return e.IsValid(hv[:], s.Height, s.PoW.Indices)
}

// GeneratePoW mines a solution for s using e, storing the result in
// s.PoW.Indices — Full::GeneratePoW.
func (s *State) GeneratePoW(r *rules.Rules, e pow.Engine, cancel pow.Cancel) bool {
	hv := s.HashForPoW(r)
	proof, ok := e.Solve(hv[:], s.Height, cancel)
	if ok {
		s.PoW.Indices = proof
	}
	return ok
}

// IsValidProofToDefinition checks a flat Merkle path from hv up to s's
// definition root — Element::IsValidProofToDefinition.
func (s State) IsValidProofToDefinition(hv ecc.Hash, p merkle.Proof) bool {
	return merkle.Interpret(hv, p) == s.Definition
}
