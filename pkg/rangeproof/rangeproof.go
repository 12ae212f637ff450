// Package rangeproof defines the range-proof collaborator boundary:
// Public and Confidential proofs bind a commitment to a value without
// revealing more than the scheme allows. Bulletproof-style proving and
// verification are an explicit Non-goal of this core — these interfaces
// are the seam a real prover/verifier plugs into, and the reference
// adapter here only has to round-trip, not resist a malicious prover.
package rangeproof

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/keys"
)

// Seed parameterizes proof generation: the commitment's blinding scalar,
// the full key-identifier tuple being proven (not just its value), and an
// Oracle pre-seeded with the context the proof must bind to (asset id,
// incubation height, ...), per spec.md §6.
//
// RecoveryTag carries Output.GenerateSeedKid's output (a hash of the
// commitment mixed through the tag KDF's public-only derivation). Unlike
// Blind, it is identical whether the seed is built at Create time (real
// spending scalar) or Recover time (zero scalar, since recovery must work
// from the public tag KDF alone) — anything a Confidential adapter needs
// to reconstruct deterministically at both Create and Recover must be
// derived from RecoveryTag/AssetID, never from Blind.
type Seed struct {
	Blind       ecc.Scalar
	IDV         keys.IDV
	Oracle      *ecc.Oracle
	AssetID     ecc.Hash
	RecoveryTag ecc.Hash
}

// Public is a fully transparent range proof: the value is exposed
// alongside the proof, and verification only has to confirm the
// commitment actually commits to that value.
type Public interface {
	// Create produces a proof that commitment commits to value under seed.
	Create(seed Seed, value uint64, commitment ecc.Point) Public
	// IsValid reports whether the proof attests to value against commitment.
	IsValid(seed Seed, value uint64, commitment ecc.Point) bool
}

// Confidential is a value-hiding range proof: the value is never
// revealed, only that the committed value lies in the valid range.
// Recover allows the commitment's own owner (who knows the seed) to
// extract the full key-identifier tuple back out.
type Confidential interface {
	// Create produces a proof that commitment's value lies in range,
	// without revealing it.
	Create(seed Seed, commitment ecc.Point) Confidential
	// IsValid reports whether the proof is well-formed for commitment.
	IsValid(seed Seed, commitment ecc.Point) bool
	// Recover extracts the key-identifier tuple (index, type, sub-index,
	// value) back out, given the same seed the proof was created with.
	Recover(seed Seed) (kidv keys.IDV, ok bool)
}
