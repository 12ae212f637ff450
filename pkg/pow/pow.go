// Package pow defines the proof-of-work collaborator boundary: Engine is
// consumed by pkg/block's SystemState.Full.IsValidPoW/GeneratePoW, never
// re-derived here. The actual PoW algorithm (Equihash-style or otherwise)
// is an explicit Non-goal of this core.
package pow

import "github.com/aquila-chain/ledgercore/pkg/txbase"

// Cancel lets a long-running Solve call be aborted early, matching the
// original's PoW::Cancel callback used by GeneratePoW.
type Cancel func() bool

// Engine mines and verifies proof-of-work over an opaque header digest,
// matching the original's PoW::Solve/IsValid signatures (digest bytes,
// block height, optional cancel callback for Solve).
type Engine interface {
	// Solve mines a proof for msg at height h, returning false if fnCancel
	// requested an abort before a solution was found.
	Solve(msg []byte, h txbase.Height, fnCancel Cancel) (proof []byte, ok bool)
	// IsValid checks proof against msg at height h.
	IsValid(msg []byte, h txbase.Height, proof []byte) bool
}

// FakeEngine is the Rules.FakePoW-gated stand-in used in tests and on
// networks that don't need real proof-of-work: every proof is valid, and
// Solve always succeeds immediately with an empty proof, matching the
// original's `if (Rules::get().FakePoW) return true;` short-circuit in
// IsValidPoW.
type FakeEngine struct{}

var _ Engine = FakeEngine{}

// Solve always succeeds with an empty proof.
func (FakeEngine) Solve(msg []byte, h txbase.Height, fnCancel Cancel) ([]byte, bool) {
	return nil, true
}

// IsValid always reports true.
func (FakeEngine) IsValid(msg []byte, h txbase.Height, proof []byte) bool {
	return true
}
