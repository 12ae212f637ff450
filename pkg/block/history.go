package block

import (
	"sort"

	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// History is the node-database boundary IsValidProofKernel's LongProof
// path consults to look up an earlier state by height — IHistory in the
// original. The real, persistent implementation is external to this core
// (spec.md §6's "the persistent node database"); HistoryMap is this
// core's own small in-memory reference implementation, suitable for
// tests and for callers too lightweight to need a real database.
type History interface {
	// Enum returns every state at height >= minHeight, ascending.
	Enum(minHeight txbase.Height) []State
	// At returns the state at height, if present.
	At(height txbase.Height) (State, bool)
	// AddStates inserts or overwrites each of states, keyed by height.
	AddStates(states []State)
	// DeleteFrom removes every state at height >= from.
	DeleteFrom(from txbase.Height)
	// ShrinkToWindow discards every state older than window blocks
	// behind the highest height currently held.
	ShrinkToWindow(window txbase.Height)
}

// HistoryMap is an in-memory, height-keyed History.
type HistoryMap struct {
	states map[txbase.Height]State
}

// NewHistoryMap returns an empty HistoryMap.
func NewHistoryMap() *HistoryMap {
	return &HistoryMap{states: make(map[txbase.Height]State)}
}

var _ History = (*HistoryMap)(nil)

// At returns the state at height, if present.
func (h *HistoryMap) At(height txbase.Height) (State, bool) {
	s, ok := h.states[height]
	return s, ok
}

// Enum returns every state at height >= minHeight, ordered ascending.
func (h *HistoryMap) Enum(minHeight txbase.Height) []State {
	var out []State
	for ht, s := range h.states {
		if ht >= minHeight {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Height < out[j].Height })
	return out
}

// AddStates inserts or overwrites each of states, keyed by height.
func (h *HistoryMap) AddStates(states []State) {
	for _, s := range states {
		h.states[s.Height] = s
	}
}

// DeleteFrom removes every state at height >= from — rolling back a
// reorganized tail of the window.
func (h *HistoryMap) DeleteFrom(from txbase.Height) {
	for ht := range h.states {
		if ht >= from {
			delete(h.states, ht)
		}
	}
}

// ShrinkToWindow discards every state older than window blocks behind the
// highest height currently held, bounding the map's memory.
func (h *HistoryMap) ShrinkToWindow(window txbase.Height) {
	var top txbase.Height
	found := false
	for ht := range h.states {
		if !found || ht > top {
			top = ht
			found = true
		}
	}
	if !found || top < window {
		return
	}
	cutoff := top - window
	for ht := range h.states {
		if ht < cutoff {
			delete(h.states, ht)
		}
	}
}
