package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

func mkState(h txbase.Height) State {
	return State{Height: h, Prev: ecc.Hash{byte(h)}}
}

func TestHistoryMapAtFindsInsertedState(t *testing.T) {
	h := NewHistoryMap()
	s := mkState(10)
	h.AddStates([]State{s})

	got, ok := h.At(10)
	require.True(t, ok)
	require.Equal(t, s, got)

	_, ok = h.At(11)
	require.False(t, ok)
}

func TestHistoryMapAddStatesOverwrites(t *testing.T) {
	h := NewHistoryMap()
	h.AddStates([]State{mkState(5)})
	replacement := State{Height: 5, Timestamp: 99}
	h.AddStates([]State{replacement})

	got, ok := h.At(5)
	require.True(t, ok)
	require.Equal(t, uint64(99), got.Timestamp)
}

func TestHistoryMapEnumReturnsAscendingFromMin(t *testing.T) {
	h := NewHistoryMap()
	h.AddStates([]State{mkState(1), mkState(5), mkState(3), mkState(9)})

	out := h.Enum(3)
	require.Len(t, out, 3)
	require.Equal(t, txbase.Height(3), out[0].Height)
	require.Equal(t, txbase.Height(5), out[1].Height)
	require.Equal(t, txbase.Height(9), out[2].Height)
}

func TestHistoryMapDeleteFromRemovesTail(t *testing.T) {
	h := NewHistoryMap()
	h.AddStates([]State{mkState(1), mkState(2), mkState(3), mkState(4)})
	h.DeleteFrom(3)

	_, ok := h.At(3)
	require.False(t, ok)
	_, ok = h.At(4)
	require.False(t, ok)
	_, ok = h.At(2)
	require.True(t, ok)
}

func TestHistoryMapShrinkToWindowKeepsOnlyRecent(t *testing.T) {
	h := NewHistoryMap()
	h.AddStates([]State{mkState(1), mkState(2), mkState(10), mkState(11)})
	h.ShrinkToWindow(1)

	// top is 11, cutoff = 11-1 = 10: anything < 10 is discarded.
	_, ok := h.At(1)
	require.False(t, ok)
	_, ok = h.At(2)
	require.False(t, ok)
	_, ok = h.At(10)
	require.True(t, ok)
	_, ok = h.At(11)
	require.True(t, ok)
}

func TestHistoryMapShrinkToWindowNoopOnEmptyMap(t *testing.T) {
	h := NewHistoryMap()
	h.ShrinkToWindow(5)
	require.Empty(t, h.Enum(0))
}
