package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
)

func leafHash(tag string) ecc.Hash {
	o := ecc.NewOracle()
	o.WriteString(tag)
	return o.ReadHash()
}

func TestInterpretSingleStepMatchesCombine(t *testing.T) {
	leaf := leafHash("leaf")
	sibling := leafHash("sibling")

	got := Interpret(leaf, Proof{{OnRight: true, Hash: sibling}})
	want := combine(true, sibling, leaf)
	require.Equal(t, want, got)
}

func TestInterpretEmptyProofIsIdentity(t *testing.T) {
	leaf := leafHash("leaf")
	require.Equal(t, leaf, Interpret(leaf, nil))
}

func TestInterpretMmrSingleLeafForestIsIdentity(t *testing.T) {
	hv := NewHardVerifier(nil)
	hv.HV = leafHash("only-leaf")
	require.True(t, hv.InterpretMmr(0, 1))
	require.True(t, hv.IsEnd())
}

func TestInterpretMmrTwoLeafPeakClimbsOneLevel(t *testing.T) {
	left := leafHash("left")
	right := leafHash("right")
	root := combine(true, left, right) // right child climbing with left sibling

	hv := NewHardVerifier(HardProof{left})
	hv.HV = right
	require.True(t, hv.InterpretMmr(1, 2))
	require.True(t, hv.IsEnd())
	require.Equal(t, root, hv.HV)
}

func TestInterpretMmrRejectsOutOfRangePosition(t *testing.T) {
	hv := NewHardVerifier(nil)
	require.False(t, hv.InterpretMmr(5, 4))
}

func TestInterpretMmrThenInterpretOnceBagsAcrossPeaks(t *testing.T) {
	// count=3 -> peaks of size 2 (leaves 0,1) and size 1 (leaf 2).
	// Prove leaf 2 (the lone size-1 peak): no climbing needed, then bag
	// it together with the size-2 peak's precomputed root via one
	// InterpretOnce.
	otherPeakRoot := leafHash("other-peak-root")
	leaf2 := leafHash("leaf-2")

	hv := NewHardVerifier(HardProof{otherPeakRoot})
	hv.HV = leaf2
	require.True(t, hv.InterpretMmr(2, 3))
	require.True(t, hv.InterpretOnce(false))
	require.True(t, hv.IsEnd())

	want := combine(false, otherPeakRoot, leaf2)
	require.Equal(t, want, hv.HV)
}

func TestHardVerifierInterpretOnceFailsWhenExhausted(t *testing.T) {
	hv := NewHardVerifier(nil)
	require.False(t, hv.InterpretOnce(true))
}

func TestMmrPeaksDecomposesByPopcount(t *testing.T) {
	require.Equal(t, [][2]uint64{{0, 4}, {4, 2}, {6, 1}}, mmrPeaks(7))
	require.Equal(t, [][2]uint64{{0, 8}}, mmrPeaks(8))
}
