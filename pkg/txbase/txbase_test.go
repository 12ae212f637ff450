package txbase

import (
	"testing"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/stretchr/testify/require"
)

func TestHeightRangeIsInRange(t *testing.T) {
	r := HeightRange{Min: 10, Max: 20}
	require.True(t, r.IsInRange(10))
	require.True(t, r.IsInRange(20))
	require.False(t, r.IsInRange(9))
	require.False(t, r.IsInRange(21))
}

func TestHeightRangeIntersect(t *testing.T) {
	r := HeightRange{Min: 0, Max: 100}
	r.Intersect(HeightRange{Min: 50, Max: 200})
	require.Equal(t, HeightRange{Min: 50, Max: 100}, r)
}

func TestHeightRangeContains(t *testing.T) {
	outer := HeightRange{Min: 0, Max: 100}
	require.True(t, outer.Contains(HeightRange{Min: 10, Max: 90}))
	require.False(t, outer.Contains(HeightRange{Min: 10, Max: 200}))
}

func TestHeightAddSaturates(t *testing.T) {
	require.Equal(t, MaxHeight, HeightAdd(MaxHeight-1, 5))
	require.Equal(t, Height(15), HeightAdd(10, 5))
}

func TestAmountBigAddCarries(t *testing.T) {
	a := AmountBig{Lo: ^uint64(0)}
	b := AmountBigFromAmount(1)
	sum := a.Add(b)
	require.Equal(t, uint64(1), sum.Hi)
	require.Equal(t, uint64(0), sum.Lo)
}

func TestAmountBigMulUint64(t *testing.T) {
	a := AmountBigFromAmount(1_000_000)
	got := a.MulUint64(3)
	require.Equal(t, uint64(3_000_000), got.Lo)
	require.Equal(t, uint64(0), got.Hi)
}

func TestAmountBigAddToMatchesScalarMul(t *testing.T) {
	hGen := ecc.ScalarFromUint64(7).BaseMul()
	x := AmountBig{Lo: 12345}
	acc := x.AddTo(ecc.Zero, hGen)
	want := hGen.Mul(ecc.ScalarFromUint64(12345))
	require.True(t, acc.Equal(want))
}

func TestTxStatsAdd(t *testing.T) {
	var s TxStats
	s.Add(TxStats{Fee: 10, Kernels: 1, Inputs: 2, Outputs: 3})
	s.Add(TxStats{Fee: 5, Coinbase: AmountBigFromAmount(100), Kernels: 1})
	require.Equal(t, Amount(15), s.Fee)
	require.Equal(t, AmountBigFromAmount(100), s.Coinbase)
	require.Equal(t, uint32(2), s.Kernels)
	require.Equal(t, uint32(2), s.Inputs)
	require.Equal(t, uint32(3), s.Outputs)
}

func TestCmpBytesOrdering(t *testing.T) {
	require.Equal(t, CmpLess, CmpBytes([]byte{1, 2}, []byte{1, 3}))
	require.Equal(t, CmpGreater, CmpBytes([]byte{2}, []byte{1, 255}))
	require.Equal(t, CmpEqual, CmpBytes([]byte{1, 2}, []byte{1, 2}))
	require.Equal(t, CmpLess, CmpBytes([]byte{1}, []byte{1, 0}))
}
