package ecc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarAddNegateRoundTrip(t *testing.T) {
	a := ScalarFromUint64(7)
	b := ScalarFromUint64(11)

	sum := a.Add(b)
	require.Equal(t, ScalarFromUint64(18).Bytes(), sum.Bytes())

	back := sum.Add(b.Negate())
	require.Equal(t, a.Bytes(), back.Bytes())
}

func TestPointAddNegateCancels(t *testing.T) {
	p := ScalarFromUint64(5).BaseMul()
	q := p.Add(p.Negate())
	require.True(t, q.IsZero())
}

func TestPointImportExportRoundTrip(t *testing.T) {
	p := ScalarFromUint64(42).BaseMul()
	enc := p.Bytes()

	back, err := ImportNnz(enc)
	require.NoError(t, err)
	require.True(t, p.Equal(back))
}

func TestGeneratorsAreDistinct(t *testing.T) {
	require.False(t, G().Equal(J()))
	require.False(t, G().Equal(H()))
	require.False(t, J().Equal(H()))
	require.False(t, H().Equal(HBig()))
}

func TestOracleRatchetsBetweenReads(t *testing.T) {
	o := NewOracle()
	o.WriteString("a-gen")
	first := o.ReadHash()
	second := o.ReadHash()
	require.NotEqual(t, first, second, "repeated ReadHash on the same oracle must advance state")
}

func TestOracleOrderingMatters(t *testing.T) {
	a := NewOracle().WriteString("x").WriteUint64(1).ReadHash()
	b := NewOracle().WriteUint64(1).WriteString("x").ReadHash()
	require.NotEqual(t, a, b)
}
