package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	master := NewMasterHKdf([32]byte{1, 2, 3})
	id := ID{Idx: 5, Type: TypeRegular, SubIdx: 0}

	a := master.DeriveKey(id)
	b := master.DeriveKey(id)
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestDeriveKeyVariesByID(t *testing.T) {
	master := NewMasterHKdf([32]byte{1, 2, 3})
	a := master.DeriveKey(ID{Idx: 1, Type: TypeRegular})
	b := master.DeriveKey(ID{Idx: 2, Type: TypeRegular})
	require.NotEqual(t, a.Bytes(), b.Bytes())
}

func TestDerivePKeyMatchesDeriveKey(t *testing.T) {
	master := NewMasterHKdf([32]byte{9})
	id := ID{Idx: 3, Type: TypeCoinbase}
	require.True(t, master.DerivePKey(id).Equal(master.DeriveKey(id).BaseMul()))
}

func TestCreateChildSubkeyZeroIsMaster(t *testing.T) {
	master := NewMasterHKdf([32]byte{4, 5})
	child := CreateChild(master, 0)
	require.Equal(t, master.DeriveKey(ID{Idx: 1}).Bytes(), child.DeriveKey(ID{Idx: 1}).Bytes())
}

func TestCreateChildDiffersFromMaster(t *testing.T) {
	master := NewMasterHKdf([32]byte{4, 5})
	child := CreateChild(master, 7)
	require.NotEqual(t, master.DeriveKey(ID{Idx: 1}).Bytes(), child.DeriveKey(ID{Idx: 1}).Bytes())
}

func TestIDVCmp(t *testing.T) {
	a := IDV{ID: ID{Idx: 1}, Value: 10}
	b := IDV{ID: ID{Idx: 2}, Value: 10}
	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 1, b.Cmp(a))
	require.Equal(t, 0, a.Cmp(a))
}
