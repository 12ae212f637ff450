package switchcommit

import (
	"testing"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/keys"
	"github.com/stretchr/testify/require"
)

func TestHGenFromAIDZeroIsZero(t *testing.T) {
	require.True(t, HGenFromAID(ecc.Hash{}).IsZero())
}

func TestHGenFromAIDNonZeroIsValidNonIdentity(t *testing.T) {
	p := HGenFromAID(ecc.Hash{1})
	require.False(t, p.IsZero())
}

func TestHGenFromAIDDeterministic(t *testing.T) {
	a := HGenFromAID(ecc.Hash{7, 8, 9})
	b := HGenFromAID(ecc.Hash{7, 8, 9})
	require.True(t, a.Equal(b))
}

func TestCreateAndRecoverAgree(t *testing.T) {
	master := keys.NewMasterHKdf([32]byte{3, 1, 4})
	kidv := keys.IDV{ID: keys.ID{Idx: 1, Type: keys.TypeRegular}, Value: 500, Scheme: keys.SchemeV1}
	sc := New(ecc.Hash{})

	sk, comm := sc.CreateWithCommitment(master, kidv)
	require.False(t, sk.IsZero())

	recovered := sc.Recover(master, kidv)
	require.True(t, comm.Equal(recovered))
}

func TestCreateCommitmentBindsValue(t *testing.T) {
	master := keys.NewMasterHKdf([32]byte{3, 1, 4})
	sc := New(ecc.Hash{})

	kidvA := keys.IDV{ID: keys.ID{Idx: 1}, Value: 500, Scheme: keys.SchemeV1}
	kidvB := keys.IDV{ID: keys.ID{Idx: 1}, Value: 501, Scheme: keys.SchemeV1}

	_, commA := sc.CreateWithCommitment(master, kidvA)
	_, commB := sc.CreateWithCommitment(master, kidvB)
	require.False(t, commA.Equal(commB))
}

func TestGetHashBB21FallsBackToV0(t *testing.T) {
	base := keys.IDV{ID: keys.ID{Idx: 9, Type: keys.TypeRegular, SubIdx: 2}, Value: 77}

	v0 := base
	v0.Scheme = keys.SchemeV0
	bb21 := base
	bb21.Scheme = keys.SchemeBB21

	require.Equal(t, GetHash(v0), GetHash(bb21))
}

func TestGetHashV1BindsValueV0DoesNot(t *testing.T) {
	a := keys.IDV{ID: keys.ID{Idx: 1}, Value: 1, Scheme: keys.SchemeV0}
	b := keys.IDV{ID: keys.ID{Idx: 1}, Value: 2, Scheme: keys.SchemeV0}
	require.Equal(t, GetHash(a), GetHash(b), "legacy scheme must not bind value")

	a.Scheme, b.Scheme = keys.SchemeV1, keys.SchemeV1
	require.NotEqual(t, GetHash(a), GetHash(b), "current scheme must bind value")
}
