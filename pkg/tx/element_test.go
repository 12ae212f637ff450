package tx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/keys"
	"github.com/aquila-chain/ledgercore/pkg/rangeproof"
)

// TestConfidentialOutputRecoversCreatedKidv is the round-trip the reviewer
// asked for: CreateOutput signs with the real spending scalar, Output.Recover
// rebuilds its seed with a zero one (the only thing a wallet scan has),
// exercising the exact Create/Recover asymmetry that made the confidential
// mask's former dependence on seed.Blind non-functional.
func TestConfidentialOutputRecoversCreatedKidv(t *testing.T) {
	coinKdf := keys.NewMasterHKdf([32]byte{1})
	tagKdf := keys.NewMasterHKdf([32]byte{2})
	params := testParams()

	kidv := keys.IDV{ID: keys.ID{Idx: 11, Type: keys.TypeRegular, SubIdx: 3}, Value: 777}
	newConfidential := func() rangeproof.Confidential { return rangeproof.RefConfidential{} }

	o, sk := CreateOutput(20, params, coinKdf, kidv, tagKdf, ecc.Hash{}, false, false, nil, newConfidential)
	require.False(t, sk.IsZero())
	require.NotNil(t, o.Confidential)
	require.Nil(t, o.Public)

	got, ok := o.Recover(20, params, tagKdf)
	require.True(t, ok)
	require.Equal(t, kidv, got)
}

// TestConfidentialOutputRecoverWithWrongTagKdfYieldsWrongKidv confirms recovery is
// bound to the tag KDF used at creation: a different wallet's public key
// derives a different RecoveryTag, so its mask doesn't line up and the
// recovered tuple comes back wrong.
func TestConfidentialOutputRecoverWithWrongTagKdfYieldsWrongKidv(t *testing.T) {
	coinKdf := keys.NewMasterHKdf([32]byte{1})
	tagKdf := keys.NewMasterHKdf([32]byte{2})
	otherTagKdf := keys.NewMasterHKdf([32]byte{3})
	params := testParams()

	kidv := keys.IDV{ID: keys.ID{Idx: 11, Type: keys.TypeRegular, SubIdx: 3}, Value: 777}
	newConfidential := func() rangeproof.Confidential { return rangeproof.RefConfidential{} }

	o, _ := CreateOutput(20, params, coinKdf, kidv, tagKdf, ecc.Hash{}, false, false, nil, newConfidential)

	got, ok := o.Recover(20, params, otherTagKdf)
	require.True(t, ok)
	require.NotEqual(t, kidv, got)
}

func TestPublicOutputRecoversValueDirectly(t *testing.T) {
	coinKdf := keys.NewMasterHKdf([32]byte{1})
	tagKdf := keys.NewMasterHKdf([32]byte{2})
	params := testParams()

	kidv := keys.IDV{ID: keys.ID{Idx: 4, Type: keys.TypeCoinbase}, Value: 555}
	newPublic := func() rangeproof.Public { return rangeproof.RefPublic{} }

	o, _ := CreateOutput(20, params, coinKdf, kidv, tagKdf, ecc.Hash{}, true, true, newPublic, nil)

	got, ok := o.Recover(20, params, tagKdf)
	require.True(t, ok)
	require.Equal(t, keys.IDV{Value: 555}, got)
}
