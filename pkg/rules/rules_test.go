package rules

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

func TestDefaultIsForkHeightsConsistent(t *testing.T) {
	r := Default()
	require.True(t, r.IsForkHeightsConsistent())
}

func TestIsForkHeightsConsistentRejectsNonMonotonic(t *testing.T) {
	r := Default()
	r.SetFork1Height(500)
	r.SetFork2Height(100)
	require.False(t, r.IsForkHeightsConsistent())
}

func TestUpdateChecksumPanicsOnInconsistentForks(t *testing.T) {
	r := Default()
	r.SetFork1Height(500)
	r.SetFork2Height(100)
	require.Panics(t, func() { r.UpdateChecksum() })
}

func TestUpdateChecksumIsDeterministic(t *testing.T) {
	a := Default()
	a.UpdateChecksum()

	b := Default()
	b.UpdateChecksum()

	require.Equal(t, a.pForks[0].Hash, b.pForks[0].Hash)
	require.Equal(t, a.pForks[1].Hash, b.pForks[1].Hash)
	require.Equal(t, a.pForks[2].Hash, b.pForks[2].Hash)
}

func TestUpdateChecksumChangesWithAnyParameter(t *testing.T) {
	a := Default()
	a.UpdateChecksum()

	b := Default()
	b.Emission.Value0 += 1
	b.UpdateChecksum()

	require.NotEqual(t, a.pForks[0].Hash, b.pForks[0].Hash)
}

func TestUpdateChecksumFork1SegmentChangesWithDampOnly(t *testing.T) {
	a := Default()
	a.UpdateChecksum()

	b := Default()
	b.DA.DampM += 1
	b.UpdateChecksum()

	require.Equal(t, a.pForks[0].Hash, b.pForks[0].Hash, "DampM is only absorbed into the fork1 segment")
	require.NotEqual(t, a.pForks[1].Hash, b.pForks[1].Hash)
}

func TestFindForkByHeight(t *testing.T) {
	r := Default()
	require.Equal(t, 0, r.FindFork(1))
	require.Equal(t, 1, r.FindFork(321321))
	require.Equal(t, 1, r.FindFork(321321+1000))
}

func TestFindForkByHashMatchesAfterChecksum(t *testing.T) {
	r := Default()
	r.UpdateChecksum()

	idx, ok := r.FindForkByHash(r.pForks[1].Hash)
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestFindForkByHashRejectsUnscheduledFork(t *testing.T) {
	r := Default()
	r.UpdateChecksum()

	_, ok := r.FindForkByHash(ecc.Hash{})
	require.False(t, ok)
}

func TestLastForkBeforeFork1(t *testing.T) {
	r := Default()
	// Default schedules fork1 at 321321; leave it unscheduled so only the
	// genesis entry is left for LastFork to return.
	r.SetFork1Height(txbase.MaxHeight)
	require.Equal(t, r.pForks[0], r.LastFork())
}

func TestEmissionExBeforeDrop0(t *testing.T) {
	r := Default()
	reward, hEnd := r.EmissionEx(txbase.HeightGenesis, r.Emission.Value0)
	require.EqualValues(t, r.Emission.Value0, reward)
	require.EqualValues(t, txbase.HeightGenesis+r.Emission.Drop0, hEnd)
}

func TestEmissionExHalvesAtDrop0(t *testing.T) {
	r := Default()
	h := txbase.HeightGenesis + r.Emission.Drop0
	reward, _ := r.EmissionEx(h, r.Emission.Value0)
	require.EqualValues(t, r.Emission.Value0/2, reward)
}

func TestEmissionExFiveEighthsKinkAtSecondCycle(t *testing.T) {
	r := Default()
	h := txbase.HeightGenesis + r.Emission.Drop0 + r.Emission.Drop1
	reward, _ := r.EmissionEx(h, r.Emission.Value0)
	// n=2: base += base>>2 (→ 5/4 base), then >>2 — i.e. 5/16 of the original.
	expected := (r.Emission.Value0 + r.Emission.Value0/4) >> 2
	require.EqualValues(t, expected, reward)
}

func TestEmissionExReachesZero(t *testing.T) {
	reward, hEnd := (&Rules{Emission: Emission{Value0: 1, Drop0: 0, Drop1: 1}}).EmissionEx(txbase.HeightGenesis+64, 1)
	require.EqualValues(t, 0, reward)
	require.Equal(t, txbase.MaxHeight, hEnd)
}

func TestEmissionRangeMatchesStepSum(t *testing.T) {
	r := &Rules{Emission: Emission{Value0: 100, Drop0: 5, Drop1: 5}}

	hr := txbase.HeightRange{Min: txbase.HeightGenesis, Max: txbase.HeightGenesis + 19}

	var want txbase.AmountBig
	for h := hr.Min; h <= hr.Max; h++ {
		want = want.AddAmount(r.Emission1(h))
	}

	got := r.EmissionRange(hr)
	require.Equal(t, want, got)
}

func TestEmissionRangeEmpty(t *testing.T) {
	r := Default()
	got := r.EmissionRange(txbase.HeightRange{Min: 10, Max: 5})
	require.True(t, got.IsZero())
}

func TestTxParamsBridgesFields(t *testing.T) {
	r := Default()
	r.CA.Enabled = true
	r.Shielded.Enabled = true
	r.AllowPublicUtxos = true

	p := r.TxParams()
	require.Equal(t, r.Fork1Height(), p.Fork1Height)
	require.Equal(t, r.Fork2Height(), p.Fork2Height)
	require.True(t, p.CAEnabled)
	require.True(t, p.ShieldedEnabled)
	require.True(t, p.AllowPublicUtxos)
	require.Equal(t, r.Maturity.Coinbase, p.MaturityCoinbase)
}

func TestSignatureStringIsBase58(t *testing.T) {
	r := Default()
	r.UpdateChecksum()
	s := r.SignatureString()
	require.NotEmpty(t, s)
	require.Equal(t, "fork-1:"+base58.Encode(r.pForks[1].Hash[:]), s)
}
