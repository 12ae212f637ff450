package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/pow"
	"github.com/aquila-chain/ledgercore/pkg/rules"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

func testRules() *rules.Rules {
	r := rules.Default()
	r.UpdateChecksum()
	return r
}

func TestHashIsPrehistoricBeforeGenesis(t *testing.T) {
	r := testRules()
	s := State{Height: 0}
	require.Equal(t, r.Prehistoric, s.Hash(r))
}

func TestHashIsDeterministic(t *testing.T) {
	r := testRules()
	s := State{Height: txbase.HeightGenesis, Prev: r.Prehistoric, Timestamp: 1000}
	require.Equal(t, s.Hash(r), s.Hash(r))
}

func TestHashForPoWOmitsIndicesAndNonce(t *testing.T) {
	r := testRules()
	a := State{Height: 10, Timestamp: 1000}
	b := a
	b.PoW.Indices = []byte{1, 2, 3}
	b.PoW.Nonce = 77

	require.Equal(t, a.HashForPoW(r), b.HashForPoW(r))
	require.NotEqual(t, a.Hash(r), b.Hash(r))
}

func TestIsNextChainsConsecutiveHeaders(t *testing.T) {
	r := testRules()
	a := State{Height: txbase.HeightGenesis, Prev: r.Prehistoric}
	b := State{Height: txbase.HeightGenesis + 1, Prev: a.Hash(r)}
	require.True(t, a.IsNext(b, r))

	c := b
	c.Prev = ecc.Hash{}
	require.False(t, a.IsNext(c, r))
}

func TestNextPrefixAdvancesHeightAndLinksPrev(t *testing.T) {
	r := testRules()
	a := State{Height: txbase.HeightGenesis, Prev: r.Prehistoric}
	want := a.Hash(r)

	a.NextPrefix(r)
	require.Equal(t, txbase.HeightGenesis+1, a.Height)
	require.Equal(t, want, a.Prev)
}

func TestIsSaneRejectsGenesisWithWrongPrev(t *testing.T) {
	r := testRules()
	s := State{Height: txbase.HeightGenesis, Prev: ecc.Hash{1}}
	require.False(t, s.IsSane(r))

	s.Prev = r.Prehistoric
	require.True(t, s.IsSane(r))
}

func TestIsValidPoWFakeEngineAlwaysPasses(t *testing.T) {
	r := testRules()
	s := State{Height: 10}
	require.True(t, s.IsValidPoW(r, pow.FakeEngine{}))
}

// digestEngine accepts only the digest want, and only together with the
// proof its Solve hands out.
type digestEngine struct {
	want  ecc.Hash
	proof []byte
}

func (e digestEngine) Solve(msg []byte, h txbase.Height, fnCancel pow.Cancel) ([]byte, bool) {
	return e.proof, bytes.Equal(msg, e.want[:])
}

func (e digestEngine) IsValid(msg []byte, h txbase.Height, proof []byte) bool {
	return bytes.Equal(msg, e.want[:]) && bytes.Equal(proof, e.proof)
}

func TestIsValidPoWRealEngineChecksAgainstHashForPoW(t *testing.T) {
	r := testRules()
	s := State{Height: 10, PoW: PoWProof{Indices: []byte{1, 2, 3}}}
	e := digestEngine{want: s.HashForPoW(r), proof: []byte{1, 2, 3}}
	require.True(t, s.IsValidPoW(r, e))

	e.want = ecc.Hash{9}
	require.False(t, s.IsValidPoW(r, e))
}

func TestGeneratePoWStoresSolverProof(t *testing.T) {
	r := testRules()
	s := State{Height: 10}
	e := digestEngine{want: s.HashForPoW(r), proof: []byte{4, 5, 6}}
	ok := s.GeneratePoW(r, e, nil)
	require.True(t, ok)
	require.Equal(t, []byte{4, 5, 6}, s.PoW.Indices)
}

func TestCmpOrdersByHeightFirst(t *testing.T) {
	a := State{Height: 1}
	b := State{Height: 2}
	require.Equal(t, txbase.CmpLess, a.Cmp(b))
	require.Equal(t, txbase.CmpGreater, b.Cmp(a))
	require.Equal(t, txbase.CmpEqual, a.Cmp(a))
}
