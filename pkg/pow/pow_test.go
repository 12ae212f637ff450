package pow

import (
	"testing"

	"github.com/aquila-chain/ledgercore/pkg/txbase"
	"github.com/stretchr/testify/require"
)

func TestFakeEngineAlwaysValid(t *testing.T) {
	var e Engine = FakeEngine{}
	proof, ok := e.Solve([]byte("header"), 100, nil)
	require.True(t, ok)
	require.True(t, e.IsValid([]byte("header"), 100, proof))
	require.True(t, e.IsValid([]byte("anything"), txbase.MaxHeight, []byte{1, 2, 3}))
}
