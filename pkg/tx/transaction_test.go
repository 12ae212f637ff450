package tx

import (
	"testing"

	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
	"github.com/stretchr/testify/require"
)

func TestTransactionBalancesOutputsInputsKernelAndOffset(t *testing.T) {
	params := testParams()

	skOut := ecc.ScalarFromUint64(500)
	skIn := ecc.ScalarFromUint64(200)
	skKernel := ecc.ScalarFromUint64(77)

	out := &Output{TxElement: TxElement{Commitment: skOut.BaseMul()}}
	in := &Input{TxElement: TxElement{Commitment: skIn.BaseMul()}}

	kernel := NewStdKernel()
	kernel.Height.Min = 20
	kernel.Height.Max = 1000
	kernel.SignStd(skKernel)

	// Balance identity: out - in == kernel.Commitment + fee*H + offset*G.
	// fee is zero here, so offset == skOut - skIn - skKernel.
	offset := skOut.Add(skIn.Negate()).Add(skKernel.Negate())

	txn := &Transaction{
		Inputs:  []*Input{in},
		Outputs: []*Output{out},
		Kernels: []*Kernel{kernel},
		Offset:  offset,
	}

	stats, ok := Context{HScheme: 25, Params: params}.IsValid(txn)
	require.True(t, ok)
	require.EqualValues(t, 1, stats.Inputs)
	require.EqualValues(t, 1, stats.Outputs)
	require.EqualValues(t, 1, stats.Kernels)
}

func TestTransactionRejectsWrongOffset(t *testing.T) {
	params := testParams()

	skOut := ecc.ScalarFromUint64(11)
	skIn := ecc.ScalarFromUint64(3)
	skKernel := ecc.ScalarFromUint64(5)

	out := &Output{TxElement: TxElement{Commitment: skOut.BaseMul()}}
	in := &Input{TxElement: TxElement{Commitment: skIn.BaseMul()}}

	kernel := NewStdKernel()
	kernel.Height.Min = 20
	kernel.Height.Max = 1000
	kernel.SignStd(skKernel)

	txn := &Transaction{
		Inputs:  []*Input{in},
		Outputs: []*Output{out},
		Kernels: []*Kernel{kernel},
		Offset:  ecc.ScalarFromUint64(1), // wrong
	}

	_, ok := Context{HScheme: 25, Params: params}.IsValid(txn)
	require.False(t, ok)
}

func TestTransactionAccountsForFee(t *testing.T) {
	params := testParams()

	skOut := ecc.ScalarFromUint64(50)
	skKernel := ecc.ScalarFromUint64(9)

	out := &Output{TxElement: TxElement{Commitment: skOut.BaseMul()}}

	kernel := NewStdKernel()
	kernel.Fee = 3
	kernel.Height.Min = 20
	kernel.Height.Max = 1000
	kernel.SignStd(skKernel)

	// out == kernel.Commitment + fee*H + offset*G
	offset := skOut.Add(skKernel.Negate())

	txn := &Transaction{
		Outputs: []*Output{out},
		Kernels: []*Kernel{kernel},
		Offset:  offset,
	}

	// Without accounting for the fee term this would wrongly balance;
	// assert it does NOT balance unless the fee*H term is added on the
	// right-hand side, i.e. offset alone (ignoring fee) must fail here
	// since out was built without an H contribution for the fee.
	_, ok := Context{HScheme: 25, Params: params}.IsValid(txn)
	require.False(t, ok)
}

func TestTransactionKeyIsDeterministic(t *testing.T) {
	txn := &Transaction{Offset: ecc.ScalarFromUint64(42)}
	require.Equal(t, txn.Key(), txn.Key())

	other := &Transaction{Offset: ecc.ScalarFromUint64(43)}
	require.NotEqual(t, txn.Key(), other.Key())
}

func TestFeeSettingsCalculate(t *testing.T) {
	fs := DefaultFeeSettings()
	stats := txbase.TxStats{Outputs: 2, Kernels: 1, InputsShielded: 1, OutputsShielded: 0}
	got := fs.Calculate(stats)
	require.EqualValues(t, 10*2+10*1+1000*1, got)
}

func TestNormalizeCutsThroughMatchingCommitments(t *testing.T) {
	params := testParams()
	comm := ecc.ScalarFromUint64(42).BaseMul()

	txn := &Transaction{
		Inputs:  []*Input{{TxElement: TxElement{Commitment: comm}}},
		Outputs: []*Output{{TxElement: TxElement{Commitment: comm}}},
	}

	n := Normalize(txn, params)
	require.Equal(t, 1, n)
	require.Empty(t, txn.Inputs)
	require.Empty(t, txn.Outputs)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	params := testParams()
	txn := &Transaction{
		Inputs: []*Input{
			{TxElement: TxElement{Commitment: ecc.ScalarFromUint64(5).BaseMul()}},
		},
		Outputs: []*Output{
			{TxElement: TxElement{Commitment: ecc.ScalarFromUint64(9).BaseMul()}},
		},
	}

	Normalize(txn, params)
	firstIn, firstOut := txn.Inputs[0], txn.Outputs[0]

	n := Normalize(txn, params)
	require.Equal(t, 0, n)
	require.Same(t, firstIn, txn.Inputs[0])
	require.Same(t, firstOut, txn.Outputs[0])
}

func TestMergeTransactionsSumsOffsetsAndConcatenatesElements(t *testing.T) {
	a := &Transaction{Offset: ecc.ScalarFromUint64(3)}
	b := &Transaction{Offset: ecc.ScalarFromUint64(4)}
	comm := ecc.ScalarFromUint64(1).BaseMul()
	a.Outputs = append(a.Outputs, &Output{TxElement: TxElement{Commitment: comm}})

	merged := MergeTransactions([]*Transaction{a, b})
	require.Len(t, merged.Outputs, 1)
	require.Equal(t, ecc.ScalarFromUint64(7).Bytes(), merged.Offset.Bytes())
}
