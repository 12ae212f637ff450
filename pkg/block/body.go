package block

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/tx"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// ZeroInit resets b to an empty body with a zero offset —
// Block::BodyBase::ZeroInit.
func ZeroInit(b *tx.Transaction) {
	*b = tx.Transaction{}
}

// Merge folds next's elements and offset into b — Block::BodyBase::Merge,
// built on tx.MergeTransactions, the same reader/writer-driven
// combination a multi-transaction block body uses to absorb each
// constituent transaction.
func Merge(b *tx.Transaction, next *tx.Transaction) {
	merged := tx.MergeTransactions([]*tx.Transaction{b, next})
	*b = *merged
}

// IsValidBody checks a block body's balance identity under ctx: the same
// sum(outputs) - sum(inputs) = sum(kernel excess) + fee*H + offset*G a
// standalone transaction satisfies, except the newly-minted coinbase
// subsidy is added to the right-hand side alongside the fee — new value
// appearing on the output side needs no offsetting input, the same way a
// kernel's declared fee is value that leaves without a matching output —
// Block::BodyBase::IsValid.
func IsValidBody(ctx tx.Context, body *tx.Transaction, subsidy txbase.AmountBig) (txbase.TxStats, bool) {
	stats := body.Stats()

	sigma := ecc.Zero
	for _, o := range body.Outputs {
		if o.Commitment.IsZero() {
			return stats, false
		}
		sigma = sigma.Add(o.Commitment)
	}
	for _, in := range body.Inputs {
		if in.Commitment.IsZero() {
			return stats, false
		}
		sigma = sigma.Add(in.Commitment.Negate())
	}

	kernelExcess := ecc.Zero
	var totalFee txbase.Amount
	for _, k := range body.Kernels {
		var ok bool
		kernelExcess, ok = k.IsValid(ctx.HScheme, ctx.Params, kernelExcess, nil)
		if !ok {
			return stats, false
		}
		totalFee += k.Fee
	}

	rhs := kernelExcess.Add(ecc.H().Mul(ecc.ScalarFromUint64(uint64(totalFee))))
	rhs = rhs.Add(body.Offset.BaseMul())
	rhs = subsidy.AddTo(rhs, ecc.H())

	diff := sigma.Add(rhs.Negate())
	return stats, diff.IsZero()
}
