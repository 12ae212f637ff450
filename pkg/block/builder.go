package block

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/keys"
	"github.com/aquila-chain/ledgercore/pkg/rangeproof"
	"github.com/aquila-chain/ledgercore/pkg/tx"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// Builder assembles a block's body incrementally — a coinbase output and
// its signing kernel, any fee outputs paid to the block author, then the
// caller's own transaction bodies merged in (via Merge) — accumulating
// every constituent's blinding factor into Body.Offset as it goes.
// Matches Block::Builder.
type Builder struct {
	Height txbase.Height
	Params tx.Params

	CoinKdf keys.IKdf
	TagKdf  keys.IPKdf

	NewPublic func() rangeproof.Public

	Body tx.Transaction
}

// NewBuilder returns a Builder accumulating into a fresh, zeroed body at
// height, deriving keys from coinKdf/tagKdf and building every Public
// range proof via newPublic.
func NewBuilder(height txbase.Height, params tx.Params, coinKdf keys.IKdf, tagKdf keys.IPKdf, newPublic func() rangeproof.Public) *Builder {
	return &Builder{Height: height, Params: params, CoinKdf: coinKdf, TagKdf: tagKdf, NewPublic: newPublic}
}

// accumulateOutput folds an output's own blind into Body.Offset the same
// way every output in this core's balance identity contributes: positive
// sign, canceled on the other side by an input (negative) or a kernel
// (negative) — see pkg/tx/transaction_test.go's balance derivation.
func (b *Builder) accumulateOutput(sk ecc.Scalar) {
	b.Body.Offset = b.Body.Offset.Add(sk)
}

func (b *Builder) accumulateKernel(sk ecc.Scalar) {
	b.Body.Offset = b.Body.Offset.Add(sk.Negate())
}

// AddCoinbaseAndKrn creates the block's coinbase output for subsidy coins
// at key index idx (distinguishing multiple coinbase outputs, e.g. a
// pool's per-share payouts) and a zero-fee signing kernel binding it,
// folding both blinding factors into Body.Offset — Block::Builder's
// coinbase assembly step.
func (b *Builder) AddCoinbaseAndKrn(idx uint64, subsidy uint64) {
	kidv := keys.IDV{ID: keys.ID{Idx: idx, Type: keys.TypeCoinbase}, Value: subsidy}

	o, sk := tx.CreateOutput(b.Height, b.Params, b.CoinKdf, kidv, b.TagKdf, ecc.Hash{}, true, true, b.NewPublic, nil)
	b.Body.Outputs = append(b.Body.Outputs, &o)
	b.accumulateOutput(sk)

	skKernel := b.CoinKdf.DeriveKey(keys.ID{Idx: idx, Type: keys.TypeKernel})
	k := tx.NewStdKernel()
	k.Height.Min = b.Height
	k.Height.Max = txbase.MaxHeight
	k.SignStd(skKernel)
	b.Body.Kernels = append(b.Body.Kernels, k)
	b.accumulateKernel(skKernel)
}

// AddFees creates a fee output for fee coins at key index idx, paid to
// the block author out of the transactions' declared kernel fees —
// Block::Builder::AddFees.
func (b *Builder) AddFees(idx uint64, fee uint64) {
	kidv := keys.IDV{ID: keys.ID{Idx: idx, Type: keys.TypeComission}, Value: fee}

	o, sk := tx.CreateOutput(b.Height, b.Params, b.CoinKdf, kidv, b.TagKdf, ecc.Hash{}, false, true, b.NewPublic, nil)
	b.Body.Outputs = append(b.Body.Outputs, &o)
	b.accumulateOutput(sk)
}
