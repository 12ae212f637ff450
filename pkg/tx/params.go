package tx

import "github.com/aquila-chain/ledgercore/pkg/txbase"

// Params carries the subset of a Rules value that element and
// kernel validation are gated by, per spec.md §4.6's "Context
// parameterised with Params". Kept as a plain struct here (rather than
// this package importing pkg/rules directly) so pkg/rules can depend on
// pkg/tx — not the other way — while still supplying these values via
// Rules.TxParams().
type Params struct {
	Fork1Height      txbase.Height
	Fork2Height      txbase.Height
	AllowPublicUtxos bool
	MaturityCoinbase txbase.Height
	MaturityStd      txbase.Height
	CAEnabled        bool
	CADeposit        bool
	ShieldedEnabled  bool
}
