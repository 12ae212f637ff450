package tx

import (
	"github.com/aquila-chain/ledgercore/pkg/ecc"
	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// Transaction bundles a set of inputs, outputs and kernels plus the
// blinding-factor Offset that, together with every element's own
// commitment, must sum to zero for the transaction to balance —
// Transaction::Offset in the original.
type Transaction struct {
	Inputs  []*Input
	Outputs []*Output
	Kernels []*Kernel
	Offset  ecc.Scalar
}

// Key returns a cheap, collision-tolerant identity for t, derived from its
// Offset scalar. Matches the original's Transaction::get_Key, which the
// mempool and relay layers use only to deduplicate by this identity — two
// distinct transactions that happen to carry the same Offset are a
// theoretical, accepted collision, not a correctness bug (spec.md §9 Open
// Question (b)).
func (t *Transaction) Key() ecc.Hash {
	o := ecc.NewOracle()
	o.WriteHash(ecc.Hash(t.Offset.Bytes()))
	return o.ReadHash()
}

// FeeSettings is the per-element-kind fee schedule Calculate prices a
// transaction's statistics against — Transaction::FeeSettings.
type FeeSettings struct {
	Output         txbase.Amount
	Kernel         txbase.Amount
	ShieldedInput  txbase.Amount
	ShieldedOutput txbase.Amount
}

// DefaultFeeSettings returns the original's hardcoded defaults.
func DefaultFeeSettings() FeeSettings {
	return FeeSettings{
		Output:         10,
		Kernel:         10,
		ShieldedInput:  1000,
		ShieldedOutput: 1000,
	}
}

// Calculate prices s's statistics: every output (shielded or not) costs
// Output, every kernel costs Kernel, and shielded in/outputs additionally
// cost their dedicated surcharge on top — matching
// FeeSettings::Calculate(const TxStats&).
func (fs FeeSettings) Calculate(s txbase.TxStats) txbase.Amount {
	total := txbase.Amount(s.Outputs)*fs.Output + txbase.Amount(s.Kernels)*fs.Kernel
	total += txbase.Amount(s.InputsShielded) * fs.ShieldedInput
	total += txbase.Amount(s.OutputsShielded) * fs.ShieldedOutput
	return total
}

// Stats walks t's elements (nested kernels included) and returns their
// accumulated TxStats.
func (t *Transaction) Stats() txbase.TxStats {
	var s txbase.TxStats
	s.Inputs += uint32(len(t.Inputs))
	for _, o := range t.Outputs {
		o.AddStats(&s)
	}
	for _, k := range t.Kernels {
		k.AddStats(&s)
	}
	return s
}

// Context carries the scheme height and the Params a transaction is
// validated against — Transaction::Context generalized to this core's
// explicit-parameter style (no process-wide Rules singleton). IsValid keeps
// its running excess in local variables, not in Context.
type Context struct {
	HScheme txbase.Height
	Params  Params
}

// IsValid checks t's balance equation: sum(outputs) - sum(inputs) must
// equal sum(kernel excess) + totalFee*H + Offset*G — the standard
// Mimblewimble balance identity every kernel's signed excess and every
// output/input commitment is built to satisfy. Returns the computed
// TxStats alongside the verdict so callers don't have to re-walk the
// transaction.
func (c Context) IsValid(t *Transaction) (txbase.TxStats, bool) {
	stats := t.Stats()

	sigma := ecc.Zero
	for _, o := range t.Outputs {
		if o.Commitment.IsZero() {
			return stats, false
		}
		sigma = sigma.Add(o.Commitment)
	}
	for _, in := range t.Inputs {
		if in.Commitment.IsZero() {
			return stats, false
		}
		sigma = sigma.Add(in.Commitment.Negate())
	}

	kernelExcess := ecc.Zero
	var totalFee txbase.Amount
	for _, k := range t.Kernels {
		var ok bool
		kernelExcess, ok = k.IsValid(c.HScheme, c.Params, kernelExcess, nil)
		if !ok {
			return stats, false
		}
		totalFee += k.Fee
	}

	rhs := kernelExcess.Add(ecc.H().Mul(ecc.ScalarFromUint64(uint64(totalFee))))
	rhs = rhs.Add(t.Offset.BaseMul())

	diff := sigma.Add(rhs.Negate())
	return stats, diff.IsZero()
}
