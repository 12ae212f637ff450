package tx

import (
	"sort"

	"github.com/aquila-chain/ledgercore/pkg/txbase"
)

// Normalize sorts t's inputs, outputs and kernels into their canonical
// order and removes any input/output pair that cancels out (an input
// spending a commitment some output in the same transaction re-creates —
// "cut-through"). It is idempotent: normalizing an already-normalized
// transaction is a no-op. Returns the number of cut-through pairs removed.
// Matches the original's Transaction::Normalize (sort, then a two-pointer
// sweep over inputs/outputs comparing by commitment).
func Normalize(t *Transaction, params Params) int {
	sort.Slice(t.Inputs, func(i, j int) bool {
		return t.Inputs[i].Cmp(*t.Inputs[j]) == txbase.CmpLess
	})
	sort.Slice(t.Outputs, func(i, j int) bool {
		return t.Outputs[i].Cmp(*t.Outputs[j]) == txbase.CmpLess
	})
	sort.Slice(t.Kernels, func(i, j int) bool {
		return t.Kernels[i].Cmp(t.Kernels[j], params) == txbase.CmpLess
	})

	cutThrough := 0
	i, o := 0, 0
	inputs := t.Inputs[:0]
	outputs := t.Outputs[:0]

	for i < len(t.Inputs) && o < len(t.Outputs) {
		c := t.Inputs[i].TxElement.Cmp(t.Outputs[o].TxElement)
		switch {
		case c == txbase.CmpLess:
			inputs = append(inputs, t.Inputs[i])
			i++
		case c == txbase.CmpGreater:
			outputs = append(outputs, t.Outputs[o])
			o++
		default:
			// Same commitment on both sides: cancels out.
			cutThrough++
			i++
			o++
		}
	}
	inputs = append(inputs, t.Inputs[i:]...)
	outputs = append(outputs, t.Outputs[o:]...)

	t.Inputs = inputs
	t.Outputs = outputs

	return cutThrough
}
