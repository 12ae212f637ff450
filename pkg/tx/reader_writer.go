package tx

import "github.com/aquila-chain/ledgercore/pkg/txbase"

// Reader streams a transaction's elements in canonical order — inputs,
// then outputs, then kernels — matching the original's TxBase::IReader
// contract used to merge multiple transaction bodies without fully
// materializing their concatenation.
type Reader struct {
	t                      *Transaction
	iInput, iOut, iKernel  int
}

// NewReader returns a Reader positioned at the start of t, which must
// already be normalized.
func NewReader(t *Transaction) *Reader {
	return &Reader{t: t}
}

// Reset rewinds the reader to the start.
func (r *Reader) Reset() {
	r.iInput, r.iOut, r.iKernel = 0, 0, 0
}

// NextInput returns the next input, or nil when exhausted.
func (r *Reader) NextInput() *Input {
	if r.iInput >= len(r.t.Inputs) {
		return nil
	}
	v := r.t.Inputs[r.iInput]
	r.iInput++
	return v
}

// NextOutput returns the next output, or nil when exhausted.
func (r *Reader) NextOutput() *Output {
	if r.iOut >= len(r.t.Outputs) {
		return nil
	}
	v := r.t.Outputs[r.iOut]
	r.iOut++
	return v
}

// NextKernel returns the next top-level kernel, or nil when exhausted.
func (r *Reader) NextKernel() *Kernel {
	if r.iKernel >= len(r.t.Kernels) {
		return nil
	}
	v := r.t.Kernels[r.iKernel]
	r.iKernel++
	return v
}

// AddStats folds every element this reader yields into s, then rewinds.
func (r *Reader) AddStats(s *txbase.TxStats) {
	r.Reset()
	s.Inputs += uint32(len(r.t.Inputs))
	for o := r.NextOutput(); o != nil; o = r.NextOutput() {
		o.AddStats(s)
	}
	for k := r.NextKernel(); k != nil; k = r.NextKernel() {
		k.AddStats(s)
	}
	r.Reset()
}

// Writer accumulates elements into a Transaction in the order they're
// written — matching the original's TxBase::IWriter, used by Merge to
// build a combined body out of several readers' streams.
type Writer struct {
	t *Transaction
}

// NewWriter returns a Writer appending into t.
func NewWriter(t *Transaction) *Writer {
	return &Writer{t: t}
}

// WriteInput appends in to the transaction being built.
func (w *Writer) WriteInput(in *Input) { w.t.Inputs = append(w.t.Inputs, in) }

// WriteOutput appends o to the transaction being built.
func (w *Writer) WriteOutput(o *Output) { w.t.Outputs = append(w.t.Outputs, o) }

// WriteKernel appends k to the transaction being built.
func (w *Writer) WriteKernel(k *Kernel) { w.t.Kernels = append(w.t.Kernels, k) }

// MergeTransactions drains every transaction's reader in order into a
// fresh Transaction and sums their Offsets, matching
// Transaction::BodyBase::Merge — combining several transaction bodies
// (e.g. a block's constituent transactions) into one body without
// re-deriving any element. The result is not normalized; call Normalize
// on it.
func MergeTransactions(parts []*Transaction) *Transaction {
	merged := &Transaction{}
	w := NewWriter(merged)

	for _, p := range parts {
		r := NewReader(p)
		for in := r.NextInput(); in != nil; in = r.NextInput() {
			w.WriteInput(in)
		}
		for o := r.NextOutput(); o != nil; o = r.NextOutput() {
			w.WriteOutput(o)
		}
		for k := r.NextKernel(); k != nil; k = r.NextKernel() {
			w.WriteKernel(k)
		}
		merged.Offset = merged.Offset.Add(p.Offset)
	}

	return merged
}
