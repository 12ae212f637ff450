package txbase

// TxStats accumulates the aggregate counters the validation context tracks
// while walking a transaction or block body: total fee, total coinbase
// emission (wide, since it sums across a whole history window), and the
// per-kind element counts used by the body-size and shielded-count rules.
type TxStats struct {
	Fee             Amount
	Coinbase        AmountBig
	Kernels         uint32
	Inputs          uint32
	Outputs         uint32
	InputsShielded  uint32
	OutputsShielded uint32
}

// Add folds other into s in place, matching the original's TxStats::operator+=.
func (s *TxStats) Add(other TxStats) {
	s.Fee += other.Fee
	s.Coinbase = s.Coinbase.Add(other.Coinbase)
	s.Kernels += other.Kernels
	s.Inputs += other.Inputs
	s.Outputs += other.Outputs
	s.InputsShielded += other.InputsShielded
	s.OutputsShielded += other.OutputsShielded
}

// Reset zeroes all counters.
func (s *TxStats) Reset() {
	*s = TxStats{}
}
