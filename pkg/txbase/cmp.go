package txbase

// Cmp is a 3-valued comparison result, matching the original's cmp()
// methods used throughout the element hierarchy to build a canonical total
// order (transaction normalization sorts inputs/outputs/kernels by this
// order before the cut-through sweep).
type Cmp int

const (
	CmpLess    Cmp = -1
	CmpEqual   Cmp = 0
	CmpGreater Cmp = 1
)

// Comparable is implemented by the sortable elements whose order needs no
// extra context (TxElement, Input, Output); Kernel.Cmp also takes the
// validation Params and so does not satisfy it. Cmp must define a strict
// weak order: a.Cmp(b) == -b.Cmp(a) for all comparable pairs.
type Comparable[T any] interface {
	Cmp(other T) Cmp
}

// CmpBytes gives the canonical lexicographic ordering used to break ties
// between same-typed elements once their distinguishing fields compare
// equal (e.g. two kernels of the same subtype, or a point encoding).
func CmpBytes(a, b []byte) Cmp {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] < b[i] {
			return CmpLess
		}
		if a[i] > b[i] {
			return CmpGreater
		}
	}
	switch {
	case len(a) < len(b):
		return CmpLess
	case len(a) > len(b):
		return CmpGreater
	default:
		return CmpEqual
	}
}

// CmpUint64 orders two uint64 values.
func CmpUint64(a, b uint64) Cmp {
	switch {
	case a < b:
		return CmpLess
	case a > b:
		return CmpGreater
	default:
		return CmpEqual
	}
}
