// Package txbase provides the primitive building blocks shared by every
// higher layer: heights, amounts (single and wide), the transaction
// statistics accumulator, and the 3-valued comparison framework used to
// give every sortable entity a canonical total order.
package txbase

import "math"

// Height is a block height.
type Height uint64

// MaxHeight is the saturating maximum height, used as a sentinel for
// "unbounded" ranges and unspecified future forks.
const MaxHeight Height = math.MaxUint64

// HeightGenesis is the height of the first block.
const HeightGenesis Height = 1

// HeightRange is an inclusive [Min, Max] range of heights.
type HeightRange struct {
	Min Height
	Max Height
}

// Reset yields the full range [0, MaxHeight].
func (r *HeightRange) Reset() {
	r.Min = 0
	r.Max = MaxHeight
}

// IsEmpty reports whether the range contains no heights.
func (r HeightRange) IsEmpty() bool {
	return r.Min > r.Max
}

// IsInRange reports whether h falls within [Min, Max].
func (r HeightRange) IsInRange(h Height) bool {
	if h < r.Min {
		return false
	}
	return r.IsInRangeRelative(h - r.Min)
}

// IsInRangeRelative reports whether dh <= (Max - Min), avoiding overflow
// when Max is MaxHeight.
func (r HeightRange) IsInRangeRelative(dh Height) bool {
	return dh <= (r.Max - r.Min)
}

// Intersect narrows r to the overlap with x. Commutative: r.Intersect(x)
// and x.Intersect(r) yield the same bounds (though IsEmpty may differ in
// which range is asked, the resulting [Min,Max] values match).
func (r *HeightRange) Intersect(x HeightRange) {
	if x.Min > r.Min {
		r.Min = x.Min
	}
	if x.Max < r.Max {
		r.Max = x.Max
	}
}

// Contains reports whether x is entirely contained within r — used by the
// kernel nesting rule (a nested kernel's height range must be contained in
// its parent's).
func (r HeightRange) Contains(x HeightRange) bool {
	return x.Min >= r.Min && x.Max <= r.Max
}

// HeightAdd adds val to trg, saturating at MaxHeight on overflow, matching
// the original's HeightAdd free function used by Output.get_MinMaturity.
func HeightAdd(trg Height, val Height) Height {
	sum := trg + val
	if sum < val {
		return MaxHeight
	}
	return sum
}
