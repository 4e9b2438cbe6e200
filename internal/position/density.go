package position

import "math"

// MinGap returns the smallest difference between consecutive positions.
// positions must be sorted ascending. ok is false for fewer than two values.
func MinGap(positions []int64) (gap uint64, ok bool) {
	if len(positions) < 2 {
		return 0, false
	}
	gap = math.MaxUint64
	for i := 1; i < len(positions); i++ {
		var d uint64
		if positions[i] > positions[i-1] {
			d = uint64(positions[i]) - uint64(positions[i-1])
		}
		if d < gap {
			gap = d
		}
	}
	return gap, true
}

// NeedsCompaction reports whether any two neighbours are closer than
// threshold. Duplicates or out-of-order values always need compaction.
func NeedsCompaction(positions []int64, threshold int64) bool {
	gap, ok := MinGap(positions)
	if !ok {
		return false
	}
	if threshold < 1 {
		threshold = 1
	}
	return gap < uint64(threshold)
}

// ParkingStart returns the first of n consecutive values that collide with
// neither current nor target. Renumbering moves every row to a parking
// value first so a unique (scope, position) index is never violated while
// rows are rewritten one by one.
func ParkingStart(current, target []int64) (int64, bool) {
	n := int64(len(current))
	if n == 0 {
		return 0, true
	}

	lo, hi := int64(math.MaxInt64), int64(math.MinInt64)
	for _, set := range [][]int64{current, target} {
		for _, p := range set {
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
	}

	if hi <= math.MaxInt64-n {
		return hi + 1, true
	}
	if lo >= math.MinInt64+n {
		return lo - n, true
	}
	return 0, false
}
