// Package position computes integer sort keys for ordered sequences.
//
// Positions are sparse: new rows are placed halfway between their
// neighbours, so a single move writes a single row. When two neighbours
// are adjacent integers the sequence has to be renumbered (see Sequence).
package position

import (
	"errors"
	"math"
)

// DefaultStride is the gap between consecutive positions after renumbering
const DefaultStride int64 = 1024

// ErrPositionExhausted means no integer lies strictly between the neighbours.
// Callers renumber the sequence and try again.
var ErrPositionExhausted = errors.New("no free position between neighbours")

// Allocator computes positions for insertion into an ordered sequence
type Allocator struct {
	Stride int64
}

// New returns an allocator using stride, or DefaultStride when stride < 2
func New(stride int64) Allocator {
	if stride < 2 {
		stride = DefaultStride
	}
	return Allocator{Stride: stride}
}

func (a Allocator) stride() int64 {
	if a.Stride < 2 {
		return DefaultStride
	}
	return a.Stride
}

// Between returns a position strictly greater than prev and strictly
// less than next. A nil prev means "insert first", a nil next means
// "insert last", both nil means the sequence is empty.
func (a Allocator) Between(prev, next *int64) (int64, error) {
	stride := a.stride()

	switch {
	case prev == nil && next == nil:
		return stride, nil

	case prev == nil:
		if *next >= math.MinInt64+stride {
			return *next - stride, nil
		}
		return midpoint(math.MinInt64, *next)

	case next == nil:
		if *prev <= math.MaxInt64-stride {
			return *prev + stride, nil
		}
		return midpoint(*prev, math.MaxInt64)

	default:
		return midpoint(*prev, *next)
	}
}

// midpoint returns the integer halfway between lo and hi, both exclusive.
// The distance is computed in uint64 so extreme bounds cannot overflow.
func midpoint(lo, hi int64) (int64, error) {
	if hi <= lo {
		return 0, ErrPositionExhausted
	}
	gap := uint64(hi) - uint64(lo)
	if gap < 2 {
		return 0, ErrPositionExhausted
	}
	return lo + int64(gap/2), nil
}

// Sequence returns the canonical positions for n rows: stride, 2*stride, ...
func (a Allocator) Sequence(n int) []int64 {
	stride := a.stride()
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i+1) * stride
	}
	return out
}

// IsCanonical reports whether positions already equal Sequence(len(positions))
func (a Allocator) IsCanonical(positions []int64) bool {
	stride := a.stride()
	for i, p := range positions {
		if p != int64(i+1)*stride {
			return false
		}
	}
	return true
}
