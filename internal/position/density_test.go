package position

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinGap(t *testing.T) {
	_, ok := MinGap(nil)
	assert.False(t, ok)

	_, ok = MinGap([]int64{5})
	assert.False(t, ok)

	gap, ok := MinGap([]int64{10, 30, 31, 100})
	assert.True(t, ok)
	assert.Equal(t, uint64(1), gap)

	gap, ok = MinGap([]int64{math.MinInt64, math.MaxInt64})
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), gap)

	gap, ok = MinGap([]int64{10, 10})
	assert.True(t, ok)
	assert.Equal(t, uint64(0), gap)
}

func TestNeedsCompaction(t *testing.T) {
	tests := []struct {
		name      string
		positions []int64
		threshold int64
		want      bool
	}{
		{"empty", nil, 8, false},
		{"single", []int64{1}, 8, false},
		{"sparse", []int64{1024, 2048, 3072}, 8, false},
		{"dense pair", []int64{1024, 1027, 2048}, 8, true},
		{"duplicates", []int64{5, 5}, 1, true},
		{"out of order", []int64{20, 10}, 1, true},
		{"threshold clamps to one", []int64{1, 2}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsCompaction(tt.positions, tt.threshold))
		})
	}
}

func TestParkingStart(t *testing.T) {
	t.Run("parks above everything", func(t *testing.T) {
		start, ok := ParkingStart([]int64{10, 11, 12}, []int64{1024, 2048, 3072})
		assert.True(t, ok)
		assert.Equal(t, int64(3073), start)
	})

	t.Run("parks below when the top is full", func(t *testing.T) {
		start, ok := ParkingStart([]int64{5, math.MaxInt64}, []int64{1024, 2048})
		assert.True(t, ok)
		assert.Equal(t, int64(3), start)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := ParkingStart(nil, nil)
		assert.True(t, ok)
	})

	t.Run("no room on either side", func(t *testing.T) {
		_, ok := ParkingStart([]int64{math.MinInt64, math.MaxInt64}, []int64{1, 2})
		assert.False(t, ok)
	})
}
