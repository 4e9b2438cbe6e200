package lock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestColumnAndBoardKeys(t *testing.T) {
	assert.Equal(t, "column:4", ColumnKey(4))
	assert.Equal(t, "board:9", BoardKey(9))
}

func TestNormalizeKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, normalizeKeys([]string{"c", "a", "b", "a"}))
}

func TestLocal_AcquireRelease(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "column:1", "column:2")
	require.NoError(t, err)
	assert.Equal(t, 2, l.size())

	release()
	release() // second call is a no-op
	assert.Equal(t, 0, l.size())
}

func TestLocal_TimeoutWhileHeld(t *testing.T) {
	l := NewLocal()

	release, err := l.Acquire(context.Background(), "column:1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = l.Acquire(ctx, "column:1")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestLocal_CancelledIsNotTimeout(t *testing.T) {
	l := NewLocal()

	release, err := l.Acquire(context.Background(), "column:1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Acquire(ctx, "column:1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestLocal_PartialAcquireIsRolledBack(t *testing.T) {
	l := NewLocal()

	// Hold the second key so acquiring both fails after taking the first
	release, err := l.Acquire(context.Background(), "column:2")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "column:1", "column:2")
	require.ErrorIs(t, err, ErrTimeout)

	// column:1 must be free again
	quick, cancelQuick := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelQuick()
	r1, err := l.Acquire(quick, "column:1")
	require.NoError(t, err)
	r1()

	release()
	assert.Equal(t, 0, l.size())
}

func TestLocal_MutualExclusion(t *testing.T) {
	l := NewLocal()
	var inside atomic.Int32
	var maxInside atomic.Int32

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			release, err := l.Acquire(ctx, "column:7")
			if err != nil {
				return err
			}
			defer release()

			n := inside.Add(1)
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), maxInside.Load())
}

func TestLocal_OppositeOrderDoesNotDeadlock(t *testing.T) {
	l := NewLocal()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 50; i++ {
		keys := []string{"column:1", "column:2"}
		if i%2 == 1 {
			keys = []string{"column:2", "column:1"}
		}
		g.Go(func() error {
			release, err := l.Acquire(gctx, keys...)
			if err != nil {
				return err
			}
			release()
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, 0, l.size())
}
