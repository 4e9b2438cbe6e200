package lock

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedis_AcquireRelease(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedis(client, WithKeyPrefix("test:"))

	release, err := l.Acquire(context.Background(), "column:1", "column:2")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:column:1"))
	assert.True(t, mr.Exists("test:column:2"))

	release()
	assert.False(t, mr.Exists("test:column:1"))
	assert.False(t, mr.Exists("test:column:2"))
}

func TestRedis_TimeoutWhileHeld(t *testing.T) {
	_, client := newTestRedis(t)
	holder := NewRedis(client, WithRetryInterval(5*time.Millisecond))
	waiter := NewRedis(client, WithRetryInterval(5*time.Millisecond))

	release, err := holder.Acquire(context.Background(), "column:3")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = waiter.Acquire(ctx, "column:3")
	assert.ErrorIs(t, err, ErrTimeout)

	release()

	release2, err := waiter.Acquire(context.Background(), "column:3")
	require.NoError(t, err)
	release2()
}

func TestRedis_WaiterProceedsAfterRelease(t *testing.T) {
	_, client := newTestRedis(t)
	l := NewRedis(client, WithRetryInterval(5*time.Millisecond))

	release, err := l.Acquire(context.Background(), "column:4")
	require.NoError(t, err)

	acquired := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		r, err := l.Acquire(ctx, "column:4")
		if err == nil {
			r()
		}
		acquired <- err
	}()

	time.Sleep(20 * time.Millisecond)
	release()

	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("waiter never acquired the lock")
	}
}

func TestRedis_ExpiredLockIsNotDeletedByOldOwner(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedis(client, WithTTL(time.Second), WithKeyPrefix("test:"))

	staleRelease, err := l.Acquire(context.Background(), "column:5")
	require.NoError(t, err)

	// The first holder's key expires and a second owner takes it
	mr.FastForward(2 * time.Second)
	release, err := l.Acquire(context.Background(), "column:5")
	require.NoError(t, err)
	owner, err := mr.Get("test:column:5")
	require.NoError(t, err)

	staleRelease()
	current, err := mr.Get("test:column:5")
	require.NoError(t, err)
	assert.Equal(t, owner, current)

	release()
	assert.False(t, mr.Exists("test:column:5"))
}
