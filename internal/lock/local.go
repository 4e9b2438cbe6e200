package lock

import (
	"context"
	"sync"
)

// Local is an in-process Locker. Each key owns a one-slot channel, and
// entries are dropped once nobody holds or waits for them.
type Local struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

type localEntry struct {
	slot chan struct{}
	refs int
}

// NewLocal creates an empty in-process locker
func NewLocal() *Local {
	return &Local{entries: make(map[string]*localEntry)}
}

// Compile-time verification that *Local implements Locker
var _ Locker = (*Local)(nil)

// Acquire blocks until every key is held or ctx is done
func (l *Local) Acquire(ctx context.Context, keys ...string) (Release, error) {
	return acquireAll(ctx, keys, l.take)
}

func (l *Local) take(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{slot: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.slot <- struct{}{}:
		return func() { l.release(key, e, true) }, nil
	case <-ctx.Done():
		l.release(key, e, false)
		return nil, waitError(ctx, key)
	}
}

func (l *Local) release(key string, e *localEntry, held bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held {
		<-e.slot
	}
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// size returns the number of tracked keys
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
