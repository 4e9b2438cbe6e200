// Package lock serializes writers of one ordering scope (a column's task
// positions, a board's column positions).
//
// Acquire takes every key in sorted order, so two requests that need the
// same pair of columns in opposite directions cannot deadlock.
package lock

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/thenoetrevino/lanes/internal/types"
)

// ErrTimeout is returned when a key could not be acquired before the
// context deadline
var ErrTimeout = errors.New("timed out waiting for ordering lock")

// Release frees every key taken by a successful Acquire. It is safe to
// call more than once.
type Release func()

// Locker acquires exclusive ownership of a set of keys
type Locker interface {
	Acquire(ctx context.Context, keys ...string) (Release, error)
}

// ColumnKey is the lock key guarding task positions within a column
func ColumnKey(id types.ColumnID) string {
	return fmt.Sprintf("column:%d", id)
}

// BoardKey is the lock key guarding column positions within a board
func BoardKey(id types.BoardID) string {
	return fmt.Sprintf("board:%d", id)
}

// normalizeKeys sorts and deduplicates keys
func normalizeKeys(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}

// waitError converts a context failure into the error returned by Acquire
func waitError(ctx context.Context, key string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, key)
	}
	return ctx.Err()
}

// acquireAll takes keys one by one with take, releasing everything already
// held if any key fails
func acquireAll(ctx context.Context, keys []string, take func(context.Context, string) (func(), error)) (Release, error) {
	keys = normalizeKeys(keys)
	held := make([]func(), 0, len(keys))

	releaseHeld := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}

	for _, key := range keys {
		unlock, err := take(ctx, key)
		if err != nil {
			releaseHeld()
			return nil, err
		}
		held = append(held, unlock)
	}

	var once sync.Once
	return func() { once.Do(releaseHeld) }, nil
}
