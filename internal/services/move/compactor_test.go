package move

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/lock"
	"github.com/thenoetrevino/lanes/internal/metrics"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/position"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/types"
	"golang.org/x/sync/errgroup"
)

func TestCompact(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	col := e.CreateColumn(t, e.Board.ID, "Todo", 1024, nil)
	a := e.CreateTask(t, col.ID, "A", -7)
	b := e.CreateTask(t, col.ID, "B", 3)
	c := e.CreateTask(t, col.ID, "C", 4)
	d := e.CreateTask(t, col.ID, "D", 9000)

	t.Run("rewrites to the stride and keeps order", func(t *testing.T) {
		result, err := e.svc.Compact(ctx, col.ID, &e.User.ID)
		require.NoError(t, err)
		assert.True(t, result.Rewritten)
		assert.Equal(t, 4, result.Count)
		assert.Equal(t, ScopeColumn, result.Scope)
		assert.Equal(t, e.Board.ID, result.BoardID)

		assert.Equal(t, []types.TaskID{a.ID, b.ID, c.ID, d.ID}, e.ColumnOrder(t, col.ID))
		assert.Equal(t, []int64{1024, 2048, 3072, 4096}, e.ColumnPositions(t, col.ID))
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		result, err := e.svc.Compact(ctx, col.ID, &e.User.ID)
		require.NoError(t, err)
		assert.False(t, result.Rewritten)
		assert.Equal(t, []int64{1024, 2048, 3072, 4096}, e.ColumnPositions(t, col.ID))
	})

	t.Run("only the rewrite is recorded", func(t *testing.T) {
		rows, err := e.Repo.ListActivities(ctx, database.ActivityFilter{
			BoardID: e.Board.ID,
			Type:    models.ActivityColumnCompacted,
		})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, int64(1), e.metrics.GetSnapshot().Compactions)
	})
}

func TestCompact_EmptyColumn(t *testing.T) {
	e := newTestEnv(t)
	col := e.CreateColumn(t, e.Board.ID, "Empty", 1024, nil)

	result, err := e.svc.Compact(context.Background(), col.ID, nil)
	require.NoError(t, err)
	assert.False(t, result.Rewritten)
	assert.Zero(t, result.Count)
}

func TestCompact_Errors(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.svc.Compact(ctx, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidColumnID)

	_, err = e.svc.Compact(ctx, 777, nil)
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = e.svc.CompactBoard(ctx, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidBoardID)

	_, err = e.svc.CompactBoard(ctx, 777, nil)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestCompact_LockTimeout(t *testing.T) {
	ctx := context.Background()
	locker := lock.NewLocal()
	f := testutil.NewFixture(t)
	m := metrics.New()
	svc := NewService(f.Repo, locker, nil,
		WithMetrics(m),
		WithConfig(Config{LockTimeout: 50 * time.Millisecond}),
	)

	col := f.CreateColumn(t, f.Board.ID, "Doing", 1024, nil)
	f.CreateTask(t, col.ID, "A", 1)
	f.CreateTask(t, col.ID, "B", 2)

	release, err := locker.Acquire(ctx, lock.ColumnKey(col.ID))
	require.NoError(t, err)
	defer release()

	_, err = svc.Compact(ctx, col.ID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMoveTimeout)
	assert.ErrorIs(t, err, lock.ErrTimeout)

	assert.Equal(t, []int64{1, 2}, f.ColumnPositions(t, col.ID))
	assert.Equal(t, int64(1), m.GetSnapshot().MoveTimeouts)
	assert.Zero(t, m.GetSnapshot().Compactions)
}

func TestCompact_ConcurrentWithMoves(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	backlog := e.CreateColumn(t, e.Board.ID, "Backlog", 1024, nil)
	doing := e.CreateColumn(t, e.Board.ID, "Doing", 2048, nil)
	a := e.CreateTask(t, doing.ID, "A", 1)
	b := e.CreateTask(t, doing.ID, "B", 2)
	c := e.CreateTask(t, doing.ID, "C", 3)

	var moverIDs []types.TaskID
	for i, title := range []string{"one", "two", "three", "four"} {
		moverIDs = append(moverIDs, e.CreateTask(t, backlog.ID, title, int64(i+1)*1024).ID)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range moverIDs {
		g.Go(func() error {
			_, err := e.svc.RequestMove(gctx, MoveRequest{TaskID: id, ColumnID: doing.ID})
			return err
		})
	}
	for range 3 {
		g.Go(func() error {
			_, err := e.svc.Compact(gctx, doing.ID, nil)
			return err
		})
	}
	require.NoError(t, g.Wait())

	order := e.ColumnOrder(t, doing.ID)
	require.Len(t, order, 7)
	assert.Equal(t, []types.TaskID{a.ID, b.ID, c.ID}, order[:3])
	assert.ElementsMatch(t, moverIDs, order[3:])
	assertStrictlyIncreasing(t, e.ColumnPositions(t, doing.ID))

	_, err := e.svc.Compact(ctx, doing.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, order, e.ColumnOrder(t, doing.ID))
	assert.Equal(t, []int64{1024, 2048, 3072, 4096, 5120, 6144, 7168}, e.ColumnPositions(t, doing.ID))
}

func TestCompactBoard(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	todo := e.CreateColumn(t, e.Board.ID, "Todo", 5, nil)
	doing := e.CreateColumn(t, e.Board.ID, "Doing", 6, nil)
	done := e.CreateColumn(t, e.Board.ID, "Done", 7, nil)

	result, err := e.svc.CompactBoard(ctx, e.Board.ID, nil)
	require.NoError(t, err)
	assert.True(t, result.Rewritten)
	assert.Equal(t, ScopeBoard, result.Scope)
	assert.Equal(t, 3, result.Count)

	columns, err := e.Repo.GetColumnsByBoard(ctx, e.Board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, []types.ColumnID{todo.ID, doing.ID, done.ID},
		[]types.ColumnID{columns[0].ID, columns[1].ID, columns[2].ID})
	assert.Equal(t, []int64{1024, 2048, 3072},
		[]int64{columns[0].Position, columns[1].Position, columns[2].Position})

	again, err := e.svc.CompactBoard(ctx, e.Board.ID, nil)
	require.NoError(t, err)
	assert.False(t, again.Rewritten)
}

func TestRenumber(t *testing.T) {
	alloc := position.New(10)

	tests := []struct {
		name      string
		rows      []int64
		want      []int64
		rewritten bool
	}{
		{"already canonical", []int64{10, 20, 30}, []int64{10, 20, 30}, false},
		{"dense", []int64{1, 2, 3}, []int64{10, 20, 30}, true},
		{"sparse", []int64{-500, 0, 999}, []int64{10, 20, 30}, true},
		{"overlapping target", []int64{20, 30, 31}, []int64{10, 20, 30}, true},
		{"empty", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]models.OrderedPosition, len(tt.rows))
			stored := map[int64]int64{}
			for i, p := range tt.rows {
				rows[i] = models.OrderedPosition{ID: int64(i + 1), Position: p}
				stored[int64(i+1)] = p
			}

			// unique index stand-in: no two rows may share a value after any write
			set := func(id, pos int64) error {
				for other, p := range stored {
					if other != id && p == pos {
						return errors.New("duplicate position")
					}
				}
				stored[id] = pos
				return nil
			}

			rewritten, err := renumber(alloc, rows, set)
			require.NoError(t, err)
			assert.Equal(t, tt.rewritten, rewritten)
			for i, want := range tt.want {
				assert.Equal(t, want, stored[int64(i+1)])
			}
		})
	}
}
