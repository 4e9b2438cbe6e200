package move

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/lock"
	"github.com/thenoetrevino/lanes/internal/metrics"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/types"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// Several handles on one database file (CLI next to the daemon)
// ============================================================================

func TestRequestMove_TwoHandlesOnOneFile(t *testing.T) {
	ctx := context.Background()
	dbA, path := testutil.SetupFileDB(t, "")
	dbB, _ := testutil.SetupFileDB(t, path)
	f := testutil.NewFixtureWithDB(t, dbA)

	// each handle has its own lock table, as separate processes would
	services := []Service{
		NewService(database.NewRepository(dbA), lock.NewLocal(), nil),
		NewService(database.NewRepository(dbB), lock.NewLocal(), nil),
	}

	const perHandle = 20
	type lane struct {
		svc   Service
		dest  types.ColumnID
		tasks []types.TaskID
	}
	var lanes []lane
	for i, svc := range services {
		src := f.CreateColumn(t, f.Board.ID, fmt.Sprintf("Backlog %d", i), int64(4*i+1)*1024, nil)
		dest := f.CreateColumn(t, f.Board.ID, fmt.Sprintf("Doing %d", i), int64(4*i+2)*1024, nil)
		l := lane{svc: svc, dest: dest.ID}
		for n := range perHandle {
			task := f.CreateTask(t, src.ID, fmt.Sprintf("task %d.%d", i, n), int64(n+1)*1024)
			l.tasks = append(l.tasks, task.ID)
		}
		lanes = append(lanes, l)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range lanes {
		for _, id := range l.tasks {
			g.Go(func() error {
				_, err := l.svc.RequestMove(gctx, MoveRequest{TaskID: id, ColumnID: l.dest})
				return err
			})
		}
	}
	require.NoError(t, g.Wait())

	for _, l := range lanes {
		assert.ElementsMatch(t, l.tasks, f.ColumnOrder(t, l.dest))
		assertStrictlyIncreasing(t, f.ColumnPositions(t, l.dest))
	}
}

func TestCompact_BusyDatabaseIsTimeout(t *testing.T) {
	ctx := context.Background()
	dbA, path := testutil.SetupFileDB(t, "")
	dbB, _ := testutil.SetupFileDB(t, path)
	_, err := dbB.ExecContext(ctx, "PRAGMA busy_timeout = 50")
	require.NoError(t, err)

	f := testutil.NewFixtureWithDB(t, dbA)
	col := f.CreateColumn(t, f.Board.ID, "Doing", 1024, nil)
	f.CreateTask(t, col.ID, "A", 1)
	f.CreateTask(t, col.ID, "B", 2)

	m := metrics.New()
	other := NewService(database.NewRepository(dbB), nil, nil, WithMetrics(m))

	// the write lock is taken at BEGIN and held until fn returns
	err = f.Repo.WithTx(ctx, func(tx database.DataStore) error {
		_, err := other.Compact(ctx, col.ID, nil)
		assert.ErrorIs(t, err, ErrMoveTimeout)
		assert.ErrorIs(t, err, database.ErrBusy)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, f.ColumnPositions(t, col.ID))
	assert.Equal(t, int64(1), m.GetSnapshot().MoveTimeouts)
}
