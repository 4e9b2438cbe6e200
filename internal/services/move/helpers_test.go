package move

import (
	"context"
	"errors"
	"testing"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/metrics"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/activity"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/types"
)

// testEnv wires a move service to a fresh fixture database
type testEnv struct {
	*testutil.Fixture
	svc     Service
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	f := testutil.NewFixture(t)
	m := metrics.New()
	recorder := activity.NewService(f.Repo, activity.WithMetrics(m))

	opts = append([]Option{WithMetrics(m)}, opts...)
	return &testEnv{
		Fixture: f,
		svc:     NewService(f.Repo, nil, recorder, opts...),
		metrics: m,
	}
}

func (e *testEnv) task(t *testing.T, id types.TaskID) *models.Task {
	t.Helper()
	task, err := e.Repo.GetTaskByID(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to load task %d: %v", id, err)
	}
	return task
}

func (e *testEnv) activities(t *testing.T, taskID types.TaskID) []*models.Activity {
	t.Helper()
	rows, err := e.Repo.ListActivities(context.Background(), database.ActivityFilter{TaskID: taskID})
	if err != nil {
		t.Fatalf("Failed to list activities: %v", err)
	}
	return rows
}

func assertStrictlyIncreasing(t *testing.T, positions []int64) {
	t.Helper()
	for i := 1; i < len(positions); i++ {
		if positions[i] <= positions[i-1] {
			t.Fatalf("positions not strictly increasing at %d: %v", i, positions)
		}
	}
}

func taskIDPtr(id types.TaskID) *types.TaskID {
	return &id
}

// failingRecorder is an activity service whose writes always fail
type failingRecorder struct{}

func (failingRecorder) RecordMove(context.Context, *types.UserID, activity.Move) (*models.Activity, error) {
	return nil, activity.ErrActivityRecordingFailed
}

func (failingRecorder) RecordCompaction(context.Context, *types.UserID, activity.Compaction) (*models.Activity, error) {
	return nil, activity.ErrActivityRecordingFailed
}

func (failingRecorder) ListActivities(context.Context, database.ActivityFilter) ([]*models.Activity, error) {
	return nil, errors.New("not implemented")
}

func (failingRecorder) ListNotifications(context.Context, types.UserID, bool) ([]*models.Notification, error) {
	return nil, errors.New("not implemented")
}
