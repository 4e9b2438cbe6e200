package database

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// TenantRepository manages the workspace chain above boards.
// The core only creates these rows for fixtures and demo data.
type TenantRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByName(ctx context.Context, name string) (*models.User, error)
	CreateWorkspace(ctx context.Context, ws *models.Workspace) error
	CreateProject(ctx context.Context, project *models.Project) error
}

// BoardRepository reads boards and their tenant scope
type BoardRepository interface {
	CreateBoard(ctx context.Context, board *models.Board) error
	GetBoardByID(ctx context.Context, id types.BoardID) (*models.Board, error)
	GetBoardScope(ctx context.Context, id types.BoardID) (*models.BoardScope, error)
	ListBoardIDs(ctx context.Context) ([]types.BoardID, error)
}

// ColumnRepository reads columns and rewrites their board positions
type ColumnRepository interface {
	CreateColumn(ctx context.Context, column *models.Column) error
	GetColumnByID(ctx context.Context, id types.ColumnID) (*models.Column, error)
	GetColumnsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Column, error)
	ListColumnIDs(ctx context.Context) ([]types.ColumnID, error)
	ListColumnPositions(ctx context.Context, boardID types.BoardID) ([]models.OrderedPosition, error)
	SetColumnPosition(ctx context.Context, id types.ColumnID, position int64) error
}

// TaskRepository reads tasks and writes their ordering fields
type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTaskByID(ctx context.Context, id types.TaskID) (*models.Task, error)
	GetTaskSummariesByColumn(ctx context.Context, columnID types.ColumnID) ([]*models.TaskSummary, error)
	GetTaskSummariesByBoard(ctx context.Context, boardID types.BoardID) ([]*models.TaskSummary, error)
	ListTaskPositions(ctx context.Context, columnID types.ColumnID) ([]models.OrderedPosition, error)
	SetTaskPosition(ctx context.Context, id types.TaskID, position int64) error
	MoveTask(ctx context.Context, id types.TaskID, columnID types.ColumnID, boardID types.BoardID, position int64) error
	AssignUser(ctx context.Context, taskID types.TaskID, userID types.UserID, assignedBy *types.UserID) error
	GetTaskAssigneeIDs(ctx context.Context, taskID types.TaskID) ([]types.UserID, error)
}

// LabelRepository manages board labels. Cards only read them.
type LabelRepository interface {
	CreateLabel(ctx context.Context, label *models.Label) error
	AttachLabel(ctx context.Context, taskID types.TaskID, labelID types.LabelID) error
	GetTaskLabels(ctx context.Context, taskID types.TaskID) ([]*models.Label, error)
}

// ActivityRepository appends and reads the activity trail. There is no
// update or delete: activity rows are write-once.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	ListActivities(ctx context.Context, filter ActivityFilter) ([]*models.Activity, error)
}

// NotificationRepository appends and reads per-user notifications
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID types.UserID, unreadOnly bool) ([]*models.Notification, error)
}

// DataStore is the full data access surface used by the services.
// WithTx runs fn against a DataStore bound to a single transaction.
type DataStore interface {
	TenantRepository
	BoardRepository
	ColumnRepository
	TaskRepository
	LabelRepository
	ActivityRepository
	NotificationRepository

	WithTx(ctx context.Context, fn func(tx DataStore) error) error
}

// ActivityFilter selects activity rows. Zero fields are ignored.
type ActivityFilter struct {
	BoardID types.BoardID
	TaskID  types.TaskID
	Type    string
	Limit   int
}
