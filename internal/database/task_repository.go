package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// TaskRepo handles task operations
type TaskRepo struct {
	ext sqlx.ExtContext
}

const taskColumns = `id, column_id, board_id, title, description, position, priority,
	due_date, completed_at, created_by, created_at, updated_at`

const taskSummaryColumns = `id, column_id, board_id, title, position, priority,
	completed_at IS NOT NULL AS completed`

// ============================================================================
// Task Operations
// ============================================================================

// CreateTask inserts a task. The board id is always taken from the column
// so the denormalized reference cannot drift.
func (r *TaskRepo) CreateTask(ctx context.Context, task *models.Task) error {
	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO tasks (column_id, board_id, title, description, position, priority, due_date, created_by)
		 SELECT c.id, c.board_id, ?, ?, ?, ?, ?, ?
		 FROM columns c WHERE c.id = ?`,
		task.Title, task.Description, task.Position, task.Priority, task.DueDate, task.CreatedBy,
		task.ColumnID,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	if err := expectOneRow(res, fmt.Sprintf("column %d", task.ColumnID)); err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return sqlx.GetContext(ctx, r.ext, task, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
}

// GetTaskByID retrieves a single task
func (r *TaskRepo) GetTaskByID(ctx context.Context, id types.TaskID) (*models.Task, error) {
	var task models.Task
	if err := sqlx.GetContext(ctx, r.ext, &task, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id); err != nil {
		return nil, notFound(err, fmt.Sprintf("task %d", id))
	}
	return &task, nil
}

// GetTaskSummariesByColumn returns a column's tasks by ascending position, ties by id
func (r *TaskRepo) GetTaskSummariesByColumn(ctx context.Context, columnID types.ColumnID) ([]*models.TaskSummary, error) {
	tasks := []*models.TaskSummary{}
	err := sqlx.SelectContext(ctx, r.ext, &tasks,
		`SELECT `+taskSummaryColumns+` FROM tasks WHERE column_id = ? ORDER BY position, id`, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for column %d: %w", columnID, err)
	}
	return tasks, nil
}

// GetTaskSummariesByBoard returns every task on a board ordered by column then position.
// Column order here is by id; callers group by ColumnID.
func (r *TaskRepo) GetTaskSummariesByBoard(ctx context.Context, boardID types.BoardID) ([]*models.TaskSummary, error) {
	tasks := []*models.TaskSummary{}
	err := sqlx.SelectContext(ctx, r.ext, &tasks,
		`SELECT `+taskSummaryColumns+` FROM tasks WHERE board_id = ? ORDER BY column_id, position, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for board %d: %w", boardID, err)
	}
	return tasks, nil
}

// ============================================================================
// Ordering
// ============================================================================

// ListTaskPositions returns (id, position) for a column in display order
func (r *TaskRepo) ListTaskPositions(ctx context.Context, columnID types.ColumnID) ([]models.OrderedPosition, error) {
	var out []models.OrderedPosition
	err := sqlx.SelectContext(ctx, r.ext, &out,
		`SELECT id, position FROM tasks WHERE column_id = ? ORDER BY position, id`, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task positions for column %d: %w", columnID, err)
	}
	return out, nil
}

// SetTaskPosition overwrites a task's position within its current column
func (r *TaskRepo) SetTaskPosition(ctx context.Context, id types.TaskID, position int64) error {
	res, err := r.ext.ExecContext(ctx,
		`UPDATE tasks SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, position, id)
	if err != nil {
		return fmt.Errorf("failed to set position of task %d: %w", id, err)
	}
	return expectOneRow(res, fmt.Sprintf("task %d", id))
}

// MoveTask writes the column, board and position of a task in one statement
func (r *TaskRepo) MoveTask(ctx context.Context, id types.TaskID, columnID types.ColumnID, boardID types.BoardID, position int64) error {
	res, err := r.ext.ExecContext(ctx,
		`UPDATE tasks
		 SET column_id = ?, board_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		columnID, boardID, position, id,
	)
	if err != nil {
		return fmt.Errorf("failed to move task %d: %w", id, err)
	}
	return expectOneRow(res, fmt.Sprintf("task %d", id))
}

// ============================================================================
// Assignees
// ============================================================================

// AssignUser adds a user to a task's assignee set. Re-assigning is a no-op.
func (r *TaskRepo) AssignUser(ctx context.Context, taskID types.TaskID, userID types.UserID, assignedBy *types.UserID) error {
	_, err := r.ext.ExecContext(ctx,
		`INSERT OR IGNORE INTO task_user (task_id, user_id, assigned_by) VALUES (?, ?, ?)`,
		taskID, userID, assignedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to assign user %d to task %d: %w", userID, taskID, err)
	}
	return nil
}

// GetTaskAssigneeIDs returns the users assigned to a task
func (r *TaskRepo) GetTaskAssigneeIDs(ctx context.Context, taskID types.TaskID) ([]types.UserID, error) {
	var ids []types.UserID
	err := sqlx.SelectContext(ctx, r.ext, &ids,
		`SELECT user_id FROM task_user WHERE task_id = ? ORDER BY user_id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignees of task %d: %w", taskID, err)
	}
	return ids, nil
}
