package models

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Task is a card on a board. BoardID is denormalized from the column and
// must always equal the board of ColumnID.
type Task struct {
	ID          types.TaskID   `db:"id" json:"id"`
	ColumnID    types.ColumnID `db:"column_id" json:"column_id"`
	BoardID     types.BoardID  `db:"board_id" json:"board_id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Position    int64          `db:"position" json:"position"`
	Priority    *Priority      `db:"priority" json:"priority,omitempty"`
	DueDate     *time.Time     `db:"due_date" json:"due_date,omitempty"`
	CompletedAt *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	CreatedBy   types.UserID   `db:"created_by" json:"created_by"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// GetID returns the task id (used by quiet CLI output)
func (t *Task) GetID() int64 {
	return int64(t.ID)
}

// IsCompleted reports whether the task has a completion timestamp
func (t *Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// IsOverdue reports whether an open task is past its due date at now
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.IsCompleted() {
		return false
	}
	return t.DueDate.Before(now)
}

// TaskSummary is the card view used by ordered listings
type TaskSummary struct {
	ID          types.TaskID   `db:"id" json:"id"`
	ColumnID    types.ColumnID `db:"column_id" json:"column_id"`
	BoardID     types.BoardID  `db:"board_id" json:"board_id"`
	Title       string         `db:"title" json:"title"`
	Position    int64          `db:"position" json:"position"`
	Priority    *Priority      `db:"priority" json:"priority,omitempty"`
	Completed   bool           `db:"completed" json:"completed"`
	AssigneeIDs []types.UserID `db:"-" json:"assignee_ids,omitempty"`
	Labels      []*Label       `db:"-" json:"labels,omitempty"`
}
