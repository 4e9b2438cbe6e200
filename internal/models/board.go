package models

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Board is an ordered set of columns inside a project
type Board struct {
	ID          types.BoardID   `db:"id" json:"id"`
	ProjectID   types.ProjectID `db:"project_id" json:"project_id"`
	Name        string          `db:"name" json:"name"`
	Slug        string          `db:"slug" json:"slug"`
	Description string          `db:"description" json:"description"`
	IsDefault   bool            `db:"is_default" json:"is_default"`
	CreatedBy   types.UserID    `db:"created_by" json:"created_by"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// BoardScope carries the tenant chain for a board, used to attribute
// activity rows to their workspace and project.
type BoardScope struct {
	BoardID     types.BoardID     `db:"board_id"`
	ProjectID   types.ProjectID   `db:"project_id"`
	WorkspaceID types.WorkspaceID `db:"workspace_id"`
}

// BoardView is the ordered read model of a board: columns by position,
// each with its tasks by position.
type BoardView struct {
	Board   *Board        `json:"board"`
	Columns []*ColumnView `json:"columns"`
}

// TaskCount returns the number of tasks across all columns
func (v *BoardView) TaskCount() int {
	n := 0
	for _, col := range v.Columns {
		n += len(col.Tasks)
	}
	return n
}
