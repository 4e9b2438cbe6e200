package models

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Column is a kanban column (e.g. "Todo", "In Progress", "Done").
// Columns are ordered within their board by ascending Position.
type Column struct {
	ID        types.ColumnID `db:"id" json:"id"`
	BoardID   types.BoardID  `db:"board_id" json:"board_id"`
	Name      string         `db:"name" json:"name"`
	Position  int64          `db:"position" json:"position"`
	Color     string         `db:"color" json:"color"`
	Limit     *int           `db:"wip_limit" json:"limit,omitempty"` // nil means unlimited
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// HasLimit reports whether the column enforces a WIP cap
func (c *Column) HasLimit() bool {
	return c.Limit != nil
}

// AcceptsAnother reports whether a column currently holding count tasks
// can take one more without exceeding its WIP limit.
func (c *Column) AcceptsAnother(count int) bool {
	if c.Limit == nil {
		return true
	}
	return count < *c.Limit
}

// ColumnView is a column together with its tasks in display order
type ColumnView struct {
	Column *Column        `json:"column"`
	Tasks  []*TaskSummary `json:"tasks"`
}

// OrderedPosition pairs a row id with its stored position.
// Used by compaction and density checks, where nothing else is needed.
type OrderedPosition struct {
	ID       int64 `db:"id"`
	Position int64 `db:"position"`
}
