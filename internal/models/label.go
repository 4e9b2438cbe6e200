package models

import "github.com/thenoetrevino/lanes/internal/types"

// Label is a board-scoped tag. Managed by other services; the ordering
// engine only reads labels when rendering cards.
type Label struct {
	ID      types.LabelID `db:"id" json:"id"`
	BoardID types.BoardID `db:"board_id" json:"board_id"`
	Name    string        `db:"name" json:"name"`
	Color   string        `db:"color" json:"color"`
}
