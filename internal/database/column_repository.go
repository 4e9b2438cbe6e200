package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ColumnRepo handles column operations
type ColumnRepo struct {
	ext sqlx.ExtContext
}

const columnColumns = `id, board_id, name, position, color, wip_limit, created_at, updated_at`

// CreateColumn inserts a column at the given board position
func (r *ColumnRepo) CreateColumn(ctx context.Context, column *models.Column) error {
	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO columns (board_id, name, position, color, wip_limit)
		 VALUES (?, ?, ?, COALESCE(NULLIF(?, ''), '#6B7280'), ?)`,
		column.BoardID, column.Name, column.Position, column.Color, column.Limit,
	)
	if err != nil {
		return fmt.Errorf("failed to create column: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return sqlx.GetContext(ctx, r.ext, column, `SELECT `+columnColumns+` FROM columns WHERE id = ?`, id)
}

// GetColumnByID retrieves a single column
func (r *ColumnRepo) GetColumnByID(ctx context.Context, id types.ColumnID) (*models.Column, error) {
	var column models.Column
	if err := sqlx.GetContext(ctx, r.ext, &column, `SELECT `+columnColumns+` FROM columns WHERE id = ?`, id); err != nil {
		return nil, notFound(err, fmt.Sprintf("column %d", id))
	}
	return &column, nil
}

// GetColumnsByBoard returns the columns of a board in display order
func (r *ColumnRepo) GetColumnsByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Column, error) {
	columns := []*models.Column{}
	err := sqlx.SelectContext(ctx, r.ext, &columns,
		`SELECT `+columnColumns+` FROM columns WHERE board_id = ? ORDER BY position, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns for board %d: %w", boardID, err)
	}
	return columns, nil
}

// ListColumnIDs returns every column id in ascending order
func (r *ColumnRepo) ListColumnIDs(ctx context.Context) ([]types.ColumnID, error) {
	var ids []types.ColumnID
	if err := sqlx.SelectContext(ctx, r.ext, &ids, `SELECT id FROM columns ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return ids, nil
}

// ListColumnPositions returns (id, position) for a board's columns in display order
func (r *ColumnRepo) ListColumnPositions(ctx context.Context, boardID types.BoardID) ([]models.OrderedPosition, error) {
	var out []models.OrderedPosition
	err := sqlx.SelectContext(ctx, r.ext, &out,
		`SELECT id, position FROM columns WHERE board_id = ? ORDER BY position, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list column positions for board %d: %w", boardID, err)
	}
	return out, nil
}

// SetColumnPosition overwrites a column's board position
func (r *ColumnRepo) SetColumnPosition(ctx context.Context, id types.ColumnID, position int64) error {
	res, err := r.ext.ExecContext(ctx,
		`UPDATE columns SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, position, id)
	if err != nil {
		return fmt.Errorf("failed to set position of column %d: %w", id, err)
	}
	return expectOneRow(res, fmt.Sprintf("column %d", id))
}
