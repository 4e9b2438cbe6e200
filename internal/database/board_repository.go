package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// BoardRepo handles board lookups
type BoardRepo struct {
	ext sqlx.ExtContext
}

const boardColumns = `id, project_id, name, slug, description, is_default, created_by, created_at, updated_at`

// CreateBoard inserts a board into its project
func (r *BoardRepo) CreateBoard(ctx context.Context, board *models.Board) error {
	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO boards (project_id, name, slug, description, is_default, created_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		board.ProjectID, board.Name, board.Slug, board.Description, board.IsDefault, board.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return sqlx.GetContext(ctx, r.ext, board, `SELECT `+boardColumns+` FROM boards WHERE id = ?`, id)
}

// GetBoardByID retrieves a single board
func (r *BoardRepo) GetBoardByID(ctx context.Context, id types.BoardID) (*models.Board, error) {
	var board models.Board
	if err := sqlx.GetContext(ctx, r.ext, &board, `SELECT `+boardColumns+` FROM boards WHERE id = ?`, id); err != nil {
		return nil, notFound(err, fmt.Sprintf("board %d", id))
	}
	return &board, nil
}

// GetBoardScope resolves the project and workspace a board belongs to
func (r *BoardRepo) GetBoardScope(ctx context.Context, id types.BoardID) (*models.BoardScope, error) {
	var scope models.BoardScope
	err := sqlx.GetContext(ctx, r.ext, &scope,
		`SELECT b.id AS board_id, b.project_id, p.workspace_id
		 FROM boards b
		 INNER JOIN projects p ON p.id = b.project_id
		 WHERE b.id = ?`, id)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("board %d", id))
	}
	return &scope, nil
}

// ListBoardIDs returns every board id in ascending order
func (r *BoardRepo) ListBoardIDs(ctx context.Context) ([]types.BoardID, error) {
	var ids []types.BoardID
	if err := sqlx.SelectContext(ctx, r.ext, &ids, `SELECT id FROM boards ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return ids, nil
}
