package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// LabelRepo handles board labels and their task links
type LabelRepo struct {
	ext sqlx.ExtContext
}

// ============================================================================
// Label Operations
// ============================================================================

// CreateLabel creates a label on a board
func (r *LabelRepo) CreateLabel(ctx context.Context, label *models.Label) error {
	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO labels (board_id, name, color) VALUES (?, ?, ?)`,
		label.BoardID, label.Name, label.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to create label %q: %w", label.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	label.ID = types.LabelID(id)
	return nil
}

// AttachLabel links a label to a task. Attaching twice is a no-op.
func (r *LabelRepo) AttachLabel(ctx context.Context, taskID types.TaskID, labelID types.LabelID) error {
	_, err := r.ext.ExecContext(ctx,
		`INSERT OR IGNORE INTO task_label (task_id, label_id) VALUES (?, ?)`,
		taskID, labelID,
	)
	if err != nil {
		return fmt.Errorf("failed to attach label %d to task %d: %w", labelID, taskID, err)
	}
	return nil
}

// GetTaskLabels returns a task's labels ordered by name
func (r *LabelRepo) GetTaskLabels(ctx context.Context, taskID types.TaskID) ([]*models.Label, error) {
	var labels []*models.Label
	err := sqlx.SelectContext(ctx, r.ext, &labels,
		`SELECT l.id, l.board_id, l.name, l.color
		 FROM labels l
		 INNER JOIN task_label tl ON tl.label_id = l.id
		 WHERE tl.task_id = ?
		 ORDER BY l.name`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels of task %d: %w", taskID, err)
	}
	return labels, nil
}
