package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// defaultActivityLimit caps ListActivities when the filter sets no limit
const defaultActivityLimit = 50

// ActivityRepo appends to and reads the activity trail
type ActivityRepo struct {
	ext sqlx.ExtContext
}

// activityRow is the storage shape of models.Activity
type activityRow struct {
	ID          types.ActivityID   `db:"id"`
	WorkspaceID *types.WorkspaceID `db:"workspace_id"`
	ProjectID   *types.ProjectID   `db:"project_id"`
	BoardID     *types.BoardID     `db:"board_id"`
	TaskID      *types.TaskID      `db:"task_id"`
	UserID      *types.UserID      `db:"user_id"`
	Type        string             `db:"type"`
	Description string             `db:"description"`
	Metadata    sql.NullString     `db:"metadata"`
	CreatedAt   time.Time          `db:"created_at"`
}

func (row *activityRow) toModel() (*models.Activity, error) {
	metadata, err := decodeJSON(row.Metadata)
	if err != nil {
		return nil, fmt.Errorf("activity %d has malformed metadata: %w", row.ID, err)
	}
	return &models.Activity{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		ProjectID:   row.ProjectID,
		BoardID:     row.BoardID,
		TaskID:      row.TaskID,
		UserID:      row.UserID,
		Type:        row.Type,
		Description: row.Description,
		Metadata:    metadata,
		CreatedAt:   row.CreatedAt,
	}, nil
}

const activityColumns = `id, workspace_id, project_id, board_id, task_id, user_id,
	type, description, metadata, created_at`

// CreateActivity appends an activity row and fills in its id and timestamp
func (r *ActivityRepo) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.Type == "" || len(activity.Type) > models.MaxActivityTypeLength {
		return fmt.Errorf("invalid activity type %q", activity.Type)
	}

	metadata, err := encodeJSON(activity.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode activity metadata: %w", err)
	}

	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO activities (workspace_id, project_id, board_id, task_id, user_id, type, description, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.WorkspaceID, activity.ProjectID, activity.BoardID, activity.TaskID, activity.UserID,
		activity.Type, activity.Description, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	var row activityRow
	if err := sqlx.GetContext(ctx, r.ext, &row, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to reload activity %d: %w", id, err)
	}
	activity.ID = row.ID
	activity.CreatedAt = row.CreatedAt
	return nil
}

// ListActivities returns activity rows newest first
func (r *ActivityRepo) ListActivities(ctx context.Context, filter ActivityFilter) ([]*models.Activity, error) {
	var (
		where []string
		args  []any
	)
	if filter.BoardID != 0 {
		where = append(where, "board_id = ?")
		args = append(args, filter.BoardID)
	}
	if filter.TaskID != 0 {
		where = append(where, "task_id = ?")
		args = append(args, filter.TaskID)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, filter.Type)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	query := `SELECT ` + activityColumns + ` FROM activities`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	var rows []activityRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	activities := make([]*models.Activity, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, nil
}
