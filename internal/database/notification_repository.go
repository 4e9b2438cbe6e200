package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// NotificationRepo stores per-user notifications
type NotificationRepo struct {
	ext sqlx.ExtContext
}

type notificationRow struct {
	ID             types.NotificationID `db:"id"`
	UserID         types.UserID         `db:"user_id"`
	Type           string               `db:"type"`
	NotifiableType string               `db:"notifiable_type"`
	NotifiableID   int64                `db:"notifiable_id"`
	Data           sql.NullString       `db:"data"`
	ReadAt         *time.Time           `db:"read_at"`
	CreatedAt      time.Time            `db:"created_at"`
}

const notificationColumns = `id, user_id, type, notifiable_type, notifiable_id, data, read_at, created_at`

// CreateNotification appends a notification row
func (r *NotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	data, err := encodeJSON(n.Data)
	if err != nil {
		return fmt.Errorf("failed to encode notification data: %w", err)
	}
	if !data.Valid {
		data = sql.NullString{String: "{}", Valid: true}
	}

	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO notifications (user_id, type, notifiable_type, notifiable_id, data)
		 VALUES (?, ?, ?, ?, ?)`,
		n.UserID, n.Type, n.NotifiableType, n.NotifiableID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification for user %d: %w", n.UserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = types.NotificationID(id)
	return nil
}

// ListNotifications returns a user's notifications newest first
func (r *NotificationRepo) ListNotifications(ctx context.Context, userID types.UserID, unreadOnly bool) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	var rows []notificationRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %d: %w", userID, err)
	}

	out := make([]*models.Notification, 0, len(rows))
	for _, row := range rows {
		data, err := decodeJSON(row.Data)
		if err != nil {
			return nil, fmt.Errorf("notification %d has malformed data: %w", row.ID, err)
		}
		out = append(out, &models.Notification{
			ID:             row.ID,
			UserID:         row.UserID,
			Type:           row.Type,
			NotifiableType: row.NotifiableType,
			NotifiableID:   row.NotifiableID,
			Data:           data,
			ReadAt:         row.ReadAt,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}
