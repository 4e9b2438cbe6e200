package models

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Activity types written by the ordering engine
const (
	ActivityTaskMoved       = "task.moved"
	ActivityColumnCompacted = "column.compacted"
	ActivityBoardCompacted  = "board.compacted"
)

// MaxActivityTypeLength is the storage limit of Activity.Type
const MaxActivityTypeLength = 50

// Activity is a write-once audit row describing a structural change.
// Every scope reference is optional so rows survive partial context.
type Activity struct {
	ID          types.ActivityID   `json:"id"`
	WorkspaceID *types.WorkspaceID `json:"workspace_id,omitempty"`
	ProjectID   *types.ProjectID   `json:"project_id,omitempty"`
	BoardID     *types.BoardID     `json:"board_id,omitempty"`
	TaskID      *types.TaskID      `json:"task_id,omitempty"`
	UserID      *types.UserID      `json:"user_id,omitempty"`
	Type        string             `json:"type"`
	Description string             `json:"description"`
	Metadata    map[string]any     `json:"metadata,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Notification is a per-user record derived from an activity.
// Delivery (email, push) is handled by other services.
type Notification struct {
	ID             types.NotificationID `json:"id"`
	UserID         types.UserID         `json:"user_id"`
	Type           string               `json:"type"`
	NotifiableType string               `json:"notifiable_type"`
	NotifiableID   int64                `json:"notifiable_id"`
	Data           map[string]any       `json:"data"`
	ReadAt         *time.Time           `json:"read_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// IsRead reports whether the user has seen the notification
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
