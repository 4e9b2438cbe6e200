package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event announces that an activity row was stored. Subscribers (sync
// services, notification senders) use it to refresh their own state.
type Event struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	ActivityID  int64          `json:"activity_id"`
	WorkspaceID int64          `json:"workspace_id,omitempty"`
	BoardID     int64          `json:"board_id,omitempty"`
	TaskID      int64          `json:"task_id,omitempty"`
	UserID      int64          `json:"user_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// NewEvent stamps an event with a fresh id and the current time
func NewEvent(eventType string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// DefaultSubjectPrefix is used when no prefix is configured
const DefaultSubjectPrefix = "lanes"

// Subject returns the NATS subject an event is published on.
// Events without a board go to the workspace-wide subject.
func Subject(prefix string, e Event) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if e.BoardID == 0 {
		return prefix + ".activity"
	}
	return fmt.Sprintf("%s.board.%d.activity", prefix, e.BoardID)
}
