package models

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// User is an account that can act on boards. Authentication lives elsewhere;
// the ordering engine only needs the id for actor attribution.
type User struct {
	ID        types.UserID `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Email     string       `db:"email" json:"email"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// Workspace is the tenant boundary
type Workspace struct {
	ID          types.WorkspaceID `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Slug        string            `db:"slug" json:"slug"`
	Description string            `db:"description" json:"description"`
	OwnerID     types.UserID      `db:"owner_id" json:"owner_id"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

// Project groups boards inside a workspace
type Project struct {
	ID          types.ProjectID   `db:"id" json:"id"`
	WorkspaceID types.WorkspaceID `db:"workspace_id" json:"workspace_id"`
	Name        string            `db:"name" json:"name"`
	Slug        string            `db:"slug" json:"slug"`
	Description string            `db:"description" json:"description"`
	Color       string            `db:"color" json:"color"`
	Icon        string            `db:"icon" json:"icon"`
	IsArchived  bool              `db:"is_archived" json:"is_archived"`
	CreatedBy   types.UserID      `db:"created_by" json:"created_by"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

// Invitation is a pending workspace invite. Read-only for the core.
type Invitation struct {
	ID          int64             `db:"id" json:"id"`
	WorkspaceID types.WorkspaceID `db:"workspace_id" json:"workspace_id"`
	Email       string            `db:"email" json:"email"`
	Role        string            `db:"role" json:"role"`
	Token       string            `db:"token" json:"-"`
	InvitedBy   types.UserID      `db:"invited_by" json:"invited_by"`
	AcceptedAt  *time.Time        `db:"accepted_at" json:"accepted_at,omitempty"`
	ExpiresAt   time.Time         `db:"expires_at" json:"expires_at"`
}
