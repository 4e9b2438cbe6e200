package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/lanes/internal/models"
)

// TenantRepo handles users, workspaces and projects
type TenantRepo struct {
	ext sqlx.ExtContext
}

// CreateUser inserts a user and fills in its id and timestamps
func (r *TenantRepo) CreateUser(ctx context.Context, user *models.User) error {
	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO users (name, email) VALUES (?, ?)`,
		user.Name, user.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return sqlx.GetContext(ctx, r.ext, user,
		`SELECT id, name, email, created_at FROM users WHERE id = ?`, id)
}

// FindUserByName returns the first user with the given display name
func (r *TenantRepo) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, r.ext, &user,
		`SELECT id, name, email, created_at FROM users WHERE name = ? ORDER BY id LIMIT 1`, name)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("user %q", name))
	}
	return &user, nil
}

// CreateWorkspace inserts a workspace and makes its owner a member
func (r *TenantRepo) CreateWorkspace(ctx context.Context, ws *models.Workspace) error {
	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO workspaces (name, slug, description, owner_id) VALUES (?, ?, ?, ?)`,
		ws.Name, ws.Slug, ws.Description, ws.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if _, err := r.ext.ExecContext(ctx,
		`INSERT INTO workspace_user (workspace_id, user_id, role) VALUES (?, ?, 'owner')`,
		id, ws.OwnerID,
	); err != nil {
		return fmt.Errorf("failed to add workspace owner: %w", err)
	}

	return sqlx.GetContext(ctx, r.ext, ws,
		`SELECT id, name, slug, description, owner_id, created_at FROM workspaces WHERE id = ?`, id)
}

// CreateProject inserts a project into its workspace
func (r *TenantRepo) CreateProject(ctx context.Context, project *models.Project) error {
	res, err := r.ext.ExecContext(ctx,
		`INSERT INTO projects (workspace_id, name, slug, description, color, icon, created_by)
		 VALUES (?, ?, ?, ?, COALESCE(NULLIF(?, ''), '#3B82F6'), ?, ?)`,
		project.WorkspaceID, project.Name, project.Slug, project.Description,
		project.Color, project.Icon, project.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return sqlx.GetContext(ctx, r.ext, project,
		`SELECT id, workspace_id, name, slug, description, color, icon, is_archived, created_by, created_at
		 FROM projects WHERE id = ?`, id)
}
