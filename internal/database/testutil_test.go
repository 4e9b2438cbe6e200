package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// each connection would otherwise get its own empty in-memory db
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// fixture is a minimal tenant chain with one board
type fixture struct {
	repo    *Repository
	user    *models.User
	project *models.Project
	board   *models.Board
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	user := &models.User{Name: "ada", Email: "ada@example.com"}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	ws := &models.Workspace{Name: "Acme", Slug: "acme", OwnerID: user.ID}
	if err := repo.CreateWorkspace(ctx, ws); err != nil {
		t.Fatalf("Failed to create workspace: %v", err)
	}
	project := &models.Project{WorkspaceID: ws.ID, Name: "Launch", Slug: "launch", CreatedBy: user.ID}
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	board := &models.Board{ProjectID: project.ID, Name: "Main", Slug: "main", IsDefault: true, CreatedBy: user.ID}
	if err := repo.CreateBoard(ctx, board); err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	return &fixture{repo: repo, user: user, project: project, board: board}
}

func (f *fixture) column(t *testing.T, name string, position int64, limit *int) *models.Column {
	t.Helper()
	col := &models.Column{BoardID: f.board.ID, Name: name, Position: position, Limit: limit}
	if err := f.repo.CreateColumn(context.Background(), col); err != nil {
		t.Fatalf("Failed to create column %q: %v", name, err)
	}
	return col
}

func (f *fixture) task(t *testing.T, columnID types.ColumnID, title string, position int64) *models.Task {
	t.Helper()
	task := &models.Task{ColumnID: columnID, Title: title, Position: position, CreatedBy: f.user.ID}
	if err := f.repo.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("Failed to create task %q: %v", title, err)
	}
	return task
}
