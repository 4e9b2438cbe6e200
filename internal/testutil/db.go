package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gosimple/slug"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// every pooled connection would otherwise open its own empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	// Enable foreign key constraints
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// Fixture is a tenant chain (user, workspace, project, board) ready for
// columns and tasks to be added
type Fixture struct {
	DB        *sql.DB
	Repo      *database.Repository
	User      *models.User
	Workspace *models.Workspace
	Project   *models.Project
	Board     *models.Board
}

// SetupFileDB opens a migrated database file under t.TempDir the way the
// binaries do. Call it again with the returned path for a second handle.
func SetupFileDB(t testing.TB, path string) (*sql.DB, string) {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "lanes.db")
	}
	db, err := database.InitDB(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open database file: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

// NewFixture creates a fresh database with one user owning one board
func NewFixture(t testing.TB) *Fixture {
	t.Helper()
	return NewFixtureWithDB(t, SetupTestDB(t))
}

// NewFixtureWithDB creates the fixture tenant chain in an existing database
func NewFixtureWithDB(t testing.TB, db *sql.DB) *Fixture {
	t.Helper()
	f := &Fixture{DB: db, Repo: database.NewRepository(db)}
	ctx := context.Background()

	f.User = f.CreateUser(t, "ada")

	f.Workspace = &models.Workspace{Name: "Acme", Slug: slug.Make("Acme"), OwnerID: f.User.ID}
	if err := f.Repo.CreateWorkspace(ctx, f.Workspace); err != nil {
		t.Fatalf("Failed to create test workspace: %v", err)
	}

	f.Project = f.CreateProject(t, "Launch")
	f.Board = f.CreateBoard(t, f.Project.ID, "Main")
	return f
}

// CreateUser creates a user named name
func (f *Fixture) CreateUser(t testing.TB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: slug.Make(name) + "@example.com"}
	if err := f.Repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateProject creates a project in the fixture workspace
func (f *Fixture) CreateProject(t testing.TB, name string) *models.Project {
	t.Helper()
	project := &models.Project{
		WorkspaceID: f.Workspace.ID,
		Name:        name,
		Slug:        slug.Make(name),
		CreatedBy:   f.User.ID,
	}
	if err := f.Repo.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}

// CreateBoard creates a board in the given project
func (f *Fixture) CreateBoard(t testing.TB, projectID types.ProjectID, name string) *models.Board {
	t.Helper()
	board := &models.Board{
		ProjectID: projectID,
		Name:      name,
		Slug:      slug.Make(name),
		CreatedBy: f.User.ID,
	}
	if err := f.Repo.CreateBoard(context.Background(), board); err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return board
}

// CreateColumn creates a column on boardID. A nil limit means unlimited.
func (f *Fixture) CreateColumn(t testing.TB, boardID types.BoardID, name string, position int64, limit *int) *models.Column {
	t.Helper()
	column := &models.Column{BoardID: boardID, Name: name, Position: position, Limit: limit}
	if err := f.Repo.CreateColumn(context.Background(), column); err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	return column
}

// CreateTask creates a task in columnID at an explicit position
func (f *Fixture) CreateTask(t testing.TB, columnID types.ColumnID, title string, position int64) *models.Task {
	t.Helper()
	task := &models.Task{ColumnID: columnID, Title: title, Position: position, CreatedBy: f.User.ID}
	if err := f.Repo.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task
}

// ColumnOrder returns the task ids of columnID in ordering sequence
func (f *Fixture) ColumnOrder(t testing.TB, columnID types.ColumnID) []types.TaskID {
	t.Helper()
	rows, err := f.Repo.ListTaskPositions(context.Background(), columnID)
	if err != nil {
		t.Fatalf("Failed to list task positions: %v", err)
	}
	ids := make([]types.TaskID, len(rows))
	for i, row := range rows {
		ids[i] = types.TaskID(row.ID)
	}
	return ids
}

// ColumnPositions returns the stored positions of columnID in order
func (f *Fixture) ColumnPositions(t testing.TB, columnID types.ColumnID) []int64 {
	t.Helper()
	rows, err := f.Repo.ListTaskPositions(context.Background(), columnID)
	if err != nil {
		t.Fatalf("Failed to list task positions: %v", err)
	}
	positions := make([]int64, len(rows))
	for i, row := range rows {
		positions[i] = row.Position
	}
	return positions
}

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}
