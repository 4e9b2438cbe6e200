package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/position"
	"github.com/thenoetrevino/lanes/internal/types"
	"github.com/thenoetrevino/lanes/internal/user"
)

// Result describes a seeded board
type Result struct {
	WorkspaceID types.WorkspaceID `json:"workspace_id"`
	ProjectID   types.ProjectID   `json:"project_id"`
	BoardID     types.BoardID     `json:"board_id"`
	ColumnIDs   []types.ColumnID  `json:"column_ids"`
	TaskIDs     []types.TaskID    `json:"task_ids"`
}

// GetID returns the board id (used by quiet CLI output)
func (r *Result) GetID() int64 {
	return int64(r.BoardID)
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo board with columns and tasks",
		Long: `Create a workspace, project and board owned by the current user,
with evenly spaced columns and tasks spread across them.

Examples:
  lanes seed --name "Launch"
  lanes seed --name "Launch" --columns "Backlog,Doing,Review,Done" --tasks 12 --limit 3
  BOARD=$(lanes seed --name "Launch" --quiet)
`,
		RunE: runSeed,
	}

	cmd.Flags().String("name", "", "Board name (required)")
	cli.MarkRequired(cmd, "name")
	cmd.Flags().String("columns", "Todo,In Progress,Done", "Comma separated column names, in order")
	cmd.Flags().Int("tasks", 6, "Number of tasks to create")
	cmd.Flags().Int("limit", 0, "WIP limit for every column but the first and last (0 means none)")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	columnList, _ := cmd.Flags().GetString("columns")
	taskCount, _ := cmd.Flags().GetInt("tasks")
	limit, _ := cmd.Flags().GetInt("limit")

	columns := splitNames(columnList)
	if strings.TrimSpace(name) == "" {
		return formatter.Usage("--name cannot be empty", "")
	}
	if len(columns) == 0 {
		return formatter.Usage("--columns needs at least one name", `Example: --columns "Todo,Doing,Done"`)
	}
	if taskCount < 0 || limit < 0 {
		return formatter.Usage("--tasks and --limit cannot be negative", "")
	}

	cliInstance, err := cli.Open(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	alloc := position.New(cliInstance.App.Config.Ordering.Stride)
	result, err := Seed(ctx, cliInstance.App.Repo(), alloc, Options{
		Name:    name,
		Owner:   user.GetCurrentUsername(),
		Columns: columns,
		Tasks:   taskCount,
		Limit:   limit,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(result)
	}

	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Seeded board %d with %d columns and %d tasks",
		result.BoardID, len(result.ColumnIDs), len(result.TaskIDs))))
	fmt.Printf("Show it with: lanes board show --id %d\n", result.BoardID)
	return nil
}

// Options controls what Seed creates
type Options struct {
	Name    string
	Owner   string
	Columns []string
	Tasks   int
	Limit   int
}

// Seed creates a demo board in one transaction. Tasks are dealt round-robin
// across the columns; a column whose limit is reached is skipped.
func Seed(ctx context.Context, repo database.DataStore, alloc position.Allocator, opts Options) (*Result, error) {
	result := &Result{}

	err := repo.WithTx(ctx, func(tx database.DataStore) error {
		owner, err := findOrCreateUser(ctx, tx, opts.Owner)
		if err != nil {
			return err
		}

		ws := &models.Workspace{
			Name:    opts.Name,
			Slug:    slug.Make(opts.Name) + "-" + uuid.NewString()[:8],
			OwnerID: owner.ID,
		}
		if err := tx.CreateWorkspace(ctx, ws); err != nil {
			return err
		}

		project := &models.Project{WorkspaceID: ws.ID, Name: opts.Name, Slug: slug.Make(opts.Name), CreatedBy: owner.ID}
		if err := tx.CreateProject(ctx, project); err != nil {
			return err
		}

		board := &models.Board{ProjectID: project.ID, Name: opts.Name, Slug: slug.Make(opts.Name), IsDefault: true, CreatedBy: owner.ID}
		if err := tx.CreateBoard(ctx, board); err != nil {
			return err
		}
		result.WorkspaceID, result.ProjectID, result.BoardID = ws.ID, project.ID, board.ID

		limits := make([]*int, len(opts.Columns))
		for i, pos := range alloc.Sequence(len(opts.Columns)) {
			col := &models.Column{BoardID: board.ID, Name: opts.Columns[i], Position: pos}
			if opts.Limit > 0 && i > 0 && i < len(opts.Columns)-1 {
				col.Limit = &opts.Limit
				limits[i] = col.Limit
			}
			if err := tx.CreateColumn(ctx, col); err != nil {
				return err
			}
			result.ColumnIDs = append(result.ColumnIDs, col.ID)
		}

		return seedTasks(ctx, tx, alloc, owner.ID, result, limits, opts.Tasks)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func seedTasks(ctx context.Context, tx database.DataStore, alloc position.Allocator, owner types.UserID, result *Result, limits []*int, n int) error {
	counts := make([]int, len(result.ColumnIDs))
	last := make([]*int64, len(result.ColumnIDs))
	col := 0
	for i := 1; i <= n; i++ {
		for tries := 0; limits[col] != nil && counts[col] >= *limits[col]; tries++ {
			if tries == len(limits) {
				return nil
			}
			col = (col + 1) % len(limits)
		}

		pos, err := alloc.Between(last[col], nil)
		if err != nil {
			return err
		}
		task := &models.Task{
			ColumnID:  result.ColumnIDs[col],
			Title:     fmt.Sprintf("Task %d", i),
			Position:  pos,
			CreatedBy: owner,
		}
		if err := tx.CreateTask(ctx, task); err != nil {
			return err
		}
		counts[col]++
		last[col] = &task.Position
		result.TaskIDs = append(result.TaskIDs, task.ID)
		col = (col + 1) % len(limits)
	}
	return nil
}

func findOrCreateUser(ctx context.Context, tx database.DataStore, name string) (*models.User, error) {
	u, err := tx.FindUserByName(ctx, name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	u = &models.User{Name: name, Email: slug.Make(name) + "@lanes.local"}
	if err := tx.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func splitNames(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
