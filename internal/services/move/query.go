package move

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Scope selects what ListOrdered returns. Exactly one field must be set.
type Scope struct {
	ColumnID types.ColumnID
	BoardID  types.BoardID
}

// OrderedList holds either a column or a whole board in display order
type OrderedList struct {
	Column *models.ColumnView `json:"column,omitempty"`
	Board  *models.BoardView  `json:"board,omitempty"`
}

// ListOrdered dispatches to ListColumn or ListBoard
func (s *service) ListOrdered(ctx context.Context, scope Scope) (*OrderedList, error) {
	switch {
	case scope.ColumnID != 0 && scope.BoardID != 0, scope.ColumnID == 0 && scope.BoardID == 0:
		return nil, ErrInvalidScope

	case scope.ColumnID != 0:
		var view *models.ColumnView
		err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
			var err error
			view, err = columnView(ctx, tx, scope.ColumnID)
			return err
		})
		if err != nil {
			return nil, err
		}
		return &OrderedList{Column: view}, nil

	default:
		board, err := s.ListBoard(ctx, scope.BoardID)
		if err != nil {
			return nil, err
		}
		return &OrderedList{Board: board}, nil
	}
}

// ListColumn returns the tasks of a column by ascending position
func (s *service) ListColumn(ctx context.Context, columnID types.ColumnID) ([]*models.TaskSummary, error) {
	var view *models.ColumnView
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		var err error
		view, err = columnView(ctx, tx, columnID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view.Tasks, nil
}

// ListBoard returns a board's columns by position, each with its tasks by
// position. Everything is read from one snapshot.
func (s *service) ListBoard(ctx context.Context, boardID types.BoardID) (*models.BoardView, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}

	var view *models.BoardView
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		board, err := tx.GetBoardByID(ctx, boardID)
		if err != nil {
			return notFound(err, ErrBoardNotFound)
		}
		columns, err := tx.GetColumnsByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		tasks, err := tx.GetTaskSummariesByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		if err := attachCardDetails(ctx, tx, tasks); err != nil {
			return err
		}

		byColumn := make(map[types.ColumnID][]*models.TaskSummary, len(columns))
		for _, t := range tasks {
			byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
		}

		view = &models.BoardView{Board: board, Columns: make([]*models.ColumnView, 0, len(columns))}
		for _, col := range columns {
			colTasks := byColumn[col.ID]
			if colTasks == nil {
				colTasks = []*models.TaskSummary{}
			}
			view.Columns = append(view.Columns, &models.ColumnView{Column: col, Tasks: colTasks})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func columnView(ctx context.Context, tx database.DataStore, columnID types.ColumnID) (*models.ColumnView, error) {
	if columnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	column, err := tx.GetColumnByID(ctx, columnID)
	if err != nil {
		return nil, notFound(err, ErrColumnNotFound)
	}
	tasks, err := tx.GetTaskSummariesByColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*models.TaskSummary{}
	}
	if err := attachCardDetails(ctx, tx, tasks); err != nil {
		return nil, err
	}
	return &models.ColumnView{Column: column, Tasks: tasks}, nil
}

func attachCardDetails(ctx context.Context, tx database.DataStore, tasks []*models.TaskSummary) error {
	for _, t := range tasks {
		ids, err := tx.GetTaskAssigneeIDs(ctx, t.ID)
		if err != nil {
			return err
		}
		t.AssigneeIDs = ids

		labels, err := tx.GetTaskLabels(ctx, t.ID)
		if err != nil {
			return err
		}
		t.Labels = labels
	}
	return nil
}
