package move

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     MoveRequest
		wantErr error
	}{
		{"valid end of column", MoveRequest{TaskID: 1, ColumnID: 2}, nil},
		{"valid between", MoveRequest{TaskID: 1, ColumnID: 2, AfterTaskID: taskIDPtr(3), BeforeTaskID: taskIDPtr(4)}, nil},
		{"missing task", MoveRequest{ColumnID: 2}, ErrInvalidTaskID},
		{"missing column", MoveRequest{TaskID: 1}, ErrInvalidColumnID},
		{"negative anchor", MoveRequest{TaskID: 1, ColumnID: 2, AfterTaskID: taskIDPtr(-1)}, ErrInvalidTaskID},
		{"self anchor", MoveRequest{TaskID: 1, ColumnID: 2, AfterTaskID: taskIDPtr(1)}, ErrInvalidDestination},
		{"same anchor twice", MoveRequest{TaskID: 1, ColumnID: 2, AfterTaskID: taskIDPtr(3), BeforeTaskID: taskIDPtr(3)}, ErrInvalidDestination},
		{"top with anchor", MoveRequest{TaskID: 1, ColumnID: 2, AtStart: true, BeforeTaskID: taskIDPtr(3)}, ErrInvalidDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInsertionIndex(t *testing.T) {
	seq := []models.OrderedPosition{{ID: 10, Position: 100}, {ID: 20, Position: 200}, {ID: 30, Position: 300}}

	tests := []struct {
		name    string
		req     MoveRequest
		want    int
		wantErr bool
	}{
		{"end", MoveRequest{}, 3, false},
		{"top", MoveRequest{AtStart: true}, 0, false},
		{"after first", MoveRequest{AfterTaskID: taskIDPtr(10)}, 1, false},
		{"after last", MoveRequest{AfterTaskID: taskIDPtr(30)}, 3, false},
		{"before first", MoveRequest{BeforeTaskID: taskIDPtr(10)}, 0, false},
		{"adjacent pair", MoveRequest{AfterTaskID: taskIDPtr(20), BeforeTaskID: taskIDPtr(30)}, 2, false},
		{"gap pair", MoveRequest{AfterTaskID: taskIDPtr(10), BeforeTaskID: taskIDPtr(30)}, 0, true},
		{"unknown anchor", MoveRequest{AfterTaskID: taskIDPtr(99)}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := insertionIndex(seq, tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDestination)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNeighbours(t *testing.T) {
	seq := []models.OrderedPosition{{ID: 1, Position: 100}, {ID: 2, Position: 200}}

	prev, next := neighbours(seq, 0)
	assert.Nil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, int64(100), *next)

	prev, next = neighbours(seq, 2)
	require.NotNil(t, prev)
	assert.Equal(t, int64(200), *prev)
	assert.Nil(t, next)

	prev, next = neighbours(nil, 0)
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestCheckWipLimit(t *testing.T) {
	unlimited := &models.Column{ID: 1}
	assert.NoError(t, checkWipLimit(unlimited, 1000))

	limited := &models.Column{ID: 2, Limit: testutil.IntPtr(3)}
	assert.NoError(t, checkWipLimit(limited, 2))

	err := checkWipLimit(limited, 3)
	assert.ErrorIs(t, err, ErrWipLimitExceeded)
	assert.Equal(t, "column 2 is at its WIP limit (3/3)", err.Error())

	// lowered below the current count: still only blocks new arrivals
	err = checkWipLimit(limited, 5)
	assert.ErrorIs(t, err, ErrWipLimitExceeded)
}

func TestCrossBoardPolicy_Valid(t *testing.T) {
	assert.True(t, CrossBoardSameBoard.Valid())
	assert.True(t, CrossBoardSameProject.Valid())
	assert.True(t, CrossBoardAny.Valid())
	assert.False(t, CrossBoardPolicy("nowhere").Valid())
}
