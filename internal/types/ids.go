package types

// ID types give semantic meaning to the integer keys stored in the database.
// They are all backed by int64 so they scan directly from SQLite INTEGER columns.

// UserID identifies a user account
type UserID int64

// WorkspaceID identifies a workspace (tenant)
type WorkspaceID int64

// ProjectID identifies a project inside a workspace
type ProjectID int64

// BoardID identifies a board inside a project
type BoardID int64

// ColumnID identifies a column on a board
type ColumnID int64

// TaskID identifies a task
type TaskID int64

// LabelID identifies a board label
type LabelID int64

// ActivityID identifies an activity log row
type ActivityID int64

// NotificationID identifies a notification row
type NotificationID int64

// UserIDPtr returns a pointer to id, or nil when id is zero.
// Useful for optional actor references.
func UserIDPtr(id int64) *UserID {
	if id <= 0 {
		return nil
	}
	uid := UserID(id)
	return &uid
}

// TaskIDPtr returns a pointer to id, or nil when id is zero.
func TaskIDPtr(id int64) *TaskID {
	if id <= 0 {
		return nil
	}
	tid := TaskID(id)
	return &tid
}
