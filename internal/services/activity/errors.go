package activity

import "errors"

// ErrActivityRecordingFailed wraps any failure to persist an activity row.
// Callers log it; it never fails the operation being recorded.
var ErrActivityRecordingFailed = errors.New("activity recording failed")
