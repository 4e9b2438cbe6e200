// Package metrics keeps process-wide counters for the ordering engine
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics tracks move engine statistics using atomic operations for thread-safety.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	MovesCommitted      atomic.Int64
	MovesNoop           atomic.Int64
	MovesRejected       atomic.Int64
	MoveTimeouts        atomic.Int64
	Compactions         atomic.Int64
	ReactiveCompactions atomic.Int64
	ActivityFailures    atomic.Int64
	EventsPublished     atomic.Int64
	EventsFailed        atomic.Int64
	StartTime           time.Time
}

// New creates a new Metrics instance
func New() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncMovesCommitted counts a move that changed stored state
func (m *Metrics) IncMovesCommitted() {
	if m != nil {
		m.MovesCommitted.Add(1)
	}
}

// IncMovesNoop counts a move that found the task already in place
func (m *Metrics) IncMovesNoop() {
	if m != nil {
		m.MovesNoop.Add(1)
	}
}

// IncMovesRejected counts a move refused by validation
func (m *Metrics) IncMovesRejected() {
	if m != nil {
		m.MovesRejected.Add(1)
	}
}

// IncMoveTimeouts counts a move that could not take its column locks
func (m *Metrics) IncMoveTimeouts() {
	if m != nil {
		m.MoveTimeouts.Add(1)
	}
}

// IncCompactions counts a renumbering that rewrote positions.
// reactive is true when an exhausted gap inside a move triggered it.
func (m *Metrics) IncCompactions(reactive bool) {
	if m == nil {
		return
	}
	m.Compactions.Add(1)
	if reactive {
		m.ReactiveCompactions.Add(1)
	}
}

// IncActivityFailures counts an activity row that could not be recorded
func (m *Metrics) IncActivityFailures() {
	if m != nil {
		m.ActivityFailures.Add(1)
	}
}

// IncEventsPublished counts a delivered activity event
func (m *Metrics) IncEventsPublished() {
	if m != nil {
		m.EventsPublished.Add(1)
	}
}

// IncEventsFailed counts an activity event that was dropped
func (m *Metrics) IncEventsFailed() {
	if m != nil {
		m.EventsFailed.Add(1)
	}
}

// Snapshot represents a point-in-time snapshot of metrics
type Snapshot struct {
	MovesCommitted      int64     `json:"moves_committed"`
	MovesNoop           int64     `json:"moves_noop"`
	MovesRejected       int64     `json:"moves_rejected"`
	MoveTimeouts        int64     `json:"move_timeouts"`
	Compactions         int64     `json:"compactions"`
	ReactiveCompactions int64     `json:"reactive_compactions"`
	ActivityFailures    int64     `json:"activity_failures"`
	EventsPublished     int64     `json:"events_published"`
	EventsFailed        int64     `json:"events_failed"`
	StartTime           time.Time `json:"start_time"`
	Uptime              string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		MovesCommitted:      m.MovesCommitted.Load(),
		MovesNoop:           m.MovesNoop.Load(),
		MovesRejected:       m.MovesRejected.Load(),
		MoveTimeouts:        m.MoveTimeouts.Load(),
		Compactions:         m.Compactions.Load(),
		ReactiveCompactions: m.ReactiveCompactions.Load(),
		ActivityFailures:    m.ActivityFailures.Load(),
		EventsPublished:     m.EventsPublished.Load(),
		EventsFailed:        m.EventsFailed.Load(),
		StartTime:           m.StartTime,
		Uptime:              time.Since(m.StartTime).Round(time.Second).String(),
	}
}
