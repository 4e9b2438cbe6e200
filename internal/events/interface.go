package events

import "context"

// Publisher delivers activity events to subscribers.
// Publishing is fire-and-forget for callers: an error is logged, never
// propagated into the operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher
func (NopPublisher) Close() error { return nil }

// Compile-time verification that the publishers implement Publisher
var (
	_ Publisher = NopPublisher{}
	_ Publisher = (*NATSPublisher)(nil)
)
