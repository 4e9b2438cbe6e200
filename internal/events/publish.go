package events

import (
	"context"
	"log/slog"
	"time"
)

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff and returns
// the error from the final attempt. A nil publisher is a no-op.
func PublishWithRetry(ctx context.Context, publisher Publisher, event Event, maxRetries int) error {
	if publisher == nil {
		return nil
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := publisher.Publish(ctx, event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"board_id", event.BoardID)
			}
			return nil
		}
		lastErr = err

		if attempt < maxRetries-1 {
			// 50ms, 100ms, 200ms, ...
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	slog.Warn("event publish failed after all retries",
		"max_retries", maxRetries,
		"event_type", event.Type,
		"board_id", event.BoardID,
		"error", lastErr)
	return lastErr
}
