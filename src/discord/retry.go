package discord

import (
	"context"
	"time"

	"github.com/stake-plus/qotd/src/logging"
)

const maxRetryDelay = 30 * time.Second

// DoWithRetry retries fn on rate limits and 5xx responses with a doubling delay.
// Other errors are returned immediately.
func DoWithRetry(ctx context.Context, attempts int, initialDelay time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}
	if initialDelay <= 0 {
		initialDelay = 2 * time.Second
	}
	delay := initialDelay
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !logging.IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		if delay < maxRetryDelay {
			delay *= 2
		}
	}
	return err
}
