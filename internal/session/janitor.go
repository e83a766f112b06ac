package session

import (
	"context"
	"time"
)

// Logger is the logging surface the janitor needs.
// Satisfied by *logging.Logger and *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// RunJanitor expires sessions every interval until ctx is cancelled.
// Errors are logged and the janitor keeps running.
func RunJanitor(ctx context.Context, store Store, interval time.Duration, logger Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.Expire(ctx, now)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("expiring sessions failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Debug("expired sessions", "count", n)
			}
		}
	}
}
