package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// WithSignals returns a context cancelled on SIGINT or SIGTERM.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
}

// Graceful runs stop with a deadline and falls back to force when the
// deadline passes first. It reports whether the stop was graceful.
func Graceful(timeout time.Duration, stop func(ctx context.Context) error, force func()) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- stop(ctx)
	}()

	select {
	case <-ctx.Done():
		if force != nil {
			force()
		}
		return false
	case err := <-done:
		return err == nil
	}
}
