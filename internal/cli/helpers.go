package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/testwrap/internal/logging"
)

// InterruptError is the cancellation cause of a run stopped by a signal.
type InterruptError struct {
	Signal os.Signal
}

func (e *InterruptError) Error() string {
	return "interrupted by " + e.Signal.String()
}

// Unwrap makes errors.Is(err, context.Canceled) hold for interrupted runs.
func (e *InterruptError) Unwrap() error {
	return context.Canceled
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM with an
// *InterruptError cause, which kills the running child process.
// The returned stop function releases the signal handler.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			cancel(&InterruptError{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(nil) }
}

// createLogger configures the application logger on the wrapper's stderr.
// Verbose runs log every stage; otherwise only warnings are shown.
func createLogger(w io.Writer, verbose bool) *slog.Logger {
	return logging.ForVerbosity(w, verbose)
}
