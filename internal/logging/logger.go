package logging

import (
	"io"
	"log/slog"
)

// NewWithWriter creates a configured application logger writing to w.
// The CLI passes its stderr so the wrapped command's stdout stays clean for diffs and redirects.
// It standardizes common keys (e.g., "error" -> "err").
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// ForVerbosity returns a debug logger in verbose mode and a warn-level logger otherwise,
// so skipped setup steps are still reported.
func ForVerbosity(w io.Writer, verbose bool) *slog.Logger {
	if verbose {
		return NewWithWriter(w, slog.LevelDebug)
	}
	return NewWithWriter(w, slog.LevelWarn)
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
