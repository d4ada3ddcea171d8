package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/testwrap/internal/metrics"
	"github.com/aretw0/testwrap/internal/presentation/tui"
	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/history"
	"github.com/aretw0/testwrap/pkg/settings"
	"github.com/aretw0/testwrap/pkg/wrapper"
)

// Exit codes of the wrapper process.
const (
	ExitPass = 0
	ExitFail = 1
)

// RunOptions contains all the configuration for a wrapped run.
type RunOptions struct {
	Options     domain.Options
	Report      bool   // render a markdown report after the run
	MetricsFile string // Prometheus textfile destination
	Record      string // history location
	TempRoot    string // parent of the working directory (system default when empty)
	Stdout      io.Writer
	Stderr      io.Writer
}

// Execute runs the wrapper and its post-run reporting, returning the process exit code.
// Reporting failures are logged and never change the exit code.
func Execute(ctx context.Context, opts RunOptions) int {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := createLogger(stderr, opts.Options.Verbose)

	w := wrapper.New(
		wrapper.WithLogger(logger),
		wrapper.WithOutput(stdout, stderr),
		wrapper.WithTempRoot(opts.TempRoot),
	)

	report, err := w.Run(ctx, opts.Options)
	logger.Debug("Run finished", "name", report.Name, "passed", report.Passed, "work_dir", report.WorkDir, "duration", report.Duration)
	if errors.Is(err, context.Canceled) {
		logger.Warn("Run interrupted", "name", report.Name, "cause", context.Cause(ctx))
	}
	// Reporting still runs after an interrupt.
	ctx = context.WithoutCancel(ctx)

	if opts.MetricsFile != "" {
		writeMetrics(logger, opts.MetricsFile, report)
	}
	if opts.Record != "" {
		recordRun(ctx, logger, opts.Record, report)
	}
	if opts.Report {
		tui.PrintStatus(stdout, report)
		if rerr := tui.RenderReport(stdout, report); rerr != nil {
			logger.Warn("Failed to render report", "error", rerr)
		}
	}

	if err != nil {
		printError(stderr, err)
		return ExitFail
	}
	return ExitPass
}

func writeMetrics(logger *slog.Logger, path string, report *domain.Report) {
	m := metrics.New()
	m.Observe(report)
	if err := m.WriteTextfile(path); err != nil {
		logger.Warn("Failed to write metrics", "path", path, "error", err)
		return
	}
	logger.Debug("Metrics written", "path", path)
}

func recordRun(ctx context.Context, logger *slog.Logger, location string, report *domain.Report) {
	backend, err := openStore(location)
	if err != nil {
		logger.Warn("Failed to open history", "location", location, "error", err)
		return
	}
	defer func() {
		if err := settings.Close(backend); err != nil {
			logger.Warn("Failed to close history", "error", err)
		}
	}()

	res := history.NewRecorder(backend, logger).Record(ctx, report)
	if res.OK {
		logger.Debug("Run recorded", "location", location, "name", report.Name)
	}
}

// printError prints a user-facing error message.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
