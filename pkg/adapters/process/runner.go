package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/aretw0/testwrap/internal/logging"
	"github.com/aretw0/testwrap/pkg/ports"
)

// Runner implements ports.CommandRunner on top of os/exec.
// Commands run strictly one at a time; Run blocks until the child exits.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithOutput sets the streams used when a command has no redirect and no explicit writer.
func WithOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process Runner writing to the wrapper's own streams by default.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the command and returns its effective exit code.
// A bare command name is looked up in the PATH of c.Env when it sets one.
// Redirect files are created in cmd.Dir and are closed before Run returns, on every path.
func (r *Runner) Run(ctx context.Context, c ports.Command) (ports.CommandResult, error) {
	if len(c.Argv) == 0 {
		return ports.CommandResult{}, errors.New("empty command")
	}

	stdout, closeOut, err := openRedirect(c.Dir, c.StdoutPath, pick(c.Stdout, r.stdout))
	if err != nil {
		return ports.CommandResult{}, fmt.Errorf("failed to open stdout redirect: %w", err)
	}
	defer closeOut()

	stderr, closeErr, err := openRedirect(c.Dir, c.StderrPath, pick(c.Stderr, r.stderr))
	if err != nil {
		return ports.CommandResult{}, fmt.Errorf("failed to open stderr redirect: %w", err)
	}
	defer closeErr()

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	if p := lookPath(c.Argv[0], c.Env); p != "" {
		cmd.Path = p
		cmd.Err = nil
	}
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	r.logger.Debug("Running command", "argv", c.Argv, "dir", c.Dir)

	start := time.Now()
	runErr := cmd.Run()
	result := ports.CommandResult{Duration: time.Since(start)}

	// A cancelled run is not a test outcome even though the killed child has an exit status.
	if ctx.Err() != nil {
		return result, fmt.Errorf("%s stopped: %w", c.Argv[0], context.Cause(ctx))
	}

	if runErr != nil {
		code, ok := ExitCode(runErr)
		if !ok {
			return result, fmt.Errorf("failed to run %s: %w", c.Argv[0], runErr)
		}
		result.ExitCode = code
	}

	r.logger.Debug("Command finished", "argv", c.Argv, "exit_code", result.ExitCode, "duration", result.Duration)
	return result, nil
}

func pick(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

// openRedirect creates (truncating) the redirect file, or falls back to w when path is empty.
func openRedirect(dir, path string, w io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return w, func() {}, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { _ = f.Close() }, nil
}
