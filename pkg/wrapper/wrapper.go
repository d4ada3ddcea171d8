package wrapper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/testwrap/internal/logging"
	"github.com/aretw0/testwrap/pkg/adapters/process"
	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/ports"
)

// Wrapper executes wrapped test runs.
type Wrapper struct {
	runner  ports.CommandRunner
	differ  ports.Differ
	logger  *slog.Logger
	tmpRoot string
	environ func() []string
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures the Wrapper.
type Option func(*Wrapper)

// WithRunner replaces the process runner.
func WithRunner(r ports.CommandRunner) Option {
	return func(w *Wrapper) {
		w.runner = r
	}
}

// WithDiffer replaces the baseline differ. By default the external diff tool named
// in the options is used.
func WithDiffer(d ports.Differ) Option {
	return func(w *Wrapper) {
		w.differ = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wrapper) {
		w.logger = logger
	}
}

// WithTempRoot sets the directory under which working directories are created.
func WithTempRoot(dir string) Option {
	return func(w *Wrapper) {
		w.tmpRoot = dir
	}
}

// WithEnviron sets the source of the inherited environment (os.Environ by default).
func WithEnviron(fn func() []string) Option {
	return func(w *Wrapper) {
		w.environ = fn
	}
}

// WithOutput sets the streams children write to when they have no redirect.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(w *Wrapper) {
		w.stdout = stdout
		w.stderr = stderr
	}
}

// New creates a Wrapper.
func New(opts ...Option) *Wrapper {
	w := &Wrapper{
		logger:  logging.NewNop(),
		environ: os.Environ,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.runner == nil {
		w.runner = process.NewRunner(process.WithLogger(w.logger), process.WithOutput(w.stdout, w.stderr))
	}
	return w
}

// Run executes the full pipeline. It returns the report in every case; a non-nil
// error names the stage that stopped the run.
func (w *Wrapper) Run(ctx context.Context, opts domain.Options) (*domain.Report, error) {
	report := &domain.Report{Name: opts.Name, Started: time.Now()}
	err := w.run(ctx, opts, report)
	report.Duration = time.Since(report.Started)
	report.Passed = err == nil
	return report, err
}

func (w *Wrapper) run(ctx context.Context, opts domain.Options, report *domain.Report) error {
	var p *plan
	if err := w.step(report, domain.StageValidate, func(*domain.StageResult) (err error) {
		p, err = compile(opts)
		return err
	}); err != nil {
		return err
	}

	if err := w.step(report, domain.StagePrepare, func(res *domain.StageResult) error {
		dir, err := w.prepare(p)
		report.WorkDir = dir
		res.Detail = dir
		return err
	}); err != nil {
		return err
	}
	dir := report.WorkDir

	// Overlays were validated by compile, so this stage always passes.
	var env []string
	w.step(report, domain.StageEnvironment, func(res *domain.StageResult) error {
		env = buildEnv(w.environ(), p.overlays)
		res.Detail = fmt.Sprintf("%d overrides", len(p.overlays))
		return nil
	})

	if !p.opts.Pre.Empty() {
		if err := w.command(ctx, report, domain.StagePreCommand, *p.opts.Pre, 0, dir, env); err != nil {
			return err
		}
	}

	if err := w.command(ctx, report, domain.StageCommand, p.opts.Main, p.opts.Main.ExpectedCode, dir, env); err != nil {
		return err
	}

	if !p.opts.Post.Empty() {
		if err := w.command(ctx, report, domain.StagePostCommand, *p.opts.Post, 0, dir, env); err != nil {
			return err
		}
	}

	if len(p.patterns) > 0 {
		if err := w.step(report, domain.StageClean, func(*domain.StageResult) error {
			return w.cleanOutputs(p, dir)
		}); err != nil {
			return err
		}
	}

	if len(p.opts.FilesExist) > 0 {
		if err := w.step(report, domain.StageFilesExist, func(*domain.StageResult) error {
			return w.checkFilesExist(p, dir)
		}); err != nil {
			return err
		}
	}

	if len(p.opts.FilesDontExist) > 0 {
		if err := w.step(report, domain.StageFilesDontExist, func(*domain.StageResult) error {
			return w.checkFilesDontExist(p, dir)
		}); err != nil {
			return err
		}
	}

	if len(p.opts.DiffCompare) > 0 {
		differ := w.differ
		if differ == nil {
			d := process.NewDiffer(w.runner, p.opts.DiffTool)
			d.Stdout, d.Stderr = w.stdout, w.stderr
			differ = d
		}
		if err := w.step(report, domain.StageDiff, func(*domain.StageResult) error {
			return w.diffBaselines(ctx, differ, p, dir)
		}); err != nil {
			return err
		}
	}

	if p.opts.Cleanup {
		w.logger.Debug("Removing working directory", "dir", dir)
		if err := os.RemoveAll(dir); err != nil {
			w.logger.Warn("Failed to remove working directory", "dir", dir, "error", err)
		}
	}
	return nil
}

// step times fn and records its outcome in the report.
func (w *Wrapper) step(report *domain.Report, stage domain.Stage, fn func(*domain.StageResult) error) error {
	res := domain.StageResult{Stage: stage}
	start := time.Now()
	err := fn(&res)
	res.Duration = time.Since(start)
	res.Passed = err == nil
	if err != nil {
		res.Detail = err.Error()
	}
	report.Add(res)
	return err
}

func (w *Wrapper) prepare(p *plan) (string, error) {
	dir, err := makeWorkDir(w.tmpRoot)
	if err != nil {
		return "", domain.Fail(domain.StagePrepare, domain.ErrSetup, "creating working directory: %v", err)
	}
	w.logger.Debug("Working directory created", "dir", dir)

	if p.testEnvDir == "" {
		return dir, nil
	}
	info, err := os.Stat(p.testEnvDir)
	if err != nil || !info.IsDir() {
		w.logger.Warn("Testenv dir is not a directory, skipping copy", "dir", p.testEnvDir)
		return dir, nil
	}

	w.logger.Debug("Copying testenv dir", "src", p.testEnvDir, "dest", dir)
	if err := CopyTree(p.testEnvDir, dir); err != nil {
		return dir, domain.Fail(domain.StagePrepare, domain.ErrSetup, "copying testenv directory: %v", err)
	}
	return dir, nil
}

// command runs one child process and requires its effective exit code to equal want.
func (w *Wrapper) command(ctx context.Context, report *domain.Report, stage domain.Stage, spec domain.CommandSpec, want int, dir string, env []string) error {
	return w.step(report, stage, func(res *domain.StageResult) error {
		argv := domain.Tokenize(spec.Args)

		out, err := w.runner.Run(ctx, ports.Command{
			Argv:       argv,
			Dir:        dir,
			Env:        env,
			StdoutPath: spec.Stdout,
			StderrPath: spec.Stderr,
		})
		if err != nil {
			return &domain.StageError{Stage: stage, Err: fmt.Errorf("%w: %w", domain.ErrCommand, err)}
		}
		res.ExitCode = out.ExitCode

		if out.ExitCode != want {
			return &domain.StageError{
				Stage: stage,
				Err: fmt.Errorf("%w: %s: %w", domain.ErrCommand, filepath.Base(argv[0]),
					&domain.ExitCodeError{Argv: argv, Got: out.ExitCode, Want: want}),
			}
		}
		return nil
	})
}
