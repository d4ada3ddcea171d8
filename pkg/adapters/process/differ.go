package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/ports"
)

// DefaultDiffTool returns the platform textual diff program.
func DefaultDiffTool() string {
	if runtime.GOOS == "windows" {
		return "fc.exe"
	}
	return "diff"
}

// Differ implements ports.Differ by delegating to an external diff program.
// The program's output goes to Stdout so mismatches are visible in the test log.
type Differ struct {
	Runner ports.CommandRunner
	Tool   string
	Stdout io.Writer
	Stderr io.Writer
}

// NewDiffer creates a Differ. An empty tool selects DefaultDiffTool.
func NewDiffer(runner ports.CommandRunner, tool string) *Differ {
	if tool == "" {
		tool = DefaultDiffTool()
	}
	return &Differ{
		Runner: runner,
		Tool:   tool,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Diff runs `tool baseline produced` in dir and reports whether the files match.
func (d *Differ) Diff(ctx context.Context, dir, baseline, produced string) (bool, error) {
	argv := append(domain.Tokenize([]string{d.Tool}), baseline, produced)

	res, err := d.Runner.Run(ctx, ports.Command{
		Argv:   argv,
		Dir:    dir,
		Stdout: d.Stdout,
		Stderr: d.Stderr,
	})
	if err != nil {
		return false, fmt.Errorf("failed to run diff tool: %w", err)
	}
	return res.ExitCode == 0, nil
}
