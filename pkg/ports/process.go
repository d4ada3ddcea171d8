package ports

import (
	"context"
	"io"
	"time"
)

// Command is a fully resolved child process invocation.
type Command struct {
	// Argv is the tokenized command line. Argv[0] is the program.
	Argv []string
	// Dir is the working directory of the child. Relative redirect paths resolve against it.
	Dir string
	// Env is the complete child environment in KEY=VALUE form.
	Env []string
	// StdoutPath and StderrPath redirect output to files when set.
	StdoutPath string
	StderrPath string
	// Stdout and Stderr receive output when no redirect path is set.
	Stdout io.Writer
	Stderr io.Writer
}

// CommandResult is the outcome of a command that ran to completion.
type CommandResult struct {
	// ExitCode is the effective code: a child killed by signal N reports 128+N.
	ExitCode int
	Duration time.Duration
}

// CommandRunner executes child processes.
type CommandRunner interface {
	// Run blocks until the child exits. A non-zero exit is reported in the result;
	// the error is reserved for failures to set up or start the process.
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}

// Differ compares a produced file with a baseline file.
type Differ interface {
	// Diff returns true when both files are identical.
	Diff(ctx context.Context, dir, baseline, produced string) (bool, error)
}
