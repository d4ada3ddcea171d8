package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/aretw0/testwrap/internal/testutils"
	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/history"
	"github.com/aretw0/testwrap/pkg/ports"
	"github.com/aretw0/testwrap/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runOptions(t *testing.T, name string, args ...string) (RunOptions, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts := RunOptions{
		Options: domain.Options{
			Name:       name,
			Invocation: domain.Invocation{Main: domain.CommandSpec{Args: args}},
		},
		TempRoot: t.TempDir(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}
	return opts, &stdout, &stderr
}

func TestExecute_Pass(t *testing.T) {
	testutils.SkipOnWindows(t)
	out := t.TempDir()

	opts, stdout, stderr := runOptions(t, "echo", "echo hello")
	opts.MetricsFile = filepath.Join(out, "testwrap.prom")
	opts.Record = filepath.Join(out, "history.db")

	code := Execute(context.Background(), opts)

	assert.Equal(t, ExitPass, code)
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, stderr.String())

	prom, err := os.ReadFile(opts.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `testwrap_run_success{test="echo"} 1`)

	records, err := history.List(context.Background(), mustOpen(t, opts.Record))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "echo", records[0].Name)
	assert.True(t, records[0].Passed)
}

func TestExecute_ExitCodeMismatch(t *testing.T) {
	testutils.SkipOnWindows(t)

	opts, stdout, stderr := runOptions(t, "false", "false")
	opts.Report = true

	code := Execute(context.Background(), opts)

	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stderr.String(), "Error: command: ")
	assert.Contains(t, stderr.String(), "return code 1 doesn't match expected 0")
	assert.Contains(t, stdout.String(), "FAIL")
	assert.Contains(t, stdout.String(), "# false")
}

func TestExecute_ExpectedNonZero(t *testing.T) {
	testutils.SkipOnWindows(t)

	opts, _, _ := runOptions(t, "false", "false")
	opts.Options.Main.ExpectedCode = 1

	assert.Equal(t, ExitPass, Execute(context.Background(), opts))
}

func TestExecute_ConfigError(t *testing.T) {
	opts, _, stderr := runOptions(t, "ls", "ls")
	opts.Options.DiffCompare = []string{"out.txt"}

	code := Execute(context.Background(), opts)

	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stderr.String(), "Error: validate: configuration error")
}

func TestExecute_RecordFailureKeepsOutcome(t *testing.T) {
	testutils.SkipOnWindows(t)

	opts, _, stderr := runOptions(t, "true", "true")
	opts.Record = t.TempDir() // a directory cannot hold the store

	assert.Equal(t, ExitPass, Execute(context.Background(), opts))
	assert.Contains(t, stderr.String(), "Failed to record run")
}

func TestExecute_VerboseLogsStages(t *testing.T) {
	testutils.SkipOnWindows(t)

	opts, _, stderr := runOptions(t, "true", "true")
	opts.Options.Verbose = true

	assert.Equal(t, ExitPass, Execute(context.Background(), opts))
	assert.Contains(t, stderr.String(), "Working directory created")
	assert.Contains(t, stderr.String(), "Run finished")
}

func TestExecute_Interrupted(t *testing.T) {
	testutils.SkipOnWindows(t)
	out := t.TempDir()

	opts, _, stderr := runOptions(t, "sleep", "sleep 5")
	opts.Record = filepath.Join(out, "history.db")

	ctx, cancel := context.WithCancelCause(context.Background())
	time.AfterFunc(100*time.Millisecond, func() { cancel(&InterruptError{Signal: syscall.SIGTERM}) })

	code := Execute(ctx, opts)

	assert.Equal(t, ExitFail, code)
	assert.Contains(t, stderr.String(), "Run interrupted")
	assert.Contains(t, stderr.String(), "sleep stopped: interrupted by terminated")
	assert.NotContains(t, stderr.String(), "doesn't match expected")

	records, err := history.List(context.Background(), mustOpen(t, opts.Record))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Passed)
}

func TestSignalContext(t *testing.T) {
	testutils.SkipOnWindows(t)

	ctx, stop := SignalContext(context.Background())
	defer stop()

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by SIGTERM")
	}

	var interrupt *InterruptError
	require.ErrorAs(t, context.Cause(ctx), &interrupt)
	assert.Equal(t, syscall.SIGTERM, interrupt.Signal)
	assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
}

func TestSignalContext_Stop(t *testing.T) {
	ctx, stop := SignalContext(context.Background())
	stop()

	<-ctx.Done()
	assert.Equal(t, context.Canceled, context.Cause(ctx))
}

func mustOpen(t *testing.T, location string) ports.Backend {
	t.Helper()
	b, err := settings.Open(location)
	require.NoError(t, err)
	return b
}
