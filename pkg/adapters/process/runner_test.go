package process

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/testwrap/internal/testutils"
	"github.com/aretw0/testwrap/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	testutils.SkipOnWindows(t)

	var stdout, stderr bytes.Buffer
	runner := NewRunner(WithOutput(&stdout, &stderr))
	ctx := context.Background()

	t.Run("Zero Exit", func(t *testing.T) {
		res, err := runner.Run(ctx, ports.Command{Argv: []string{"sh", "-c", "echo hello"}})
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Contains(t, stdout.String(), "hello")
	})

	t.Run("Non-Zero Exit Is A Result", func(t *testing.T) {
		res, err := runner.Run(ctx, ports.Command{Argv: []string{"sh", "-c", "exit 3"}})
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
	})

	t.Run("Signal Is Translated", func(t *testing.T) {
		res, err := runner.Run(ctx, ports.Command{Argv: []string{"sh", "-c", "kill -ABRT $$"}})
		require.NoError(t, err)
		assert.Equal(t, 128+6, res.ExitCode)
	})

	t.Run("Missing Binary Is An Error", func(t *testing.T) {
		_, err := runner.Run(ctx, ports.Command{Argv: []string{"definitely-not-a-real-binary-xyz"}})
		assert.Error(t, err)
	})

	t.Run("Empty Command Is An Error", func(t *testing.T) {
		_, err := runner.Run(ctx, ports.Command{})
		assert.Error(t, err)
	})

	t.Run("Stderr Goes To Fallback Stream", func(t *testing.T) {
		stderr.Reset()
		_, err := runner.Run(ctx, ports.Command{Argv: []string{"sh", "-c", "echo oops >&2"}})
		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "oops")
	})
}

func TestRunner_Redirects(t *testing.T) {
	testutils.SkipOnWindows(t)

	dir := t.TempDir()
	runner := NewRunner(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	res, err := runner.Run(context.Background(), ports.Command{
		Argv:       []string{"sh", "-c", "echo out; echo err >&2; exit 2"},
		Dir:        dir,
		StdoutPath: "out.txt",
		StderrPath: "err.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ExitCode)

	out, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "out\n", string(out))

	errOut, err := os.ReadFile(filepath.Join(dir, "err.txt"))
	require.NoError(t, err)
	assert.Equal(t, "err\n", string(errOut))
}

func TestRunner_DirAndEnv(t *testing.T) {
	testutils.SkipOnWindows(t)

	dir := t.TempDir()
	var stdout bytes.Buffer
	runner := NewRunner(WithOutput(&stdout, &bytes.Buffer{}))

	_, err := runner.Run(context.Background(), ports.Command{
		Argv: []string{"sh", "-c", "pwd; echo $WRAPPED_VALUE"},
		Dir:  dir,
		Env:  []string{"WRAPPED_VALUE=visible"},
	})
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), resolved)
	assert.Contains(t, stdout.String(), "visible")
}

func TestRunner_PathFromChildEnv(t *testing.T) {
	testutils.SkipOnWindows(t)

	bin := t.TempDir()
	testutils.WriteScript(t, bin, "only-in-overlay", "echo found")

	var stdout bytes.Buffer
	runner := NewRunner(WithOutput(&stdout, &bytes.Buffer{}))

	res, err := runner.Run(context.Background(), ports.Command{
		Argv: []string{"only-in-overlay"},
		Dir:  t.TempDir(),
		Env:  []string{"PATH=/nonexistent", "PATH=" + bin + string(os.PathListSeparator) + os.Getenv("PATH")},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "found\n", stdout.String())
}

func TestLookPath(t *testing.T) {
	testutils.SkipOnWindows(t)

	bin := t.TempDir()
	testutils.WriteScript(t, bin, "tool", "true")
	testutils.WriteFile(t, filepath.Join(bin, "data"), "not executable")
	env := []string{"PATH=" + bin}

	assert.Equal(t, filepath.Join(bin, "tool"), lookPath("tool", env))
	assert.Empty(t, lookPath("data", env))
	assert.Empty(t, lookPath("./tool", env))
	assert.Empty(t, lookPath("tool", []string{"HOME=/"}))
	assert.Empty(t, lookPath("tool", []string{"PATH=relative/dir"}))
}

func TestRunner_Cancelled(t *testing.T) {
	testutils.SkipOnWindows(t)

	runner := NewRunner(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	interrupted := errors.New("interrupted by interrupt")

	ctx, cancel := context.WithCancelCause(context.Background())
	time.AfterFunc(100*time.Millisecond, func() { cancel(interrupted) })

	_, err := runner.Run(ctx, ports.Command{Argv: []string{"sleep", "5"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, interrupted)
	assert.Contains(t, err.Error(), "sleep stopped")
}

func TestConvertReturnCode(t *testing.T) {
	assert.Equal(t, 0, ConvertReturnCode(0))
	assert.Equal(t, 3, ConvertReturnCode(3))
	assert.Equal(t, 134, ConvertReturnCode(-6))
	assert.Equal(t, 137, ConvertReturnCode(-9))
}

func TestExitCode_NotAnExitError(t *testing.T) {
	_, ok := ExitCode(os.ErrNotExist)
	assert.False(t, ok)
}

func TestDiffer(t *testing.T) {
	testutils.SkipOnWindows(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("same\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("same\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("other\n"), 0644))

	var out bytes.Buffer
	differ := NewDiffer(NewRunner(), "")
	differ.Stdout = &out

	same, err := differ.Diff(context.Background(), dir, "a.txt", "b.txt")
	require.NoError(t, err)
	assert.True(t, same)

	same, err = differ.Diff(context.Background(), dir, "a.txt", "c.txt")
	require.NoError(t, err)
	assert.False(t, same)
	assert.Contains(t, out.String(), "other")

	broken := NewDiffer(NewRunner(), "no-such-diff-tool-xyz")
	_, err = broken.Diff(context.Background(), dir, "a.txt", "b.txt")
	assert.Error(t, err)
}
