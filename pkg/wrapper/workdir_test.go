package wrapper

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/testwrap/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "dest")

	testutils.WriteFile(t, filepath.Join(src, "a.txt"), "A")
	testutils.WriteFile(t, filepath.Join(src, "sub", "b.txt"), "B")
	require.NoError(t, os.Mkdir(filepath.Join(src, "empty"), 0755))

	exe := filepath.Join(src, "run.sh")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.Chmod(exe, 0750))

	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(src, "a.txt"), stamp, stamp))

	require.NoError(t, CopyTree(src, dest))

	data, err := os.ReadFile(filepath.Join(dest, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "B", string(data))

	info, err := os.Stat(filepath.Join(dest, "empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = os.Stat(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "modification time is preserved")

	if os.PathSeparator == '/' {
		info, err = os.Stat(filepath.Join(dest, "run.sh"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0750), info.Mode().Perm())
	}
}

func TestCopyTree_MissingSource(t *testing.T) {
	err := CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.Error(t, err)
}
