package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/testwrap/pkg/adapters/file"
	"github.com/aretw0/testwrap/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_Contract(t *testing.T) {
	backend := file.New(filepath.Join(t.TempDir(), "nested", "settings.bin"))
	ports.RunBackendContract(t, backend)
}

func TestFileBackend_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	backend := file.New(filepath.Join(dir, "settings.bin"))

	require.NoError(t, backend.Write(context.Background(), []byte("one")))
	require.NoError(t, backend.Write(context.Background(), []byte("two")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.bin", entries[0].Name())
}

func TestFileBackend_EmptyPath(t *testing.T) {
	err := file.New("").Write(context.Background(), []byte("x"))
	assert.Error(t, err)
}

func TestFileBackend_Lock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first := file.New(path)
	second := file.New(path)

	var _ ports.Locker = first

	unlock, err := first.Lock(context.Background(), "history", time.Minute)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = second.Lock(ctx, "history", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(context.Background()))

	unlock, err = second.Lock(context.Background(), "history", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock(context.Background()))
}
