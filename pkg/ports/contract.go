package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunBackendContract runs a suite of tests to verify that a Backend implementation
// adheres to the defined interface contract. The backend must start empty.
func RunBackendContract(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("Read Before Write", func(t *testing.T) {
		_, err := backend.Read(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Write and Read", func(t *testing.T) {
		err := backend.Write(ctx, []byte("first"))
		require.NoError(t, err, "Write should not return error")

		data, err := backend.Read(ctx)
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, []byte("first"), data)
	})

	t.Run("Write Replaces Wholesale", func(t *testing.T) {
		require.NoError(t, backend.Write(ctx, []byte("a much longer second payload")))
		require.NoError(t, backend.Write(ctx, []byte("3rd")))

		data, err := backend.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("3rd"), data)
	})

	t.Run("Binary Safe", func(t *testing.T) {
		payload := []byte{0x00, 0xff, 0x10, '\n', 0x00}
		require.NoError(t, backend.Write(ctx, payload))

		data, err := backend.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})
}
