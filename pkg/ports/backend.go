package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when nothing has been stored yet.
var ErrNotFound = errors.New("settings not found")

// Backend stores the serialized settings blob as a whole.
// There are no partial updates: Write replaces whatever was stored.
type Backend interface {
	// Read returns the stored blob, or ErrNotFound when nothing was stored yet.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored blob.
	Write(ctx context.Context, data []byte) error
}
