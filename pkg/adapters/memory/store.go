package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/testwrap/pkg/ports"
)

// Backend implements ports.Backend in memory.
// Safe for concurrent use.
type Backend struct {
	data []byte
	set  bool
	mu   sync.RWMutex
}

// NewBackend creates an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Write stores a copy of data.
func (b *Backend) Write(ctx context.Context, data []byte) error {
	// Copy so the caller can reuse its buffer.
	copied := append([]byte(nil), data...)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = copied
	b.set = true
	return nil
}

// Read returns a copy of the stored data.
func (b *Backend) Read(ctx context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.set {
		return nil, fmt.Errorf("%w: memory backend is empty", ports.ErrNotFound)
	}
	return append([]byte(nil), b.data...), nil
}

// String returns a printable location.
func (b *Backend) String() string {
	return "memory:"
}
