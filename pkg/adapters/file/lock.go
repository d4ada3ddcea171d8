package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/testwrap/pkg/ports"
	"github.com/gofrs/flock"
)

const lockRetry = 20 * time.Millisecond

// Lock takes an advisory OS lock on "<path>.<key>.lock", serializing
// read-modify-write cycles of wrapper processes sharing the file.
// The OS releases the lock when the holder exits, so ttl is not used.
func (b *Backend) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if b.Path == "" {
		return nil, errors.New("settings path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(b.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure settings directory: %w", err)
	}

	fl := flock.New(b.Path + "." + key + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", fl.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to lock %s", fl.Path())
	}

	return func(context.Context) error {
		return fl.Unlock()
	}, nil
}
