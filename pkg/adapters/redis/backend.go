package redis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aretw0/testwrap/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is used when a location does not name a key.
const DefaultKey = "testwrap:settings"

// Backend implements ports.Backend with one Redis key holding the whole blob.
type Backend struct {
	*Locker
	client *backend.Client
	key    string
	ttl    time.Duration
}

type Option func(*Backend)

// WithTTL sets the expiration of the stored blob.
func WithTTL(ttl time.Duration) Option {
	return func(b *Backend) {
		b.ttl = ttl
	}
}

// WithKey sets the Redis key.
func WithKey(key string) Option {
	return func(b *Backend) {
		if key != "" {
			b.key = key
		}
	}
}

// New creates a new Redis backend with options.
func New(address, password string, db int, opts ...Option) *Backend {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis backend from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Backend {
	b := &Backend{
		client: client,
		key:    DefaultKey,
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Locker = NewLocker(client, b.key+":")
	return b
}

// NewFromURL parses redis://[user:pass@]host:port/db?key=name.
// The key query parameter is consumed here; the rest is handed to go-redis.
func NewFromURL(raw string, opts ...Option) (*Backend, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid redis location: %w", err)
	}
	q := u.Query()
	key := q.Get("key")
	q.Del("key")
	u.RawQuery = q.Encode()

	redisOpts, err := backend.ParseURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("invalid redis location: %w", err)
	}
	return NewFromClient(backend.NewClient(redisOpts), append([]Option{WithKey(key)}, opts...)...), nil
}

// Key returns the Redis key holding the blob.
func (b *Backend) Key() string {
	return b.key
}

// Write replaces the stored blob.
func (b *Backend) Write(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Read returns the stored blob, or ports.ErrNotFound if the key is absent.
func (b *Backend) Read(ctx context.Context) ([]byte, error) {
	val, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: redis key %s", ports.ErrNotFound, b.key)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// Close closes the redis client.
func (b *Backend) Close() error {
	return b.client.Close()
}

// String returns a printable location.
func (b *Backend) String() string {
	return "redis://" + b.client.Options().Addr + "?key=" + b.key
}
