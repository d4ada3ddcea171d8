package settings

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/testwrap/pkg/adapters/file"
	"github.com/aretw0/testwrap/pkg/adapters/redis"
	"github.com/aretw0/testwrap/pkg/persistence/middleware"
	"github.com/aretw0/testwrap/pkg/ports"
)

// OpenOption configures Open.
type OpenOption func(*openConfig)

type openConfig struct {
	middlewares []middleware.Middleware
}

// WithMiddleware wraps the opened backend. Middlewares apply in order, the first
// one being closest to the storage.
func WithMiddleware(mw middleware.Middleware) OpenOption {
	return func(c *openConfig) {
		c.middlewares = append(c.middlewares, mw)
	}
}

// Open returns the backend addressed by location:
//
//	redis://host:port/db?key=name   one Redis key (rediss:// for TLS)
//	file:///abs/path or a plain path a local file
func Open(location string, opts ...OpenOption) (ports.Backend, error) {
	var cfg openConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var b ports.Backend
	switch {
	case location == "":
		return nil, fmt.Errorf("empty settings location")
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		rb, err := redis.NewFromURL(location)
		if err != nil {
			return nil, err
		}
		b = rb
	case strings.HasPrefix(location, "file://"):
		b = file.New(strings.TrimPrefix(location, "file://"))
	default:
		b = file.New(location)
	}

	for _, mw := range cfg.middlewares {
		b = mw(b)
	}
	return b, nil
}

// Close releases backend resources when the backend holds any.
func Close(b ports.Backend) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
