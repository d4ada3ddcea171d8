package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/aretw0/testwrap/pkg/persistence/middleware"
	"github.com/aretw0/testwrap/pkg/ports"
	"github.com/aretw0/testwrap/pkg/settings"
)

// KeyEnv names the variable holding a base64 AES-256 key. When set, every
// settings and history location is read and written encrypted.
const KeyEnv = "TESTWRAP_SETTINGS_KEY"

func openStore(location string) (ports.Backend, error) {
	var opts []settings.OpenOption

	if encoded := os.Getenv(KeyEnv); encoded != "" {
		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", KeyEnv, err)
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", KeyEnv, err)
		}
		opts = append(opts, settings.WithMiddleware(mw))
	}

	return settings.Open(location, opts...)
}
