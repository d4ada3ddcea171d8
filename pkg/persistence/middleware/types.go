package middleware

import "github.com/aretw0/testwrap/pkg/ports"

// Middleware allows wrapping a settings Backend to add behavior.
type Middleware func(ports.Backend) ports.Backend
