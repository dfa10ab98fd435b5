package http

import (
	"context"

	"github.com/animeshelf/library/internal/auth"
	"github.com/animeshelf/library/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library        *services.LibraryService
	AuthService    *auth.Service
	AuthController *auth.AuthController

	// Per-client request rate on the users routes (optional)
	ClientLimiter *auth.ClientLimiter

	// Health check target (optional) and its DATABASE_DRIVER
	Store  Pinger
	Driver string

	// Application info
	Version string
}
