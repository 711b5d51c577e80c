package ports

import (
	"context"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// AuthService drives the Anonymous <-> Authenticated lifecycle.
type AuthService interface {
	// Login exchanges credentials for a new session. On success the session
	// is persisted and a success notification emitted; on failure the error
	// notification carries the upstream message and the error is re-raised.
	Login(ctx context.Context, clientID, phonenumber, password string) (*domain.Session, error)

	// Logout tears the session down unconditionally. Idempotent.
	Logout(ctx context.Context, clientID string, session *domain.Session) error

	// CheckAuth validates the session by fetching the profile. On an auth
	// failure it refreshes exactly once and retries the fetch once; any
	// further failure forces logout and reports false.
	CheckAuth(ctx context.Context, clientID string, session *domain.Session) (bool, error)

	// InitAuth is the startup-path variant of CheckAuth: failures are
	// reported through the notification queue instead of the return path.
	InitAuth(ctx context.Context, clientID string, session *domain.Session) bool
}
