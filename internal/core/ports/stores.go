package ports

import (
	"context"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// SessionStore persists sessions server-side, keyed by session ID. Backends
// must expire entries after the configured session TTL.
type SessionStore interface {
	// Get returns domain.ErrSessionNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Put(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// WizardStore persists per-client wizard state, keyed by client ID and flow.
// There is exactly one state per (client, flow) pair; writes replace the
// whole record (last write wins, per the accepted concurrency model).
type WizardStore interface {
	// Get returns domain.ErrWizardNotFound for unknown or expired keys.
	Get(ctx context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error)
	Put(ctx context.Context, clientID string, state *domain.WizardState) error
	Delete(ctx context.Context, clientID string, flow domain.WizardFlow) error
}
