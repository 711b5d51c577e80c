package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bourgeon/platform-gateway/internal/api/metrics"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// pendingFlag marks an in-flight request so the UI can disable duplicate
// submission. Cleared on both success and failure paths via the returned
// done func.
type pendingFlag struct {
	v atomic.Bool
}

func (p *pendingFlag) begin() func() {
	p.v.Store(true)
	return func() { p.v.Store(false) }
}

func (p *pendingFlag) Pending() bool { return p.v.Load() }

// AuthService implements login, logout and the single-refresh session check.
type AuthService struct {
	api      ports.AuthAPI
	sessions ports.SessionStore
	notifier ports.Notifier
	logger   zerolog.Logger
	pending  pendingFlag
}

func NewAuthService(api ports.AuthAPI, sessions ports.SessionStore, notifier ports.Notifier, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, sessions: sessions, notifier: notifier, logger: logger}
}

// Pending reports whether an auth call is currently in flight.
func (s *AuthService) Pending() bool { return s.pending.Pending() }

// Login exchanges credentials for a new session. The upstream error message
// is surfaced verbatim in the error notification and the error is re-raised
// so the caller can keep the form open.
func (s *AuthService) Login(ctx context.Context, clientID, phonenumber, password string) (*domain.Session, error) {
	defer s.pending.begin()()

	grant, err := s.api.Login(ctx, phonenumber, password)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgLoginFailed))
		return nil, err
	}

	session := &domain.Session{
		ID:           uuid.NewString(),
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresIn:    grant.ExpiresIn,
		TokenType:    grant.TokenType,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist session")
		s.notifier.Error(clientID, msgGenericError)
		return nil, err
	}

	metrics.SessionsOpenedTotal.WithLabelValues("login").Inc()
	s.logger.Info().Str("session_id", session.ID).Msg("session opened")
	s.notifier.Success(clientID, msgLoginOK)
	return session, nil
}

// Logout tears the session down unconditionally. Deleting an already-absent
// session is not an error, so repeated calls are safe.
func (s *AuthService) Logout(ctx context.Context, clientID string, session *domain.Session) error {
	if session != nil {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("session delete failed during logout")
		}
		metrics.SessionsClosedTotal.WithLabelValues("logout").Inc()
	}
	s.notifier.Success(clientID, msgLogoutOK)
	return nil
}

// CheckAuth validates the session by fetching the profile. On failure it
// refreshes exactly once using the refresh token and retries the fetch once;
// any further failure clears the session and reports unauthenticated. The
// single refresh bounds cascading failures.
func (s *AuthService) CheckAuth(ctx context.Context, clientID string, session *domain.Session) (bool, error) {
	if session == nil || session.AccessToken == "" {
		return false, nil
	}

	profile, err := s.api.Profile(ctx, session.AccessToken)
	if err != nil {
		grant, refreshErr := s.api.Refresh(ctx, session.RefreshToken)
		if refreshErr != nil {
			s.logger.Info().Err(refreshErr).Str("session_id", session.ID).Msg("refresh failed, tearing session down")
			s.expireSession(ctx, clientID, session)
			return false, nil
		}

		session.AccessToken = grant.AccessToken
		session.RefreshToken = grant.RefreshToken
		session.ExpiresIn = grant.ExpiresIn
		session.TokenType = grant.TokenType

		profile, err = s.api.Profile(ctx, session.AccessToken)
		if err != nil {
			s.logger.Info().Err(err).Str("session_id", session.ID).Msg("profile fetch failed after refresh, tearing session down")
			s.expireSession(ctx, clientID, session)
			return false, nil
		}
	}

	session.User = profile
	if err := s.sessions.Put(ctx, session); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist refreshed session")
		return false, err
	}
	return true, nil
}

// InitAuth is the startup-path session check: any failure is reported
// through the notification queue rather than the return path.
func (s *AuthService) InitAuth(ctx context.Context, clientID string, session *domain.Session) bool {
	ok, err := s.CheckAuth(ctx, clientID, session)
	if err != nil {
		s.notifier.Error(clientID, msgGenericError)
		return false
	}
	return ok
}

func (s *AuthService) expireSession(ctx context.Context, clientID string, session *domain.Session) {
	s.notifier.Error(clientID, msgSessionExpired)
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("session delete failed during expiry")
	}
	metrics.SessionsClosedTotal.WithLabelValues("expired").Inc()
}
