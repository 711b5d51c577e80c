// Package memory provides in-process store implementations used when no
// Redis address is configured (local development) and in tests. Expiry is
// lazy: entries past their deadline are dropped on read.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

type sessionEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// SessionStore is the in-memory ports.SessionStore.
type SessionStore struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]sessionEntry
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, entries: make(map[string]sessionEntry)}
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, id)
		return nil, domain.ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *SessionStore) Put(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID] = sessionEntry{session: *session, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

type wizardEntry struct {
	state     domain.WizardState
	expiresAt time.Time
}

// WizardStore is the in-memory ports.WizardStore.
type WizardStore struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]wizardEntry
}

func NewWizardStore(ttl time.Duration) *WizardStore {
	return &WizardStore{ttl: ttl, entries: make(map[string]wizardEntry)}
}

func (s *WizardStore) Get(_ context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[wizardKey(clientID, flow)]
	if !ok {
		return nil, domain.ErrWizardNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, wizardKey(clientID, flow))
		return nil, domain.ErrWizardNotFound
	}
	state := entry.state
	if state.Fields == nil {
		state.Fields = map[string]string{}
	}
	return &state, nil
}

func (s *WizardStore) Put(_ context.Context, clientID string, state *domain.WizardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[wizardKey(clientID, state.Flow)] = wizardEntry{state: *state, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *WizardStore) Delete(_ context.Context, clientID string, flow domain.WizardFlow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, wizardKey(clientID, flow))
	return nil
}

func wizardKey(clientID string, flow domain.WizardFlow) string {
	return fmt.Sprintf("%s:%s", clientID, flow)
}
