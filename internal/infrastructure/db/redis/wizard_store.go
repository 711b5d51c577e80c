package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// WizardStore persists per-client wizard state under
// wizard:<client_id>:<flow>. The TTL bounds how long an abandoned flow stays
// resumable; every write refreshes it.
type WizardStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWizardStore(client *redis.Client, ttl time.Duration) *WizardStore {
	return &WizardStore{client: client, ttl: ttl}
}

func (s *WizardStore) Get(ctx context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error) {
	raw, err := s.client.Get(ctx, wizardKey(clientID, flow)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrWizardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("wizard get: %w", err)
	}

	var state domain.WizardState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("wizard decode: %w", err)
	}
	if state.Fields == nil {
		state.Fields = map[string]string{}
	}
	return &state, nil
}

func (s *WizardStore) Put(ctx context.Context, clientID string, state *domain.WizardState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("wizard encode: %w", err)
	}
	if err := s.client.Set(ctx, wizardKey(clientID, state.Flow), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("wizard put: %w", err)
	}
	return nil
}

func (s *WizardStore) Delete(ctx context.Context, clientID string, flow domain.WizardFlow) error {
	if err := s.client.Del(ctx, wizardKey(clientID, flow)).Err(); err != nil {
		return fmt.Errorf("wizard delete: %w", err)
	}
	return nil
}

func wizardKey(clientID string, flow domain.WizardFlow) string {
	return fmt.Sprintf("wizard:%s:%s", clientID, flow)
}
