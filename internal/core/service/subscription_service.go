package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// SubscriptionService wraps tarif and subscription operations. Subscriptions
// are user-scoped, so the service holds no collection of its own: every read
// returns the slice fetched for the caller, and the derived active view is
// computed over that slice (domain.ActiveSubscription) rather than shared
// state.
type SubscriptionService struct {
	api      ports.SubscriptionAPI
	notifier ports.Notifier
	logger   zerolog.Logger
	pending  pendingFlag
}

func NewSubscriptionService(api ports.SubscriptionAPI, notifier ports.Notifier, logger zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{api: api, notifier: notifier, logger: logger}
}

// Pending reports whether a subscription call is currently in flight.
func (s *SubscriptionService) Pending() bool { return s.pending.Pending() }

func (s *SubscriptionService) FetchTarifs(ctx context.Context, clientID, accessToken string) ([]domain.Tarif, error) {
	defer s.pending.begin()()

	tarifs, err := s.api.Tarifs(ctx, accessToken)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}
	return tarifs, nil
}

func (s *SubscriptionService) FetchUserSubscriptions(ctx context.Context, clientID, accessToken, userID string) ([]domain.Subscription, error) {
	defer s.pending.begin()()

	subs, err := s.api.UserSubscriptions(ctx, accessToken, userID)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}
	return subs, nil
}

func (s *SubscriptionService) CreateSubscription(ctx context.Context, clientID, accessToken string, input ports.CreateSubscriptionInput) (*domain.Subscription, error) {
	defer s.pending.begin()()

	sub, err := s.api.CreateSubscription(ctx, accessToken, input)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}

	s.logger.Info().Str("subscription_id", sub.ID).Str("type", string(sub.Type)).Msg("subscription created")
	s.notifier.Success(clientID, msgSubscriptionCreated)
	return sub, nil
}

func (s *SubscriptionService) CancelSubscription(ctx context.Context, clientID, accessToken, subscriptionID string) error {
	defer s.pending.begin()()

	if err := s.api.CancelSubscription(ctx, accessToken, subscriptionID); err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return err
	}

	s.notifier.Success(clientID, msgSubscriptionCancelled)
	return nil
}

func (s *SubscriptionService) SimulatePayment(ctx context.Context, clientID, accessToken string, amount float64, phoneNumber string) (*domain.PaymentResult, error) {
	defer s.pending.begin()()

	result, err := s.api.SimulatePayment(ctx, accessToken, amount, phoneNumber)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}
	return result, nil
}

func (s *SubscriptionService) CreateTarif(ctx context.Context, clientID, accessToken string, input ports.TarifInput) (*domain.Tarif, error) {
	defer s.pending.begin()()

	tarif, err := s.api.CreateTarif(ctx, accessToken, input)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}
	s.notifier.Success(clientID, "Tarif créé avec succès !")
	return tarif, nil
}

func (s *SubscriptionService) UpdateTarif(ctx context.Context, clientID, accessToken, tarifID string, input ports.TarifInput) (*domain.Tarif, error) {
	defer s.pending.begin()()

	tarif, err := s.api.UpdateTarif(ctx, accessToken, tarifID, input)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}
	s.notifier.Success(clientID, "Tarif mis à jour avec succès !")
	return tarif, nil
}

func (s *SubscriptionService) DeleteTarif(ctx context.Context, clientID, accessToken, tarifID string) error {
	defer s.pending.begin()()

	if err := s.api.DeleteTarif(ctx, accessToken, tarifID); err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return err
	}
	s.notifier.Success(clientID, "Tarif supprimé avec succès !")
	return nil
}
