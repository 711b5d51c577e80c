package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// stubSubscriptionService implements ports.SubscriptionService with
// per-method hooks.
type stubSubscriptionService struct {
	fetchTarifsFn            func(clientID, accessToken string) ([]domain.Tarif, error)
	fetchUserSubscriptionsFn func(clientID, accessToken, userID string) ([]domain.Subscription, error)
	createSubscriptionFn     func(clientID, accessToken string, input ports.CreateSubscriptionInput) (*domain.Subscription, error)
	cancelSubscriptionFn     func(clientID, accessToken, subscriptionID string) error
	simulatePaymentFn        func(clientID, accessToken string, amount float64, phoneNumber string) (*domain.PaymentResult, error)
	createTarifFn            func(clientID, accessToken string, input ports.TarifInput) (*domain.Tarif, error)
	updateTarifFn            func(clientID, accessToken, tarifID string, input ports.TarifInput) (*domain.Tarif, error)
	deleteTarifFn            func(clientID, accessToken, tarifID string) error
}

func (s *stubSubscriptionService) FetchTarifs(_ context.Context, clientID, accessToken string) ([]domain.Tarif, error) {
	return s.fetchTarifsFn(clientID, accessToken)
}

func (s *stubSubscriptionService) FetchUserSubscriptions(_ context.Context, clientID, accessToken, userID string) ([]domain.Subscription, error) {
	return s.fetchUserSubscriptionsFn(clientID, accessToken, userID)
}

func (s *stubSubscriptionService) CreateSubscription(_ context.Context, clientID, accessToken string, input ports.CreateSubscriptionInput) (*domain.Subscription, error) {
	return s.createSubscriptionFn(clientID, accessToken, input)
}

func (s *stubSubscriptionService) CancelSubscription(_ context.Context, clientID, accessToken, subscriptionID string) error {
	return s.cancelSubscriptionFn(clientID, accessToken, subscriptionID)
}

func (s *stubSubscriptionService) SimulatePayment(_ context.Context, clientID, accessToken string, amount float64, phoneNumber string) (*domain.PaymentResult, error) {
	return s.simulatePaymentFn(clientID, accessToken, amount, phoneNumber)
}

func (s *stubSubscriptionService) CreateTarif(_ context.Context, clientID, accessToken string, input ports.TarifInput) (*domain.Tarif, error) {
	return s.createTarifFn(clientID, accessToken, input)
}

func (s *stubSubscriptionService) UpdateTarif(_ context.Context, clientID, accessToken, tarifID string, input ports.TarifInput) (*domain.Tarif, error) {
	return s.updateTarifFn(clientID, accessToken, tarifID, input)
}

func (s *stubSubscriptionService) DeleteTarif(_ context.Context, clientID, accessToken, tarifID string) error {
	return s.deleteTarifFn(clientID, accessToken, tarifID)
}

func TestSubscriptionHandler_ListSubscriptions_ActiveIsCallers(t *testing.T) {
	now := time.Now()
	svc := &stubSubscriptionService{
		fetchUserSubscriptionsFn: func(_, _, userID string) ([]domain.Subscription, error) {
			return []domain.Subscription{
				{ID: "sub-" + userID, UserID: userID, PaymentStatus: domain.PaymentPaid, EndDate: now.AddDate(0, 1, 0)},
			}, nil
		},
	}
	h := NewSubscriptionHandler(svc)

	list := func(userID string) string {
		c, rec := newWizardContext(t, http.MethodGet, "")
		c.Set("session", &domain.Session{
			ID: "sess-" + userID, AccessToken: "at-" + userID,
			User: &domain.UserProfile{ID: userID},
		})
		if err := h.ListSubscriptions(c); err != nil {
			t.Fatalf("ListSubscriptions for %s failed: %v", userID, err)
		}
		return rec.Body.String()
	}

	// Two different users hit the same handler back to back; each response's
	// active subscription must belong to its own caller.
	bodyA := list("userA")
	bodyB := list("userB")
	bodyA2 := list("userA")

	for _, tc := range []struct{ body, want, forbidden string }{
		{bodyA, "sub-userA", "sub-userB"},
		{bodyB, "sub-userB", "sub-userA"},
		{bodyA2, "sub-userA", "sub-userB"},
	} {
		if !strings.Contains(tc.body, `"active":{"id":"`+tc.want+`"`) {
			t.Fatalf("expected active %s, got body: %s", tc.want, tc.body)
		}
		if strings.Contains(tc.body, tc.forbidden) {
			t.Fatalf("another user's subscription leaked into the response: %s", tc.body)
		}
	}
}

func TestSubscriptionHandler_ListSubscriptions_NoActiveWhenUnpaid(t *testing.T) {
	now := time.Now()
	svc := &stubSubscriptionService{
		fetchUserSubscriptionsFn: func(_, _, userID string) ([]domain.Subscription, error) {
			return []domain.Subscription{
				{ID: "s1", UserID: userID, PaymentStatus: domain.PaymentPending, EndDate: now.AddDate(0, 1, 0)},
			}, nil
		},
	}
	h := NewSubscriptionHandler(svc)

	c, rec := newWizardContext(t, http.MethodGet, "")
	c.Set("session", &domain.Session{ID: "sess-1", AccessToken: "at", User: &domain.UserProfile{ID: "u1"}})
	if err := h.ListSubscriptions(c); err != nil {
		t.Fatalf("ListSubscriptions failed: %v", err)
	}
	if strings.Contains(rec.Body.String(), `"active"`) {
		t.Fatalf("unpaid subscriptions must not yield an active one: %s", rec.Body.String())
	}
}
