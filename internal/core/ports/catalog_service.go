package ports

import (
	"context"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// CatalogService exposes subject and question reads. The subject catalog is
// global data: full fetches replace the cache wholesale, and the typed views
// are pure filters served from it.
type CatalogService interface {
	FetchAllSubjects(ctx context.Context, clientID, accessToken string) ([]domain.Subject, error)
	FetchSubjectsByType(ctx context.Context, clientID, accessToken string, t domain.SubjectType) ([]domain.Subject, error)
	FetchQuestions(ctx context.Context, clientID, accessToken, subjectID string) ([]domain.Question, error)
	CourseSubjects() []domain.Subject
	ExamSubjects() []domain.Subject
	CreateSubject(ctx context.Context, clientID, accessToken string, input CreateSubjectInput) (*domain.Subject, error)
}

// SubscriptionService exposes tarif/subscription reads and writes.
// Subscriptions are user-scoped, so the service keeps no collection: the
// derived active view is computed per request over the slice fetched for the
// caller (domain.ActiveSubscription).
type SubscriptionService interface {
	FetchTarifs(ctx context.Context, clientID, accessToken string) ([]domain.Tarif, error)
	FetchUserSubscriptions(ctx context.Context, clientID, accessToken, userID string) ([]domain.Subscription, error)
	CreateSubscription(ctx context.Context, clientID, accessToken string, input CreateSubscriptionInput) (*domain.Subscription, error)
	CancelSubscription(ctx context.Context, clientID, accessToken, subscriptionID string) error
	SimulatePayment(ctx context.Context, clientID, accessToken string, amount float64, phoneNumber string) (*domain.PaymentResult, error)
	CreateTarif(ctx context.Context, clientID, accessToken string, input TarifInput) (*domain.Tarif, error)
	UpdateTarif(ctx context.Context, clientID, accessToken, tarifID string, input TarifInput) (*domain.Tarif, error)
	DeleteTarif(ctx context.Context, clientID, accessToken, tarifID string) error
}
