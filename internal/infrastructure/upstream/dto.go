package upstream

import (
	"time"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// The upstream API exposes Mongo-style documents (_id, camelCase dates).
// These DTOs keep that wire shape out of the domain types; the gateway
// serves normalized ids.

type subjectDTO struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	FilePath  string    `json:"filePath"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d subjectDTO) toDomain() domain.Subject {
	return domain.Subject{
		ID:        d.ID,
		Type:      domain.SubjectType(d.Type),
		Title:     d.Title,
		FilePath:  d.FilePath,
		MimeType:  d.MimeType,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func mapSubjects(dtos []subjectDTO) []domain.Subject {
	out := make([]domain.Subject, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}

type questionDTO struct {
	ID             string    `json:"_id"`
	SubjectID      string    `json:"subjectId"`
	Text           string    `json:"text"`
	Options        []string  `json:"options"`
	CorrectAnswers []int     `json:"correctAnswers"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (d questionDTO) toDomain() domain.Question {
	return domain.Question{
		ID:             d.ID,
		SubjectID:      d.SubjectID,
		Text:           d.Text,
		Options:        d.Options,
		CorrectAnswers: d.CorrectAnswers,
		CreatedAt:      d.CreatedAt,
	}
}

func mapQuestions(dtos []questionDTO) []domain.Question {
	out := make([]domain.Question, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}

type tarifDTO struct {
	ID               string  `json:"_id"`
	Type             string  `json:"type"`
	Price            float64 `json:"price"`
	DurationInMonths int     `json:"durationInMonths"`
}

func (d tarifDTO) toDomain() domain.Tarif {
	return domain.Tarif{
		ID:               d.ID,
		Type:             domain.SubscriptionType(d.Type),
		Price:            d.Price,
		DurationInMonths: d.DurationInMonths,
	}
}

func mapTarifs(dtos []tarifDTO) []domain.Tarif {
	out := make([]domain.Tarif, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}

type subscriptionDTO struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"userId"`
	Type          string    `json:"type"`
	Price         float64   `json:"price"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (d subscriptionDTO) toDomain() domain.Subscription {
	return domain.Subscription{
		ID:            d.ID,
		UserID:        d.UserID,
		Type:          domain.SubscriptionType(d.Type),
		Price:         d.Price,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func mapSubscriptions(dtos []subscriptionDTO) []domain.Subscription {
	out := make([]domain.Subscription, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}
