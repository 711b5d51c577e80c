package domain

import "time"

// PaymentStatus is the upstream payment state of a subscription.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// SubscriptionType is the billing period of a plan.
type SubscriptionType string

const (
	PlanMonthly    SubscriptionType = "mensuel"
	PlanQuarterly  SubscriptionType = "trimestriel"
	PlanBiannual   SubscriptionType = "semestriel"
	PlanAnnual     SubscriptionType = "annuel"
)

// Tarif is a purchasable subscription plan.
type Tarif struct {
	ID               string           `json:"id"`
	Type             SubscriptionType `json:"type"`
	Price            float64          `json:"price"`
	DurationInMonths int              `json:"durationInMonths"`
}

// Subscription is one purchased plan for a user.
type Subscription struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Type          SubscriptionType `json:"type"`
	Price         float64          `json:"price"`
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	PaymentStatus PaymentStatus    `json:"paymentStatus"`
	TransactionID string           `json:"transactionId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// PaymentResult is the outcome of a simulated payment.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message,omitempty"`
}

// ActiveSubscription returns the first subscription that is paid and whose
// end date is strictly after now, or nil. Derived state is always computed
// from the current collection, never cached.
func ActiveSubscription(subs []Subscription, now time.Time) *Subscription {
	for i := range subs {
		if subs[i].PaymentStatus == PaymentPaid && subs[i].EndDate.After(now) {
			return &subs[i]
		}
	}
	return nil
}
