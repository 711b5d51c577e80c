package domain

import (
	"testing"
	"time"
)

func TestActiveSubscription_PicksFirstPaidUnexpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	subs := []Subscription{
		{ID: "s1", PaymentStatus: PaymentPending, EndDate: now.AddDate(0, 1, 0)},
		{ID: "s2", PaymentStatus: PaymentPaid, EndDate: now.AddDate(0, -1, 0)},
		{ID: "s3", PaymentStatus: PaymentPaid, EndDate: now.AddDate(0, 2, 0)},
		{ID: "s4", PaymentStatus: PaymentPaid, EndDate: now.AddDate(0, 6, 0)},
	}

	active := ActiveSubscription(subs, now)
	if active == nil {
		t.Fatalf("expected active subscription, got nil")
	}
	if active.ID != "s3" {
		t.Fatalf("expected s3 (first paid and unexpired), got %s", active.ID)
	}
}

func TestActiveSubscription_EndDateMustBeStrictlyAfterNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	subs := []Subscription{
		{ID: "s1", PaymentStatus: PaymentPaid, EndDate: now},
	}

	if active := ActiveSubscription(subs, now); active != nil {
		t.Fatalf("subscription ending exactly now must not be active, got %s", active.ID)
	}
}

func TestActiveSubscription_NoneMatching(t *testing.T) {
	now := time.Now()
	subs := []Subscription{
		{ID: "s1", PaymentStatus: PaymentFailed, EndDate: now.AddDate(1, 0, 0)},
		{ID: "s2", PaymentStatus: PaymentPending, EndDate: now.AddDate(1, 0, 0)},
	}

	if active := ActiveSubscription(subs, now); active != nil {
		t.Fatalf("expected nil, got %s", active.ID)
	}
	if active := ActiveSubscription(nil, now); active != nil {
		t.Fatalf("expected nil for empty collection")
	}
}
