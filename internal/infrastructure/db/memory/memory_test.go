package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	session := &domain.Session{ID: "sess-1", AccessToken: "at", User: &domain.UserProfile{ID: "u1"}}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.AccessToken != "at" || got.User == nil || got.User.ID != "u1" {
		t.Fatalf("unexpected session: %+v", got)
	}

	// The returned session is a copy; mutating it must not touch the store.
	got.AccessToken = "mutated"
	again, _ := store.Get(ctx, "sess-1")
	if again.AccessToken != "at" {
		t.Fatalf("store entry mutated through returned pointer")
	}

	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_LazyExpiry(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)
	ctx := context.Background()

	_ = store.Put(ctx, &domain.Session{ID: "sess-1"})
	time.Sleep(30 * time.Millisecond)

	if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestWizardStore_RoundTripAndKeying(t *testing.T) {
	store := NewWizardStore(time.Hour)
	ctx := context.Background()

	state := domain.NewWizardState(domain.FlowRegistration)
	state.Phonenumber = "+237650000001"
	if err := store.Put(ctx, "client-1", state); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "client-1", domain.FlowRegistration)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Phonenumber != "+237650000001" {
		t.Fatalf("unexpected state: %+v", got)
	}

	// Same client, other flow: distinct entry.
	if _, err := store.Get(ctx, "client-1", domain.FlowPasswordReset); !errors.Is(err, domain.ErrWizardNotFound) {
		t.Fatalf("flows must be keyed separately, got %v", err)
	}
	// Other client, same flow: distinct entry.
	if _, err := store.Get(ctx, "client-2", domain.FlowRegistration); !errors.Is(err, domain.ErrWizardNotFound) {
		t.Fatalf("clients must be keyed separately, got %v", err)
	}
}

func TestWizardStore_NilFieldsNormalized(t *testing.T) {
	store := NewWizardStore(time.Hour)
	ctx := context.Background()

	_ = store.Put(ctx, "client-1", &domain.WizardState{Flow: domain.FlowRegistration})

	got, err := store.Get(ctx, "client-1", domain.FlowRegistration)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Fields == nil {
		t.Fatalf("Fields must never come back nil")
	}
}
