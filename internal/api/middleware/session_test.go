package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

type fakeSessionStore struct {
	sessions map[string]*domain.Session
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *fakeSessionStore) Put(_ context.Context, session *domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func TestSession_InjectsSessionAndRole(t *testing.T) {
	codec, _ := NewCookieCodec("bourgeon_sid", "test-secret", time.Hour)
	store := &fakeSessionStore{sessions: map[string]*domain.Session{
		"sess-1": {ID: "sess-1", AccessToken: "at", User: &domain.UserProfile{ID: "u1", Role: domain.RoleAdmin}},
	}}

	cookie := issuedCookie(t, codec, "sess-1")
	c, rec := newCookieContext(echo.New(), cookie)

	var gotRole string
	handler := Session(store, codec)(func(c echo.Context) error {
		session, ok := SessionFromContext(c)
		if !ok || session.ID != "sess-1" {
			t.Fatalf("session not injected: %+v ok=%v", session, ok)
		}
		gotRole, _ = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotRole != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", gotRole)
	}
}

func TestSession_MissingCookieIs401(t *testing.T) {
	codec, _ := NewCookieCodec("bourgeon_sid", "test-secret", time.Hour)
	store := &fakeSessionStore{sessions: map[string]*domain.Session{}}

	c, _ := newCookieContext(echo.New())
	handler := Session(store, codec)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSession_UnknownSessionClearsCookie(t *testing.T) {
	codec, _ := NewCookieCodec("bourgeon_sid", "test-secret", time.Hour)
	store := &fakeSessionStore{sessions: map[string]*domain.Session{}}

	cookie := issuedCookie(t, codec, "gone")
	c, rec := newCookieContext(echo.New(), cookie)

	handler := Session(store, codec)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}

	res := rec.Result()
	defer res.Body.Close()
	cleared := false
	for _, ck := range res.Cookies() {
		if ck.Name == "bourgeon_sid" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("stale cookie must be cleared")
	}
}

func TestClientID_AssignsAndReuses(t *testing.T) {
	e := echo.New()

	// First request: no cookie, one gets assigned.
	c, rec := newCookieContext(e)
	var firstID string
	handler := ClientID()(func(c echo.Context) error {
		firstID = ClientIDFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if firstID == "" {
		t.Fatalf("expected assigned client id")
	}

	res := rec.Result()
	defer res.Body.Close()
	var cidCookie *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == "bourgeon_cid" {
			cidCookie = ck
		}
	}
	if cidCookie == nil || cidCookie.Value != firstID {
		t.Fatalf("client id cookie not set: %+v", cidCookie)
	}

	// Second request with the cookie: the same identity comes back.
	c2, _ := newCookieContext(e, cidCookie)
	handler2 := ClientID()(func(c echo.Context) error {
		if got := ClientIDFromContext(c); got != firstID {
			t.Fatalf("expected reused id %q, got %q", firstID, got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler2(c2); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
