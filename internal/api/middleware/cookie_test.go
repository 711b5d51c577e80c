package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newCookieContext(e *echo.Echo, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func issuedCookie(t *testing.T, codec *CookieCodec, sessionID string) *http.Cookie {
	t.Helper()
	e := echo.New()
	c, rec := newCookieContext(e)
	if err := codec.Issue(c, sessionID); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == "bourgeon_sid" {
			return cookie
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec, err := NewCookieCodec("bourgeon_sid", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCookieCodec failed: %v", err)
	}

	cookie := issuedCookie(t, codec, "sess-42")
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}

	c, _ := newCookieContext(echo.New(), cookie)
	id, ok := codec.Read(c)
	if !ok || id != "sess-42" {
		t.Fatalf("expected sess-42, got %q ok=%v", id, ok)
	}
}

func TestCookieCodec_RejectsTamperedValue(t *testing.T) {
	codec, _ := NewCookieCodec("bourgeon_sid", "test-secret", time.Hour)

	cookie := issuedCookie(t, codec, "sess-42")
	cookie.Value = cookie.Value + "x"

	c, _ := newCookieContext(echo.New(), cookie)
	if _, ok := codec.Read(c); ok {
		t.Fatalf("tampered cookie must be rejected")
	}
}

func TestCookieCodec_RejectsForeignKey(t *testing.T) {
	issuer, _ := NewCookieCodec("bourgeon_sid", "secret-a", time.Hour)
	reader, _ := NewCookieCodec("bourgeon_sid", "secret-b", time.Hour)

	cookie := issuedCookie(t, issuer, "sess-42")
	c, _ := newCookieContext(echo.New(), cookie)
	if _, ok := reader.Read(c); ok {
		t.Fatalf("cookie signed with another secret must be rejected")
	}
}

func TestCookieCodec_RejectsExpired(t *testing.T) {
	codec, _ := NewCookieCodec("bourgeon_sid", "test-secret", -time.Minute)

	cookie := issuedCookie(t, codec, "sess-42")
	c, _ := newCookieContext(echo.New(), cookie)
	if _, ok := codec.Read(c); ok {
		t.Fatalf("expired cookie must be rejected")
	}
}

func TestCookieCodec_EmptySecretRefused(t *testing.T) {
	if _, err := NewCookieCodec("bourgeon_sid", "", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestCookieCodec_ClearExpiresCookie(t *testing.T) {
	codec, _ := NewCookieCodec("bourgeon_sid", "test-secret", time.Hour)

	c, rec := newCookieContext(echo.New())
	codec.Clear(c)

	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == "bourgeon_sid" {
			if cookie.MaxAge >= 0 || cookie.Value != "" {
				t.Fatalf("expected expired empty cookie, got %+v", cookie)
			}
			return
		}
	}
	t.Fatalf("clear did not set a cookie")
}
