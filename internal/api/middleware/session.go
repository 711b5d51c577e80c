package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

const clientCookieName = "bourgeon_cid"

// ClientID guarantees every caller a stable anonymous identity. It keys the
// wizard state and the notification queue, so it must exist before login.
func ClientID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(clientCookieName); err == nil && cookie.Value != "" {
				id = cookie.Value
			} else {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     clientCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   30 * 24 * 60 * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set("client_id", id)
			return next(c)
		}
	}
}

// Session loads the caller's session from the signed cookie and injects it
// into context. Routes behind it require an authenticated caller.
func Session(store ports.SessionStore, codec *CookieCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, ok := codec.Read(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			session, err := store.Get(c.Request().Context(), sessionID)
			if errors.Is(err, domain.ErrSessionNotFound) {
				codec.Clear(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			if err != nil {
				return err
			}

			c.Set("session", session)
			if session.User != nil {
				c.Set("role", session.User.Role)
				c.Set("user_id", session.User.ID)
			}
			return next(c)
		}
	}
}

// SessionFromContext returns the session injected by the Session middleware.
func SessionFromContext(c echo.Context) (*domain.Session, bool) {
	session, ok := c.Get("session").(*domain.Session)
	return session, ok
}

// ClientIDFromContext returns the anonymous client identity.
func ClientIDFromContext(c echo.Context) string {
	id, _ := c.Get("client_id").(string)
	return id
}
