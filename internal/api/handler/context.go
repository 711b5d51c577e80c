package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware and
// fast-fails before any service call when it is absent. Routes that reach
// this without the middleware are misconfigured, so 401 is the safe answer.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}

// ctxUserID returns the authenticated user's upstream ID. A session whose
// profile was never fetched carries no user ID and cannot address
// user-scoped upstream resources.
func ctxUserID(c echo.Context) (string, error) {
	session, err := ctxSession(c)
	if err != nil {
		return "", err
	}
	if session.User == nil || session.User.ID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "session missing user identity")
	}
	return session.User.ID, nil
}
