package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

const (
	msgSessionExpired = "Votre session a expiré. Veuillez vous reconnecter."
	msgTimeout        = "Délai d'attente dépassé. Vérifiez votre connexion."
	msgUnreachable    = "Erreur de connexion au serveur. Vérifiez votre connexion internet."
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the typed error taxonomy to deterministic HTTP status codes.
//   - Tears the session down when the upstream declared it expired (forced
//     logout is a side effect of the error, not just a message).
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger, sessions ports.SessionStore, codec *middleware.CookieCodec) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionExpired) {
			teardownSession(log, sessions, codec, c)
			_ = c.JSON(http.StatusUnauthorized, errorResponse{Error: msgSessionExpired})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var preErr *domain.PreconditionError
	if errors.As(err, &preErr) {
		return http.StatusUnprocessableEntity, preErr.Error()
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}

	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout {
			return http.StatusGatewayTimeout, msgTimeout
		}
		return http.StatusBadGateway, msgUnreachable
	}

	if errors.Is(err, domain.ErrSessionNotFound) {
		return http.StatusUnauthorized, "invalid session"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// teardownSession deletes the caller's session and expires the cookie so a
// dead upstream token pair is never retried.
func teardownSession(log zerolog.Logger, sessions ports.SessionStore, codec *middleware.CookieCodec, c echo.Context) {
	if session, ok := middleware.SessionFromContext(c); ok {
		if err := sessions.Delete(c.Request().Context(), session.ID); err != nil {
			log.Warn().Err(err).Str("session_id", session.ID).Msg("session delete failed during expiry teardown")
		}
	}
	codec.Clear(c)
}
