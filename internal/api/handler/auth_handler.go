package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	codec       *middleware.CookieCodec
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, codec *middleware.CookieCodec) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, codec: codec}
}

// Login exchanges phone number and password for a session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clientID := middleware.ClientIDFromContext(c)
	session, err := h.authService.Login(c.Request().Context(), clientID, req.Phonenumber, req.Password)
	if err != nil {
		return err
	}
	if err := h.codec.Issue(c, session.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          session.User,
		Redirect:      "/dashboard",
	})
}

// Logout tears the session down and expires the cookie. Idempotent: a
// caller without a live session still gets its cookie cleared and a 200.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	clientID := middleware.ClientIDFromContext(c)
	if err := h.authService.Logout(c.Request().Context(), clientID, session); err != nil {
		return err
	}
	h.codec.Clear(c)

	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: false,
		Redirect:      "/login",
	})
}

// Session reports the caller's authentication state. Unlike the guarded
// routes it never rejects: an anonymous or expired caller simply gets
// authenticated=false, with the stale cookie cleared as a side effect.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	anonymous := sessionResponse{Authenticated: false}

	sessionID, ok := h.codec.Read(c)
	if !ok {
		return c.JSON(http.StatusOK, anonymous)
	}

	ctx := c.Request().Context()
	session, err := h.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		h.codec.Clear(c)
		return c.JSON(http.StatusOK, anonymous)
	}
	if err != nil {
		return err
	}

	clientID := middleware.ClientIDFromContext(c)
	if !h.authService.InitAuth(ctx, clientID, session) {
		h.codec.Clear(c)
		return c.JSON(http.StatusOK, anonymous)
	}

	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: session.User})
}
