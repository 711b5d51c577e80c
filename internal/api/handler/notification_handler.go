package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

type NotificationHandler struct {
	notifier ports.Notifier
}

func NewNotificationHandler(notifier ports.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// List returns the caller's pending toast queue, oldest first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	clientID := middleware.ClientIDFromContext(c)
	return c.JSON(http.StatusOK, h.notifier.List(clientID))
}

// Dismiss removes one notification. Dismissing an unknown or already
// auto-removed ID is a no-op, not an error.
//
// @Summary      Dismiss notification
// @Tags         notifications
// @Param        id  path  int  true  "Notification ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}

	clientID := middleware.ClientIDFromContext(c)
	h.notifier.Remove(clientID, id)
	return c.NoContent(http.StatusNoContent)
}
