package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// AdminHandler proxies the write side of the catalog and plan management.
// All routes behind it require the admin role.
type AdminHandler struct {
	catalogService      ports.CatalogService
	subscriptionService ports.SubscriptionService
}

func NewAdminHandler(catalogService ports.CatalogService, subscriptionService ports.SubscriptionService) *AdminHandler {
	return &AdminHandler{catalogService: catalogService, subscriptionService: subscriptionService}
}

// CreateSubject publishes new learning material.
//
// @Summary      Create subject
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createSubjectRequest  true  "Subject details"
// @Success      201   {object}  domain.Subject
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/subjects [post]
func (h *AdminHandler) CreateSubject(c echo.Context) error {
	var req createSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	clientID := middleware.ClientIDFromContext(c)
	subject, err := h.catalogService.CreateSubject(c.Request().Context(), clientID, session.AccessToken, ports.CreateSubjectInput{
		Type:     domain.SubjectType(req.Type),
		Title:    req.Title,
		FilePath: req.FilePath,
		MimeType: req.MimeType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, subject)
}

// CreateTarif adds a purchasable plan.
//
// @Summary      Create tarif
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      tarifRequest  true  "Plan details"
// @Success      201   {object}  domain.Tarif
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/tarifs [post]
func (h *AdminHandler) CreateTarif(c echo.Context) error {
	var req tarifRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	clientID := middleware.ClientIDFromContext(c)
	tarif, err := h.subscriptionService.CreateTarif(c.Request().Context(), clientID, session.AccessToken, ports.TarifInput{
		Type:             domain.SubscriptionType(req.Type),
		Price:            req.Price,
		DurationInMonths: req.DurationInMonths,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tarif)
}

// UpdateTarif changes an existing plan.
//
// @Summary      Update tarif
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Tarif ID"
// @Param        body  body      tarifRequest  true  "Plan details"
// @Success      200   {object}  domain.Tarif
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/tarifs/{id} [put]
func (h *AdminHandler) UpdateTarif(c echo.Context) error {
	var req tarifRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing tarif id")
	}

	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	clientID := middleware.ClientIDFromContext(c)
	tarif, err := h.subscriptionService.UpdateTarif(c.Request().Context(), clientID, session.AccessToken, id, ports.TarifInput{
		Type:             domain.SubscriptionType(req.Type),
		Price:            req.Price,
		DurationInMonths: req.DurationInMonths,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tarif)
}

// DeleteTarif removes a plan.
//
// @Summary      Delete tarif
// @Tags         admin
// @Param        id  path  string  true  "Tarif ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /admin/tarifs/{id} [delete]
func (h *AdminHandler) DeleteTarif(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing tarif id")
	}

	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	clientID := middleware.ClientIDFromContext(c)
	if err := h.subscriptionService.DeleteTarif(c.Request().Context(), clientID, session.AccessToken, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
