package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

type SubscriptionHandler struct {
	subscriptionService ports.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// ListTarifs returns the purchasable plans.
//
// @Summary      List tarifs
// @Tags         subscriptions
// @Produce      json
// @Success      200  {array}  domain.Tarif
// @Router       /tarifs [get]
func (h *SubscriptionHandler) ListTarifs(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	clientID := middleware.ClientIDFromContext(c)
	tarifs, err := h.subscriptionService.FetchTarifs(c.Request().Context(), clientID, session.AccessToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tarifs)
}

type listSubscriptionsResponse struct {
	Subscriptions []domain.Subscription `json:"subscriptions"`
	Active        *domain.Subscription  `json:"active,omitempty"`
}

// ListSubscriptions returns the caller's subscriptions plus the derived
// active one, computed over the caller's own freshly fetched slice so one
// user's view never depends on another user's requests.
//
// @Summary      List own subscriptions
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  listSubscriptionsResponse
// @Router       /subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	clientID := middleware.ClientIDFromContext(c)
	subs, err := h.subscriptionService.FetchUserSubscriptions(c.Request().Context(), clientID, session.AccessToken, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listSubscriptionsResponse{
		Subscriptions: subs,
		Active:        domain.ActiveSubscription(subs, time.Now()),
	})
}

// CreateSubscription purchases a plan for the caller.
//
// @Summary      Create subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body      createSubscriptionRequest  true  "Plan selection"
// @Success      201   {object}  domain.Subscription
// @Failure      400   {object}  errorResponse
// @Router       /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	var req createSubscriptionRequest
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
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	clientID := middleware.ClientIDFromContext(c)
	sub, err := h.subscriptionService.CreateSubscription(c.Request().Context(), clientID, session.AccessToken, ports.CreateSubscriptionInput{
		UserID:      userID,
		Type:        domain.SubscriptionType(req.Type),
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// CancelSubscription cancels one of the caller's subscriptions.
//
// @Summary      Cancel subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id   path      string  true  "Subscription ID"
// @Success      200  {object}  messageResponse
// @Router       /subscriptions/{id} [delete]
func (h *SubscriptionHandler) CancelSubscription(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing subscription id")
	}

	clientID := middleware.ClientIDFromContext(c)
	if err := h.subscriptionService.CancelSubscription(c.Request().Context(), clientID, session.AccessToken, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "subscription cancelled"})
}

// SimulatePayment runs the upstream payment simulation.
//
// @Summary      Simulate payment
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body      simulatePaymentRequest  true  "Payment details"
// @Success      200   {object}  domain.PaymentResult
// @Failure      400   {object}  errorResponse
// @Router       /payments/simulate [post]
func (h *SubscriptionHandler) SimulatePayment(c echo.Context) error {
	var req simulatePaymentRequest
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
	result, err := h.subscriptionService.SimulatePayment(c.Request().Context(), clientID, session.AccessToken, req.Amount, req.PhoneNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
