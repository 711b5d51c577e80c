package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// WizardHandler serves one OTP flow (registration or password reset). Both
// flows share the same engine and the same route shape; the flow is fixed
// at construction and the finalize payload is the only divergence.
type WizardHandler struct {
	wizardService ports.WizardService
	flow          domain.WizardFlow
	codec         *middleware.CookieCodec
}

func NewWizardHandler(wizardService ports.WizardService, flow domain.WizardFlow, codec *middleware.CookieCodec) *WizardHandler {
	return &WizardHandler{wizardService: wizardService, flow: flow, codec: codec}
}

// State returns the caller's current position in the flow. A caller who
// never started gets a fresh state at the phone-entry step.
//
// @Summary      Wizard state
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  wizardStateResponse
// @Router       /{flow}/state [get]
func (h *WizardHandler) State(c echo.Context) error {
	clientID := middleware.ClientIDFromContext(c)
	state, err := h.wizardService.State(c.Request().Context(), clientID, h.flow)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWizardStateResponse(state))
}

// RequestOTP sends a verification code to the given phone number and
// advances the wizard to the OTP-pending step.
//
// @Summary      Request OTP
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        body  body      requestOtpRequest  true  "Phone number"
// @Success      200   {object}  otpIssuedResponse
// @Failure      400   {object}  errorResponse
// @Router       /{flow}/request-otp [post]
func (h *WizardHandler) RequestOTP(c echo.Context) error {
	var req requestOtpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clientID := middleware.ClientIDFromContext(c)
	issued, err := h.wizardService.RequestOTP(c.Request().Context(), clientID, h.flow, req.Phonenumber)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, otpIssuedResponse{
		Phonenumber:       issued.Phonenumber,
		ExpiresIn:         issued.ExpiresIn,
		AttemptsRemaining: issued.AttemptsRemaining,
		Step:              int(domain.StepOtpPending),
	})
}

// VerifyOTP checks the submitted code and banks the resulting OTP token.
//
// @Summary      Verify OTP
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOtpRequest  true  "OTP code"
// @Success      200   {object}  otpVerifiedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /{flow}/verify-otp [post]
func (h *WizardHandler) VerifyOTP(c echo.Context) error {
	var req verifyOtpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clientID := middleware.ClientIDFromContext(c)
	if _, err := h.wizardService.VerifyOTP(c.Request().Context(), clientID, h.flow, req.Otp); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, otpVerifiedResponse{
		Verified: true,
		Step:     int(domain.StepOtpVerified),
	})
}

// ResendOTP re-sends the code to the phone number already on file. The
// wizard step does not move.
//
// @Summary      Resend OTP
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  otpIssuedResponse
// @Failure      422  {object}  errorResponse
// @Router       /{flow}/resend-otp [post]
func (h *WizardHandler) ResendOTP(c echo.Context) error {
	clientID := middleware.ClientIDFromContext(c)
	issued, err := h.wizardService.ResendOTP(c.Request().Context(), clientID, h.flow)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, otpIssuedResponse{
		Phonenumber:       issued.Phonenumber,
		ExpiresIn:         issued.ExpiresIn,
		AttemptsRemaining: issued.AttemptsRemaining,
		Step:              int(domain.StepOtpPending),
	})
}

// Complete finalizes the flow. Registration creates the account and opens a
// session (the caller lands on the dashboard already logged in); password
// reset confirms the change and sends the caller back to the login page.
//
// @Summary      Complete wizard
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Success      200   {object}  messageResponse
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /{flow}/complete [post]
func (h *WizardHandler) Complete(c echo.Context) error {
	if h.flow == domain.FlowRegistration {
		return h.completeRegistration(c)
	}
	return h.completePasswordReset(c)
}

func (h *WizardHandler) completeRegistration(c echo.Context) error {
	var req completeRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clientID := middleware.ClientIDFromContext(c)
	session, err := h.wizardService.FinalizeRegistration(c.Request().Context(), clientID, ports.RegistrationFields{
		Firstname:       req.Firstname,
		Lastname:        req.Lastname,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	if err := h.codec.Issue(c, session.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		Authenticated: true,
		User:          session.User,
		Redirect:      "/dashboard",
	})
}

func (h *WizardHandler) completePasswordReset(c echo.Context) error {
	var req completePasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	clientID := middleware.ClientIDFromContext(c)
	message, err := h.wizardService.FinalizePasswordReset(c.Request().Context(), clientID, ports.PasswordResetFields{
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: message, Redirect: "/login"})
}

// Reset discards the wizard state entirely.
//
// @Summary      Reset wizard
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  wizardStateResponse
// @Router       /{flow}/reset [post]
func (h *WizardHandler) Reset(c echo.Context) error {
	clientID := middleware.ClientIDFromContext(c)
	if err := h.wizardService.Reset(c.Request().Context(), clientID, h.flow); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWizardStateResponse(domain.NewWizardState(h.flow)))
}

// Back moves one step backward, never below the first step.
//
// @Summary      Step back
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  wizardStateResponse
// @Router       /{flow}/back [post]
func (h *WizardHandler) Back(c echo.Context) error {
	clientID := middleware.ClientIDFromContext(c)
	state, err := h.wizardService.Back(c.Request().Context(), clientID, h.flow)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWizardStateResponse(state))
}
