package handler

import (
	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Phonenumber string `json:"phonenumber" validate:"required,msisdn"`
	Password    string `json:"password"    validate:"required"`
}

type requestOtpRequest struct {
	Phonenumber string `json:"phonenumber" validate:"required,msisdn"`
}

type verifyOtpRequest struct {
	Otp string `json:"otp" validate:"required,numeric"`
}

type completeRegistrationRequest struct {
	Firstname       string `json:"firstname"       validate:"required"`
	Lastname        string `json:"lastname"        validate:"required"`
	Password        string `json:"password"        validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type completePasswordResetRequest struct {
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type createSubscriptionRequest struct {
	Type        string `json:"type"        validate:"required,oneof=mensuel trimestriel semestriel annuel"`
	PhoneNumber string `json:"phoneNumber" validate:"required,msisdn"`
}

type simulatePaymentRequest struct {
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	PhoneNumber string  `json:"phoneNumber" validate:"required,msisdn"`
}

type createSubjectRequest struct {
	Type     string `json:"type"     validate:"required,oneof=cours examen"`
	Title    string `json:"title"    validate:"required"`
	FilePath string `json:"filePath" validate:"required"`
	MimeType string `json:"mimeType" validate:"required"`
}

type tarifRequest struct {
	Type             string  `json:"type"             validate:"required,oneof=mensuel trimestriel semestriel annuel"`
	Price            float64 `json:"price"            validate:"required,gt=0"`
	DurationInMonths int     `json:"durationInMonths" validate:"required,gt=0"`
}

// --- Response types ---
// Response-only types owned by the transport layer, kept separate from the
// domain so the JSON contract is not coupled to internal changes.

type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *domain.UserProfile `json:"user,omitempty"`
	Redirect      string              `json:"redirect,omitempty"`
}

// wizardStateResponse deliberately omits the banked OTP token; only the
// fact that verification happened is visible to the client.
type wizardStateResponse struct {
	Flow        string `json:"flow"`
	Step        int    `json:"step"`
	Phonenumber string `json:"phonenumber,omitempty"`
	Verified    bool   `json:"verified"`
	Pending     bool   `json:"pending"`
}

func toWizardStateResponse(s *domain.WizardState) wizardStateResponse {
	return wizardStateResponse{
		Flow:        string(s.Flow),
		Step:        int(s.Step),
		Phonenumber: s.Phonenumber,
		Verified:    s.OtpToken != "",
		Pending:     s.Pending,
	}
}

type otpIssuedResponse struct {
	Phonenumber       string `json:"phonenumber"`
	ExpiresIn         string `json:"expiresIn,omitempty"`
	AttemptsRemaining int    `json:"attemptsRemaining,omitempty"`
	Step              int    `json:"step"`
}

type otpVerifiedResponse struct {
	Verified bool `json:"verified"`
	Step     int  `json:"step"`
}

type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}
