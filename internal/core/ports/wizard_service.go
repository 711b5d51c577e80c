package ports

import (
	"context"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// RegistrationFields is what the UI collects on the final registration step.
type RegistrationFields struct {
	Firstname       string
	Lastname        string
	Password        string
	ConfirmPassword string
}

// PasswordResetFields is what the UI collects on the final reset step.
type PasswordResetFields struct {
	NewPassword     string
	ConfirmPassword string
}

// WizardService is the linear OTP state machine shared by registration and
// password reset. Steps only advance on success; failed operations leave
// state untouched so the same step can be retried.
type WizardService interface {
	State(ctx context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error)
	RequestOTP(ctx context.Context, clientID string, flow domain.WizardFlow, phonenumber string) (*OTPIssued, error)
	VerifyOTP(ctx context.Context, clientID string, flow domain.WizardFlow, otp string) (*OTPVerified, error)
	ResendOTP(ctx context.Context, clientID string, flow domain.WizardFlow) (*OTPIssued, error)
	FinalizeRegistration(ctx context.Context, clientID string, fields RegistrationFields) (*domain.Session, error)
	FinalizePasswordReset(ctx context.Context, clientID string, fields PasswordResetFields) (string, error)
	Reset(ctx context.Context, clientID string, flow domain.WizardFlow) error
	Back(ctx context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error)
}
