package ports

import (
	"context"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
)

// TokenGrant is the token pair issued by the upstream on login, registration
// or refresh. Tokens are opaque strings; no client-side validation happens.
type TokenGrant struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// OTPIssued is the upstream acknowledgement of an OTP send.
type OTPIssued struct {
	Phonenumber       string `json:"phonenumber"`
	ExpiresIn         string `json:"expiresIn"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
}

// OTPVerified carries the short-lived token proving an OTP was verified.
type OTPVerified struct {
	OtpToken    string `json:"otpToken"`
	Phonenumber string `json:"phonenumber"`
	ExpiresIn   int    `json:"expiresIn"`
}

// RegisterInput is the terminal payload of the registration wizard.
type RegisterInput struct {
	OtpToken        string
	Phonenumber     string
	Firstname       string
	Lastname        string
	Password        string
	ConfirmPassword string
}

// RegisterResult is the upstream response to a successful registration.
type RegisterResult struct {
	User domain.UserProfile `json:"user"`
	TokenGrant
}

// ResetPasswordInput is the terminal payload of the password-reset wizard.
type ResetPasswordInput struct {
	OtpToken        string
	Phonenumber     string
	NewPassword     string
	ConfirmPassword string
}

// AuthAPI is the authentication surface of the upstream platform API.
// The flow argument selects between the registration and forgotPassword
// endpoint families, which are otherwise identical.
type AuthAPI interface {
	Login(ctx context.Context, phonenumber, password string) (*TokenGrant, error)
	RequestOTP(ctx context.Context, flow domain.WizardFlow, phonenumber string) (*OTPIssued, error)
	VerifyOTP(ctx context.Context, flow domain.WizardFlow, phonenumber, otp string) (*OTPVerified, error)
	ResendOTP(ctx context.Context, flow domain.WizardFlow, phonenumber string) (*OTPIssued, error)
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	ResetPassword(ctx context.Context, input ResetPasswordInput) (string, error)
	Profile(ctx context.Context, accessToken string) (*domain.UserProfile, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenGrant, error)
}

// CreateSubjectInput is the admin payload for publishing new material.
type CreateSubjectInput struct {
	Type     domain.SubjectType
	Title    string
	FilePath string
	MimeType string
}

// CatalogAPI is the subject/question surface of the upstream API. All calls
// attach the caller's access token.
type CatalogAPI interface {
	Subjects(ctx context.Context, accessToken string) ([]domain.Subject, error)
	SubjectsByType(ctx context.Context, accessToken string, t domain.SubjectType) ([]domain.Subject, error)
	Questions(ctx context.Context, accessToken, subjectID string) ([]domain.Question, error)
	CreateSubject(ctx context.Context, accessToken string, input CreateSubjectInput) (*domain.Subject, error)
}

// CreateSubscriptionInput starts a new subscription purchase.
type CreateSubscriptionInput struct {
	UserID      string
	Type        domain.SubscriptionType
	PhoneNumber string
}

// TarifInput is the admin payload for creating or updating a plan.
type TarifInput struct {
	Type             domain.SubscriptionType
	Price            float64
	DurationInMonths int
}

// SubscriptionAPI is the subscription/tarif surface of the upstream API.
type SubscriptionAPI interface {
	Tarifs(ctx context.Context, accessToken string) ([]domain.Tarif, error)
	UserSubscriptions(ctx context.Context, accessToken, userID string) ([]domain.Subscription, error)
	CreateSubscription(ctx context.Context, accessToken string, input CreateSubscriptionInput) (*domain.Subscription, error)
	CancelSubscription(ctx context.Context, accessToken, subscriptionID string) error
	SimulatePayment(ctx context.Context, accessToken string, amount float64, phoneNumber string) (*domain.PaymentResult, error)
	CreateTarif(ctx context.Context, accessToken string, input TarifInput) (*domain.Tarif, error)
	UpdateTarif(ctx context.Context, accessToken, tarifID string, input TarifInput) (*domain.Tarif, error)
	DeleteTarif(ctx context.Context, accessToken, tarifID string) error
}
