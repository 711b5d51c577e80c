package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bourgeon/platform-gateway/internal/api/metrics"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// flowText carries the per-flow notification wording. The two flows are
// otherwise identical linear state machines.
type flowText struct {
	otpSentFmt string
	otpResent  string
}

var flowTexts = map[domain.WizardFlow]flowText{
	domain.FlowRegistration:  {otpSentFmt: msgOtpSentFmt, otpResent: msgOtpResent},
	domain.FlowPasswordReset: {otpSentFmt: msgResetOtpSentFmt, otpResent: msgResetOtpResent},
}

// WizardEngine drives both OTP flows: request -> verify -> finalize, with
// resend, reset and back. State is persisted per (client, flow); steps only
// move forward on success and a verified otpToken stays banked until Reset.
type WizardEngine struct {
	api      ports.AuthAPI
	wizards  ports.WizardStore
	sessions ports.SessionStore
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewWizardEngine(api ports.AuthAPI, wizards ports.WizardStore, sessions ports.SessionStore, notifier ports.Notifier, logger zerolog.Logger) *WizardEngine {
	return &WizardEngine{api: api, wizards: wizards, sessions: sessions, notifier: notifier, logger: logger}
}

// State returns the current wizard state, or a fresh one when none exists.
func (s *WizardEngine) State(ctx context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error) {
	return s.load(ctx, clientID, flow)
}

// RequestOTP asks the upstream to send a code, records the phone number and
// moves to the OTP-entry step. On failure the step is unchanged so the same
// state can be retried.
func (s *WizardEngine) RequestOTP(ctx context.Context, clientID string, flow domain.WizardFlow, phonenumber string) (*ports.OTPIssued, error) {
	state, err := s.load(ctx, clientID, flow)
	if err != nil {
		return nil, err
	}
	defer s.beginPending(ctx, clientID, state)()

	issued, err := s.api.RequestOTP(ctx, flow, phonenumber)
	if err != nil {
		metrics.WizardOpsTotal.WithLabelValues(string(flow), "request_otp", "error").Inc()
		s.notifier.Error(clientID, userMessage(err, "Erreur lors de l'envoi du code"))
		return nil, err
	}

	state.Phonenumber = phonenumber
	state.Step = domain.StepOtpPending

	metrics.WizardOpsTotal.WithLabelValues(string(flow), "request_otp", "ok").Inc()
	s.notifier.Success(clientID, fmt.Sprintf(flowTexts[flow].otpSentFmt, phonenumber))
	return issued, nil
}

// VerifyOTP checks the code upstream and banks the returned otpToken. The
// phone number must already be recorded; without it no network call is made.
func (s *WizardEngine) VerifyOTP(ctx context.Context, clientID string, flow domain.WizardFlow, otp string) (*ports.OTPVerified, error) {
	state, err := s.load(ctx, clientID, flow)
	if err != nil {
		return nil, err
	}
	if state.Phonenumber == "" {
		metrics.WizardOpsTotal.WithLabelValues(string(flow), "verify_otp", "precondition_failed").Inc()
		err := domain.NewPrecondition("phonenumber")
		s.notifier.Error(clientID, msgMissingPhone)
		return nil, err
	}
	defer s.beginPending(ctx, clientID, state)()

	verified, err := s.api.VerifyOTP(ctx, flow, state.Phonenumber, otp)
	if err != nil {
		metrics.WizardOpsTotal.WithLabelValues(string(flow), "verify_otp", "error").Inc()
		s.notifier.Error(clientID, userMessage(err, "Code de vérification incorrect"))
		return nil, err
	}

	state.OtpToken = verified.OtpToken
	state.Step = domain.StepOtpVerified

	metrics.WizardOpsTotal.WithLabelValues(string(flow), "verify_otp", "ok").Inc()
	s.notifier.Success(clientID, msgOtpVerified)
	return verified, nil
}

// ResendOTP reissues the code without touching the step or collected data.
// The notification is informational, distinct from the first-issuance toast.
func (s *WizardEngine) ResendOTP(ctx context.Context, clientID string, flow domain.WizardFlow) (*ports.OTPIssued, error) {
	state, err := s.load(ctx, clientID, flow)
	if err != nil {
		return nil, err
	}
	if state.Phonenumber == "" {
		metrics.WizardOpsTotal.WithLabelValues(string(flow), "resend_otp", "precondition_failed").Inc()
		err := domain.NewPrecondition("phonenumber")
		s.notifier.Error(clientID, msgMissingPhone)
		return nil, err
	}
	defer s.beginPending(ctx, clientID, state)()

	issued, err := s.api.ResendOTP(ctx, flow, state.Phonenumber)
	if err != nil {
		metrics.WizardOpsTotal.WithLabelValues(string(flow), "resend_otp", "error").Inc()
		s.notifier.Error(clientID, userMessage(err, "Erreur lors du renvoi du code"))
		return nil, err
	}

	metrics.WizardOpsTotal.WithLabelValues(string(flow), "resend_otp", "ok").Inc()
	s.notifier.Info(clientID, flowTexts[flow].otpResent)
	return issued, nil
}

// FinalizeRegistration performs the terminal account creation. It requires a
// banked otpToken and the recorded phone number, persists the returned token
// pair as a new session and leaves the wizard state intact (no reset).
func (s *WizardEngine) FinalizeRegistration(ctx context.Context, clientID string, fields ports.RegistrationFields) (*domain.Session, error) {
	state, err := s.load(ctx, clientID, domain.FlowRegistration)
	if err != nil {
		return nil, err
	}
	if err := s.checkFinalizePreconditions(clientID, state); err != nil {
		return nil, err
	}
	defer s.beginPending(ctx, clientID, state)()

	result, err := s.api.Register(ctx, ports.RegisterInput{
		OtpToken:        state.OtpToken,
		Phonenumber:     state.Phonenumber,
		Firstname:       fields.Firstname,
		Lastname:        fields.Lastname,
		Password:        fields.Password,
		ConfirmPassword: fields.ConfirmPassword,
	})
	if err != nil {
		metrics.WizardOpsTotal.WithLabelValues(string(domain.FlowRegistration), "finalize", "error").Inc()
		s.notifier.Error(clientID, userMessage(err, "Erreur lors de l'inscription"))
		return nil, err
	}

	user := result.User
	session := &domain.Session{
		ID:           uuid.NewString(),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		TokenType:    result.TokenType,
		User:         &user,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist session after registration")
		s.notifier.Error(clientID, msgGenericError)
		return nil, err
	}

	state.Fields["firstname"] = fields.Firstname
	state.Fields["lastname"] = fields.Lastname
	state.Step = domain.StepComplete

	metrics.WizardOpsTotal.WithLabelValues(string(domain.FlowRegistration), "finalize", "ok").Inc()
	metrics.SessionsOpenedTotal.WithLabelValues("register").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("registration completed")
	s.notifier.Success(clientID, msgRegisterOK)
	return session, nil
}

// FinalizePasswordReset performs the terminal password change and returns
// the upstream confirmation message.
func (s *WizardEngine) FinalizePasswordReset(ctx context.Context, clientID string, fields ports.PasswordResetFields) (string, error) {
	state, err := s.load(ctx, clientID, domain.FlowPasswordReset)
	if err != nil {
		return "", err
	}
	if err := s.checkFinalizePreconditions(clientID, state); err != nil {
		return "", err
	}
	defer s.beginPending(ctx, clientID, state)()

	message, err := s.api.ResetPassword(ctx, ports.ResetPasswordInput{
		OtpToken:        state.OtpToken,
		Phonenumber:     state.Phonenumber,
		NewPassword:     fields.NewPassword,
		ConfirmPassword: fields.ConfirmPassword,
	})
	if err != nil {
		metrics.WizardOpsTotal.WithLabelValues(string(domain.FlowPasswordReset), "finalize", "error").Inc()
		s.notifier.Error(clientID, userMessage(err, "Erreur lors de la réinitialisation"))
		return "", err
	}

	state.Step = domain.StepComplete

	metrics.WizardOpsTotal.WithLabelValues(string(domain.FlowPasswordReset), "finalize", "ok").Inc()
	s.notifier.Success(clientID, msgPasswordResetOK)
	return message, nil
}

// Reset discards the flow's state entirely; the next State call starts over
// at the phone-entry step.
func (s *WizardEngine) Reset(ctx context.Context, clientID string, flow domain.WizardFlow) error {
	metrics.WizardOpsTotal.WithLabelValues(string(flow), "reset", "ok").Inc()
	return s.wizards.Delete(ctx, clientID, flow)
}

// Back decrements the step without clearing the banked otpToken or collected
// fields, and never goes below the first step.
func (s *WizardEngine) Back(ctx context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error) {
	state, err := s.load(ctx, clientID, flow)
	if err != nil {
		return nil, err
	}
	state.Back()
	if err := s.wizards.Put(ctx, clientID, state); err != nil {
		return nil, err
	}
	metrics.WizardOpsTotal.WithLabelValues(string(flow), "back", "ok").Inc()
	return state, nil
}

func (s *WizardEngine) load(ctx context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error) {
	state, err := s.wizards.Get(ctx, clientID, flow)
	if errors.Is(err, domain.ErrWizardNotFound) {
		return domain.NewWizardState(flow), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// checkFinalizePreconditions fails fast, before any network call, when the
// otpToken or phone number is absent. The otpToken check comes first: a
// missing token is unrecoverable within the step, missing phone is not.
func (s *WizardEngine) checkFinalizePreconditions(clientID string, state *domain.WizardState) error {
	if state.OtpToken == "" {
		metrics.WizardOpsTotal.WithLabelValues(string(state.Flow), "finalize", "precondition_failed").Inc()
		s.notifier.Error(clientID, msgMissingOtpToken)
		return domain.NewPrecondition("otp token")
	}
	if state.Phonenumber == "" {
		metrics.WizardOpsTotal.WithLabelValues(string(state.Flow), "finalize", "precondition_failed").Inc()
		s.notifier.Error(clientID, msgMissingPhone)
		return domain.NewPrecondition("phonenumber")
	}
	return nil
}

// beginPending flips the pending flag for the duration of the in-flight
// request and persists the final state when the request settles, success or
// failure alike.
func (s *WizardEngine) beginPending(ctx context.Context, clientID string, state *domain.WizardState) func() {
	state.Pending = true
	if err := s.wizards.Put(ctx, clientID, state); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist pending wizard state")
	}
	return func() {
		state.Pending = false
		if err := s.wizards.Put(ctx, clientID, state); err != nil {
			s.logger.Warn().Err(err).Msg("failed to persist settled wizard state")
		}
	}
}
