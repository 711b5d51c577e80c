package service

import (
	"context"
	"sync"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// stubAuthAPI implements ports.AuthAPI with per-method hooks and call
// counters. Unset hooks fail loudly through zero returns.
type stubAuthAPI struct {
	loginFn         func(phonenumber, password string) (*ports.TokenGrant, error)
	requestOTPFn    func(flow domain.WizardFlow, phonenumber string) (*ports.OTPIssued, error)
	verifyOTPFn     func(flow domain.WizardFlow, phonenumber, otp string) (*ports.OTPVerified, error)
	resendOTPFn     func(flow domain.WizardFlow, phonenumber string) (*ports.OTPIssued, error)
	registerFn      func(input ports.RegisterInput) (*ports.RegisterResult, error)
	resetPasswordFn func(input ports.ResetPasswordInput) (string, error)
	profileFn       func(accessToken string) (*domain.UserProfile, error)
	refreshFn       func(refreshToken string) (*ports.TokenGrant, error)

	verifyCalls  int
	resendCalls  int
	refreshCalls int
	profileCalls int
}

func (s *stubAuthAPI) Login(_ context.Context, phonenumber, password string) (*ports.TokenGrant, error) {
	return s.loginFn(phonenumber, password)
}

func (s *stubAuthAPI) RequestOTP(_ context.Context, flow domain.WizardFlow, phonenumber string) (*ports.OTPIssued, error) {
	return s.requestOTPFn(flow, phonenumber)
}

func (s *stubAuthAPI) VerifyOTP(_ context.Context, flow domain.WizardFlow, phonenumber, otp string) (*ports.OTPVerified, error) {
	s.verifyCalls++
	return s.verifyOTPFn(flow, phonenumber, otp)
}

func (s *stubAuthAPI) ResendOTP(_ context.Context, flow domain.WizardFlow, phonenumber string) (*ports.OTPIssued, error) {
	s.resendCalls++
	return s.resendOTPFn(flow, phonenumber)
}

func (s *stubAuthAPI) Register(_ context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(input)
}

func (s *stubAuthAPI) ResetPassword(_ context.Context, input ports.ResetPasswordInput) (string, error) {
	return s.resetPasswordFn(input)
}

func (s *stubAuthAPI) Profile(_ context.Context, accessToken string) (*domain.UserProfile, error) {
	s.profileCalls++
	return s.profileFn(accessToken)
}

func (s *stubAuthAPI) Refresh(_ context.Context, refreshToken string) (*ports.TokenGrant, error) {
	s.refreshCalls++
	return s.refreshFn(refreshToken)
}

// stubSessionStore is a map-backed ports.SessionStore.
type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	putErr   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := session
	return &clone, nil
}

func (s *stubSessionStore) Put(_ context.Context, session *domain.Session) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// stubWizardStore is a map-backed ports.WizardStore.
type stubWizardStore struct {
	mu     sync.Mutex
	states map[string]domain.WizardState
}

func newStubWizardStore() *stubWizardStore {
	return &stubWizardStore{states: make(map[string]domain.WizardState)}
}

func wizardStubKey(clientID string, flow domain.WizardFlow) string {
	return clientID + ":" + string(flow)
}

func (s *stubWizardStore) Get(_ context.Context, clientID string, flow domain.WizardFlow) (*domain.WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[wizardStubKey(clientID, flow)]
	if !ok {
		return nil, domain.ErrWizardNotFound
	}
	clone := state
	if clone.Fields == nil {
		clone.Fields = map[string]string{}
	}
	return &clone, nil
}

func (s *stubWizardStore) Put(_ context.Context, clientID string, state *domain.WizardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[wizardStubKey(clientID, state.Flow)] = *state
	return nil
}

func (s *stubWizardStore) Delete(_ context.Context, clientID string, flow domain.WizardFlow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, wizardStubKey(clientID, flow))
	return nil
}

// recordedToast is one notification captured by recordNotifier.
type recordedToast struct {
	clientID string
	message  string
	severity domain.Severity
}

// recordNotifier records every emitted notification for assertions.
type recordNotifier struct {
	mu     sync.Mutex
	toasts []recordedToast
	nextID int64
}

func (n *recordNotifier) Show(clientID, message string, opts ports.NotifyOptions) int64 {
	severity := opts.Severity
	if severity == "" {
		severity = domain.SeverityInfo
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	n.toasts = append(n.toasts, recordedToast{clientID: clientID, message: message, severity: severity})
	return n.nextID
}

func (n *recordNotifier) Success(clientID, message string) int64 {
	return n.Show(clientID, message, ports.NotifyOptions{Severity: domain.SeveritySuccess})
}

func (n *recordNotifier) Error(clientID, message string) int64 {
	return n.Show(clientID, message, ports.NotifyOptions{Severity: domain.SeverityError})
}

func (n *recordNotifier) Warning(clientID, message string) int64 {
	return n.Show(clientID, message, ports.NotifyOptions{Severity: domain.SeverityWarning})
}

func (n *recordNotifier) Info(clientID, message string) int64 {
	return n.Show(clientID, message, ports.NotifyOptions{Severity: domain.SeverityInfo})
}

func (n *recordNotifier) Remove(string, int64) {}

func (n *recordNotifier) List(clientID string) []domain.Notification { return nil }

func (n *recordNotifier) last() (recordedToast, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return recordedToast{}, false
	}
	return n.toasts[len(n.toasts)-1], true
}
