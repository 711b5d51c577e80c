package domain

// WizardFlow identifies which OTP flow a wizard instance drives.
type WizardFlow string

const (
	FlowRegistration  WizardFlow = "registration"
	FlowPasswordReset WizardFlow = "password_reset"
)

// WizardStep is the ordinal position inside a flow.
type WizardStep int

const (
	StepPhoneEntry WizardStep = iota
	StepOtpPending
	StepOtpVerified
	StepComplete
)

// WizardState is the per-client state of one OTP flow. OtpToken is only set
// after verification succeeds; the finalize step fails fast when OtpToken or
// Phonenumber is absent. Steps only advance on success.
type WizardState struct {
	Flow        WizardFlow        `json:"flow"`
	Step        WizardStep        `json:"step"`
	OtpToken    string            `json:"otp_token,omitempty"`
	Phonenumber string            `json:"phonenumber,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Pending     bool              `json:"pending"`
}

// NewWizardState returns a fresh state at the phone-entry step.
func NewWizardState(flow WizardFlow) *WizardState {
	return &WizardState{Flow: flow, Step: StepPhoneEntry, Fields: map[string]string{}}
}

// Back moves one step backward, never below the first step. Collected data
// and a banked OtpToken survive, so returning to the OTP step does not
// force re-verification.
func (s *WizardState) Back() {
	if s.Step > StepPhoneEntry {
		s.Step--
	}
}

// Reset returns the wizard to its initial step and discards everything
// collected so far.
func (s *WizardState) Reset() {
	s.Step = StepPhoneEntry
	s.OtpToken = ""
	s.Phonenumber = ""
	s.Fields = map[string]string{}
	s.Pending = false
}
