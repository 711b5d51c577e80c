package domain

import "testing"

func TestWizardState_BackFloorsAtFirstStep(t *testing.T) {
	state := NewWizardState(FlowRegistration)
	state.Step = StepOtpVerified

	state.Back()
	if state.Step != StepOtpPending {
		t.Fatalf("expected step %d, got %d", StepOtpPending, state.Step)
	}

	state.Back()
	state.Back()
	state.Back()
	if state.Step != StepPhoneEntry {
		t.Fatalf("expected step to floor at %d, got %d", StepPhoneEntry, state.Step)
	}
}

func TestWizardState_BackKeepsCollectedData(t *testing.T) {
	state := NewWizardState(FlowPasswordReset)
	state.Step = StepOtpVerified
	state.Phonenumber = "+237650000001"
	state.OtpToken = "tok-123"

	state.Back()

	if state.Phonenumber != "+237650000001" {
		t.Fatalf("phone number lost on back: %q", state.Phonenumber)
	}
	if state.OtpToken != "tok-123" {
		t.Fatalf("otp token lost on back: %q", state.OtpToken)
	}
}

func TestWizardState_ResetClearsEverything(t *testing.T) {
	state := NewWizardState(FlowRegistration)
	state.Step = StepComplete
	state.Phonenumber = "+237650000001"
	state.OtpToken = "tok-123"
	state.Fields["firstname"] = "Ada"
	state.Pending = true

	state.Reset()

	if state.Step != StepPhoneEntry {
		t.Fatalf("expected step %d after reset, got %d", StepPhoneEntry, state.Step)
	}
	if state.Phonenumber != "" || state.OtpToken != "" {
		t.Fatalf("expected cleared data, got phone=%q token=%q", state.Phonenumber, state.OtpToken)
	}
	if len(state.Fields) != 0 {
		t.Fatalf("expected empty fields, got %v", state.Fields)
	}
	if state.Pending {
		t.Fatalf("expected pending cleared")
	}
	if state.Flow != FlowRegistration {
		t.Fatalf("flow must survive reset, got %s", state.Flow)
	}
}
