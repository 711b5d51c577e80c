package domain

import "time"

// Severity classifies a notification for the UI.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Placement tells the UI where to render a toast.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
)

// Notification is one ephemeral user-facing message. Timeout == 0 means the
// notification persists until manually dismissed; any positive value
// schedules an independent auto-removal.
type Notification struct {
	ID        int64         `json:"id"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"severity"`
	Timeout   time.Duration `json:"timeout"`
	Placement Placement     `json:"placement"`
	CreatedAt time.Time     `json:"created_at"`
}
