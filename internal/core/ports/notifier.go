package ports

import "github.com/bourgeon/platform-gateway/internal/core/domain"

// NotifyOptions tunes a single notification. Zero values fall back to the
// defaults (info severity, 5s timeout, top placement) except Sticky, which
// forces Timeout 0 so the toast persists until dismissed.
type NotifyOptions struct {
	Severity  domain.Severity
	TimeoutMs int
	Sticky    bool
	Placement domain.Placement
}

// Notifier is the per-client toast queue. IDs are monotonic per process;
// Remove is idempotent. Auto-removal of a timed notification is scheduled
// independently per entry.
type Notifier interface {
	Show(clientID, message string, opts NotifyOptions) int64
	Success(clientID, message string) int64
	Error(clientID, message string) int64
	Warning(clientID, message string) int64
	Info(clientID, message string) int64
	Remove(clientID string, id int64)
	List(clientID string) []domain.Notification
}
