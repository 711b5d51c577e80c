package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bourgeon/platform-gateway/internal/api/metrics"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

const defaultNotificationTimeout = 5000 * time.Millisecond

// NotificationCenter keeps one ordered toast queue per client. Queues live
// in memory: toasts are ephemeral by design and do not survive a restart.
type NotificationCenter struct {
	log    zerolog.Logger
	mu     sync.Mutex
	queues map[string][]domain.Notification
	nextID int64
}

func NewNotificationCenter(log zerolog.Logger) *NotificationCenter {
	return &NotificationCenter{
		log:    log,
		queues: make(map[string][]domain.Notification),
	}
}

// Show appends a notification and schedules its removal when a positive
// timeout applies. Each removal timer is independent; dismissing one toast
// never cancels another.
func (n *NotificationCenter) Show(clientID, message string, opts ports.NotifyOptions) int64 {
	severity := opts.Severity
	if severity == "" {
		severity = domain.SeverityInfo
	}
	placement := opts.Placement
	if placement == "" {
		placement = domain.PlacementTop
	}
	timeout := defaultNotificationTimeout
	if opts.Sticky {
		timeout = 0
	} else if opts.TimeoutMs > 0 {
		timeout = time.Duration(opts.TimeoutMs) * time.Millisecond
	}

	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.queues[clientID] = append(n.queues[clientID], domain.Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		Timeout:   timeout,
		Placement: placement,
		CreatedAt: time.Now().UTC(),
	})
	n.mu.Unlock()

	metrics.NotificationsEmittedTotal.WithLabelValues(string(severity)).Inc()

	if timeout > 0 {
		time.AfterFunc(timeout, func() { n.Remove(clientID, id) })
	}
	return id
}

// Remove deletes the first entry matching id. Removing an absent id is a
// no-op.
func (n *NotificationCenter) Remove(clientID string, id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	queue := n.queues[clientID]
	for i := range queue {
		if queue[i].ID == id {
			n.queues[clientID] = append(queue[:i], queue[i+1:]...)
			break
		}
	}
	if len(n.queues[clientID]) == 0 {
		delete(n.queues, clientID)
	}
}

// List returns the client's queue in insertion order.
func (n *NotificationCenter) List(clientID string) []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	queue := n.queues[clientID]
	out := make([]domain.Notification, len(queue))
	copy(out, queue)
	return out
}

func (n *NotificationCenter) Success(clientID, message string) int64 {
	return n.Show(clientID, message, ports.NotifyOptions{Severity: domain.SeveritySuccess})
}

func (n *NotificationCenter) Error(clientID, message string) int64 {
	return n.Show(clientID, message, ports.NotifyOptions{Severity: domain.SeverityError})
}

func (n *NotificationCenter) Warning(clientID, message string) int64 {
	return n.Show(clientID, message, ports.NotifyOptions{Severity: domain.SeverityWarning})
}

func (n *NotificationCenter) Info(clientID, message string) int64 {
	return n.Show(clientID, message, ports.NotifyOptions{Severity: domain.SeverityInfo})
}
