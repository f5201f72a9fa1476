package console

import (
	"context"
	"sync"
)

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, NotifyLevel, string) {}

type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(context.Context, string) bool { return true }

// Notification is a transient user-facing message.
type Notification struct {
	Level   NotifyLevel
	Message string
}

// CollectingNotifier buffers notifications for transports that flush them to
// the browser on the next response. Safe for concurrent use.
type CollectingNotifier struct {
	mu      sync.Mutex
	pending []Notification
}

// Notify appends a message to the pending buffer.
func (n *CollectingNotifier) Notify(_ context.Context, level NotifyLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, Notification{Level: level, Message: message})
}

// Drain returns and clears the pending notifications.
func (n *CollectingNotifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
