package notifier

import (
	"context"
	"log/slog"
	"sync"

	"streakwatch/internal/observability/metrics"
)

// DryRunNotifier logs alerts instead of delivering them. It records every
// payload so tests and operators can inspect what would have been sent.
type DryRunNotifier struct {
	mu       sync.Mutex
	messages []string
}

// NewDryRunNotifier creates a new DryRunNotifier.
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify records the message and logs it at INFO level.
func (n *DryRunNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	n.messages = append(n.messages, text)
	n.mu.Unlock()

	metrics.RecordNotification("dry_run", "sent")
	slog.Info("dry run: notification suppressed", slog.String("message", text))
	return nil
}

// Messages returns a copy of everything notified so far.
func (n *DryRunNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}
