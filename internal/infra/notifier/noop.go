package notifier

import "context"

// NoOpNotifier is used when no notification channel is configured. It lets
// the pipeline run without null checks around the notifier.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Notify does nothing and returns nil.
func (n *NoOpNotifier) Notify(ctx context.Context, text string) error {
	return nil
}
