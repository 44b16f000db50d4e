// Package notifier provides the transports that deliver streak alerts.
// It defines the Notifier interface so the alerting use case stays
// independent of the delivery mechanism (Telegram, dry-run capture, no-op).
//
// Implementations handle rate limiting and retries internally; callers only
// see the final error after all attempts.
package notifier

import "context"

// Notifier delivers one pre-rendered alert message.
type Notifier interface {
	// Notify sends text over the channel. A non-nil error means delivery
	// failed after all retry attempts; callers must not record the alert
	// as sent in that case.
	Notify(ctx context.Context, text string) error
}
