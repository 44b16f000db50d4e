package notify

import (
	"context"
	"fmt"
	"log/slog"

	"streakwatch/internal/infra/notifier"
)

// Service renders alert events and hands them to the delivery channel.
type Service struct {
	channel notifier.Notifier
	logger  *slog.Logger
}

// NewService wires a delivery channel.
func NewService(channel notifier.Notifier, logger *slog.Logger) *Service {
	return &Service{channel: channel, logger: logger}
}

// Announce renders ev and delivers it. The error is the channel's final
// delivery error; the caller decides whether the alert counts as sent.
func (s *Service) Announce(ctx context.Context, ev Event) error {
	text := FormatHTML(ev)

	s.logger.Info("dispatching streak alert",
		slog.String("league", ev.League),
		slog.Int("streak", ev.Streak),
		slog.String("last_match", ev.Last.String()),
		slog.String("source", ev.SourceTag))

	if err := s.channel.Notify(ctx, text); err != nil {
		return fmt.Errorf("announce streak: %w", err)
	}
	return nil
}
