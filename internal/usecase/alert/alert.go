// Package alert decides whether a computed streak warrants a notification.
//
// The decision layer sits between the streak fold and the notification
// channel. It owns the duplicate-suppression and sanity-guard rules, so the
// channel itself stays a dumb transport.
package alert

import (
	"fmt"

	"streakwatch/internal/domain/entity"
)

// Mode selects the notification cadence.
type Mode string

const (
	// ModeEach notifies on every advance of the streak at or above the
	// threshold, deduplicated by the match that extended it.
	ModeEach Mode = "each"

	// ModeThresholdOnce notifies only on the run where the streak first
	// crosses the threshold, then stays silent until it resets and
	// crosses again.
	ModeThresholdOnce Mode = "threshold_once"
)

// ParseMode validates a mode string from configuration.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEach, ModeThresholdOnce:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown alert mode %q", entity.ErrInvalidInput, s)
	}
}

// Config carries the alerting thresholds.
type Config struct {
	Threshold    int
	Mode         Mode
	MaxPlausible int
}

// DefaultConfig mirrors the documented defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:    7,
		Mode:         ModeEach,
		MaxPlausible: 40,
	}
}

// Decision is the outcome of one alerting evaluation.
type Decision struct {
	// Notify is true when a notification should be dispatched.
	Notify bool

	// GuardTripped is true when the streak exceeded the plausibility
	// ceiling. The streak in that case is clamped and Notify is false.
	GuardTripped bool

	// Streak is the (possibly clamped) streak length to persist.
	Streak int
}

// Decide evaluates the alerting rules against the prior run state and the
// freshly computed streak. last is the match that currently ends the streak,
// or nil when this run observed no decisive match.
func Decide(state *entity.RunState, streakLen int, last *entity.Match, cfg Config) Decision {
	d := Decision{Streak: streakLen}

	if cfg.MaxPlausible > 0 && streakLen > cfg.MaxPlausible {
		d.Streak = cfg.MaxPlausible
		d.GuardTripped = true
		return d
	}

	if streakLen < cfg.Threshold {
		return d
	}

	switch cfg.Mode {
	case ModeThresholdOnce:
		// Only the crossing run fires; subsequent extensions stay quiet.
		d.Notify = state.LastStreakLen < cfg.Threshold
	default:
		// Every advance fires, but never twice for the same match.
		d.Notify = last != nil && last.NotifyKey() != state.LastNotifiedKey
	}

	return d
}
