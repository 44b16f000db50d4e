// Package run orchestrates one end-to-end check: load state, acquire
// results, fold the streak, decide on alerting, notify and checkpoint.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"streakwatch/internal/domain/entity"
	"streakwatch/internal/observability/metrics"
	"streakwatch/internal/state"
	"streakwatch/internal/usecase/acquire"
	"streakwatch/internal/usecase/alert"
	"streakwatch/internal/usecase/notify"
	"streakwatch/internal/usecase/streak"
)

// Acquirer produces the match list for this run. Satisfied by
// acquire.Service.
type Acquirer interface {
	Acquire(ctx context.Context, watermark time.Time, st *entity.RunState, now time.Time) (acquire.Result, error)
}

// Announcer delivers a rendered streak alert. Satisfied by notify.Service.
type Announcer interface {
	Announce(ctx context.Context, ev notify.Event) error
}

// Config holds the per-run behavior knobs.
type Config struct {
	LeagueName string
	Alert      alert.Config

	// MinRunInterval skips runs scheduled too close together. Zero
	// disables the guard.
	MinRunInterval time.Duration

	// ForceRebuild discards the incremental watermark and streak before
	// this run, recomputing everything from a full season fetch.
	ForceRebuild bool
}

// Service executes runs.
type Service struct {
	store     state.Store
	acquirer  Acquirer
	announcer Announcer
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires a run Service.
func NewService(store state.Store, acquirer Acquirer, announcer Announcer, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		acquirer:  acquirer,
		announcer: announcer,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one check cycle.
//
// The state is checkpointed twice: once after the fold (so the streak and
// watermark survive a notification failure) and once more after a successful
// notification (recording the de-dup key). A failed notification therefore
// never loses acquired progress, and the next run retries the alert because
// the de-dup key was not advanced.
func (s *Service) Run(ctx context.Context) error {
	now := s.now()

	st, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	st.Normalize()

	if s.skipTooSoon(st, now) {
		return nil
	}

	if s.cfg.ForceRebuild {
		s.logger.Info("force rebuild requested, discarding incremental state")
		st.Reset()
	}

	res, err := s.acquirer.Acquire(ctx, st.LastCheckedAt, st, now)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	prior := 0
	if res.Incremental {
		prior = st.LastStreakLen
	}
	length, last := streak.Advance(prior, res.Matches)

	decision := alert.Decide(st, length, last, s.cfg.Alert)
	metrics.SetCurrentStreak(decision.Streak)
	if decision.GuardTripped {
		metrics.RecordGuardTrip("streak_ceiling")
		s.logger.Warn("streak exceeds plausibility ceiling, clamping and suppressing alert",
			slog.Int("streak", length),
			slog.Int("ceiling", s.cfg.Alert.MaxPlausible))
	}

	s.logger.Info("run computed",
		slog.String("source", res.SourceTag),
		slog.Int("matches", len(res.Matches)),
		slog.Int("streak", decision.Streak),
		slog.Bool("notify", decision.Notify))

	s.checkpoint(st, decision.Streak, res.Matches, now)
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if !decision.Notify || last == nil {
		return nil
	}

	ev := notify.Event{
		League:    s.cfg.LeagueName,
		Streak:    decision.Streak,
		Threshold: s.cfg.Alert.Threshold,
		Mode:      string(s.cfg.Alert.Mode),
		Last:      *last,
		SourceTag: res.SourceTag,
	}
	if err := s.announcer.Announce(ctx, ev); err != nil {
		// The fold checkpoint is already saved; the de-dup key stays
		// unset so the next run retries this alert.
		return fmt.Errorf("run: %w", err)
	}

	st.LastNotifiedKey = last.NotifyKey()
	if err := s.store.Save(ctx, st); err != nil {
		return fmt.Errorf("run: record notification: %w", err)
	}
	return nil
}

// skipTooSoon enforces the minimum interval between full runs.
func (s *Service) skipTooSoon(st *entity.RunState, now time.Time) bool {
	if s.cfg.MinRunInterval <= 0 || st.LastFullRunAt.IsZero() {
		return false
	}
	elapsed := now.Sub(st.LastFullRunAt)
	if elapsed >= s.cfg.MinRunInterval {
		return false
	}
	metrics.RecordGuardTrip("min_interval")
	s.logger.Info("run skipped, last run too recent",
		slog.Duration("elapsed", elapsed),
		slog.Duration("min_interval", s.cfg.MinRunInterval))
	return true
}

// checkpoint folds this run's outcome into the state document. The watermark
// only moves forward to the newest dated kickoff; sentinel-dated records never
// advance it, so free-text acquisitions keep refetching until a dated source
// confirms the results.
func (s *Service) checkpoint(st *entity.RunState, streakLen int, matches entity.MatchList, now time.Time) {
	st.LastStreakLen = streakLen
	st.LastFullRunAt = now

	var newest time.Time
	for _, m := range matches {
		if m.HasKickoff() && m.Kickoff.After(newest) {
			newest = m.Kickoff
		}
	}
	if newest.After(st.LastCheckedAt) {
		st.LastCheckedAt = newest
	}

	// LastSeenKey tracks decisive results only, so a closing draw does not
	// overwrite the identity of the last match that shaped a streak.
	for i := len(matches) - 1; i >= 0; i-- {
		if !matches[i].IsDraw() {
			st.LastSeenKey = matches[i].NotifyKey()
			break
		}
	}
}
