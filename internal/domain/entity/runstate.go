package entity

import "time"

// RunState is the single persisted document describing what the last run knew.
//
// Lifecycle: created empty on the first run, read at the start of every run and
// written back at the end of every run, whether or not a notification fired, so
// state always reflects the latest known reality. It is never deleted except by
// an explicit operator reset.
type RunState struct {
	// LastCheckedAt is the incremental-fetch watermark: the kickoff of the
	// newest match already folded into the streak.
	LastCheckedAt time.Time `json:"last_checked_dt"`

	// LastStreakLen is the no-draw streak length after the last run.
	LastStreakLen int `json:"last_streak_len"`

	// LastNotifiedKey identifies the match that triggered the most recent
	// notification (see Match.NotifyKey). Empty when nothing was ever sent.
	LastNotifiedKey string `json:"last_notified_dt"`

	// LastSeenKey identifies the newest non-draw match observed, updated even
	// on runs that do not notify.
	LastSeenKey string `json:"last_seen_dt,omitempty"`

	// LastFullRunAt is the monotonic "last full run" timestamp used by the
	// minimum-interval guard.
	LastFullRunAt time.Time `json:"last_full_run_ts"`

	// LeagueID caches the numeric league id resolved from the structured API
	// so it is not re-resolved on every run.
	LeagueID int `json:"cached_league_id,omitempty"`
}

// Normalize applies defaulting rules after load. Loosely persisted documents
// (hand edits, older versions) must never leak invalid values into a run.
func (s *RunState) Normalize() {
	if s.LastStreakLen < 0 {
		s.LastStreakLen = 0
	}
	if s.LeagueID < 0 {
		s.LeagueID = 0
	}
}

// Reset clears the watermark and base streak for exactly one rebuild run,
// keeping cached identifiers and the interval-guard timestamp.
func (s *RunState) Reset() {
	s.LastCheckedAt = time.Time{}
	s.LastStreakLen = 0
	s.LastSeenKey = ""
}
