// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Match, Source and RunState, along
// with their validation rules and domain-specific errors.
package entity

import (
	"fmt"
	"time"
)

// Match represents a single finished league match.
//
// Kickoff is the scheduled kickoff timestamp. Sources that publish results without
// a reliable date produce the zero time as a sentinel; for those records the order
// of occurrence within the source payload is the chronological order, and no
// component may reorder them (see MatchList).
type Match struct {
	Home      string
	Away      string
	HomeGoals int
	AwayGoals int
	Kickoff   time.Time
}

// IsDraw reports whether the match ended level.
func (m Match) IsDraw() bool {
	return m.HomeGoals == m.AwayGoals
}

// HasKickoff reports whether the match carries a reliable kickoff timestamp.
// A zero Kickoff is the "unknown date" sentinel.
func (m Match) HasKickoff() bool {
	return !m.Kickoff.IsZero()
}

// NotifyKey returns a stable identifier used for notification de-duplication.
// It is the RFC3339 kickoff timestamp when one is known. For sentinel-dated
// matches it degrades to the match identity so that two runs seeing the same
// undated result do not alert twice.
func (m Match) NotifyKey() string {
	if m.HasKickoff() {
		return m.Kickoff.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s|%s|%d-%d", m.Home, m.Away, m.HomeGoals, m.AwayGoals)
}

// String renders the match in scoreline form, e.g. "Legia 2-1 Lech".
func (m Match) String() string {
	return fmt.Sprintf("%s %d-%d %s", m.Home, m.HomeGoals, m.AwayGoals, m.Away)
}

// Validate checks that the match is a usable final result.
// Records with missing team names or negative goal counts are discarded
// by extractors before they enter the pipeline.
func (m Match) Validate() error {
	if m.Home == "" {
		return &ValidationError{Field: "home", Message: "team name must not be empty"}
	}
	if m.Away == "" {
		return &ValidationError{Field: "away", Message: "team name must not be empty"}
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return &ValidationError{Field: "goals", Message: "goal counts must be non-negative"}
	}
	return nil
}

// MatchList is an ordered sequence of matches. When kickoff timestamps are
// reliable the list is non-decreasing by Kickoff; when any record carries the
// sentinel, the emission order of the source payload is trusted as chronological.
type MatchList []Match

// AllDated reports whether every match in the list has a reliable kickoff.
// Extractors only sort a list chronologically when this holds.
func (l MatchList) AllDated() bool {
	for _, m := range l {
		if !m.HasKickoff() {
			return false
		}
	}
	return true
}

// After returns the matches strictly newer than the watermark. Sentinel-dated
// matches are never filtered out, since their position is the only ordering
// information available.
func (l MatchList) After(watermark time.Time) MatchList {
	if watermark.IsZero() {
		return l
	}
	out := make(MatchList, 0, len(l))
	for _, m := range l {
		if !m.HasKickoff() || m.Kickoff.After(watermark) {
			out = append(out, m)
		}
	}
	return out
}
