package entity

import (
	"errors"
	"testing"
	"time"
)

func TestMatch_IsDraw(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  bool
	}{
		{"home win", Match{Home: "Legia", Away: "Lech", HomeGoals: 2, AwayGoals: 1}, false},
		{"away win", Match{Home: "Legia", Away: "Lech", HomeGoals: 0, AwayGoals: 3}, false},
		{"draw", Match{Home: "Legia", Away: "Lech", HomeGoals: 1, AwayGoals: 1}, true},
		{"goalless draw", Match{Home: "Legia", Away: "Lech"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.match.IsDraw(); got != tt.want {
				t.Errorf("IsDraw() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatch_NotifyKey(t *testing.T) {
	kickoff := time.Date(2025, 8, 10, 17, 30, 0, 0, time.UTC)

	dated := Match{Home: "Legia", Away: "Lech", HomeGoals: 2, AwayGoals: 1, Kickoff: kickoff}
	if got, want := dated.NotifyKey(), "2025-08-10T17:30:00Z"; got != want {
		t.Errorf("NotifyKey() = %q, want %q", got, want)
	}

	undated := Match{Home: "Legia", Away: "Lech", HomeGoals: 2, AwayGoals: 1}
	if got, want := undated.NotifyKey(), "Legia|Lech|2-1"; got != want {
		t.Errorf("NotifyKey() = %q, want %q", got, want)
	}

	// Two distinct undated results must not collide.
	other := Match{Home: "Legia", Away: "Lech", HomeGoals: 3, AwayGoals: 1}
	if undated.NotifyKey() == other.NotifyKey() {
		t.Error("NotifyKey() collides for different undated results")
	}
}

func TestMatch_Validate(t *testing.T) {
	valid := Match{Home: "Legia", Away: "Lech", HomeGoals: 2, AwayGoals: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	for name, m := range map[string]Match{
		"empty home":     {Away: "Lech"},
		"empty away":     {Home: "Legia"},
		"negative goals": {Home: "Legia", Away: "Lech", HomeGoals: -1},
	} {
		t.Run(name, func(t *testing.T) {
			err := m.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("Validate() = %v, want ErrValidationFailed match", err)
			}
		})
	}
}

func TestMatchList_After(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2025, 8, day, 18, 0, 0, 0, time.UTC) }
	list := MatchList{
		{Home: "A", Away: "B", HomeGoals: 2, AwayGoals: 1, Kickoff: d(1)},
		{Home: "C", Away: "D", HomeGoals: 0, AwayGoals: 0, Kickoff: d(8)},
		{Home: "E", Away: "F", HomeGoals: 3, AwayGoals: 1, Kickoff: d(15)},
		{Home: "G", Away: "H", HomeGoals: 1, AwayGoals: 0}, // sentinel date
	}

	got := list.After(d(8))
	if len(got) != 2 {
		t.Fatalf("After() returned %d matches, want 2", len(got))
	}
	if got[0].Home != "E" || got[1].Home != "G" {
		t.Errorf("After() = %v, want [E..., G...]", got)
	}

	// Zero watermark is a no-op.
	if got := list.After(time.Time{}); len(got) != len(list) {
		t.Errorf("After(zero) returned %d matches, want %d", len(got), len(list))
	}
}

func TestMatchList_AllDated(t *testing.T) {
	kickoff := time.Date(2025, 8, 10, 17, 30, 0, 0, time.UTC)
	dated := MatchList{{Home: "A", Away: "B", Kickoff: kickoff}}
	if !dated.AllDated() {
		t.Error("AllDated() = false for fully dated list")
	}
	mixed := append(dated, Match{Home: "C", Away: "D"})
	if mixed.AllDated() {
		t.Error("AllDated() = true for list with sentinel date")
	}
}

func TestRunState_Normalize(t *testing.T) {
	s := RunState{LastStreakLen: -3, LeagueID: -1}
	s.Normalize()
	if s.LastStreakLen != 0 || s.LeagueID != 0 {
		t.Errorf("Normalize() left invalid values: %+v", s)
	}
}

func TestRunState_Reset(t *testing.T) {
	now := time.Now()
	s := RunState{
		LastCheckedAt: now,
		LastStreakLen: 9,
		LastSeenKey:   "x",
		LastFullRunAt: now,
		LeagueID:      106,
	}
	s.Reset()
	if !s.LastCheckedAt.IsZero() || s.LastStreakLen != 0 || s.LastSeenKey != "" {
		t.Errorf("Reset() did not clear rebuild fields: %+v", s)
	}
	if s.LeagueID != 106 || s.LastFullRunAt.IsZero() {
		t.Errorf("Reset() cleared fields it must keep: %+v", s)
	}
}
