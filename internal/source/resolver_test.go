package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"streakwatch/internal/domain/entity"
)

func TestSeasonKey(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2025, time.August, 26, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), "2026-2027"},
	}
	for _, tt := range tests {
		if got := SeasonKey(tt.now); got != tt.want {
			t.Errorf("SeasonKey(%v) = %q, want %q", tt.now, got, tt.want)
		}
	}
}

func TestSeasonStartYear(t *testing.T) {
	if got := SeasonStartYear("2025-2026"); got != 2025 {
		t.Errorf("SeasonStartYear() = %d, want 2025", got)
	}
	if got := SeasonStartYear("garbage"); got != 0 {
		t.Errorf("SeasonStartYear() = %d, want 0 for malformed key", got)
	}
}

func TestCandidates_OrderAndReaderDerivation(t *testing.T) {
	r := NewResolver(Config{Liga90ID: "14072"})
	candidates := r.Candidates("2025-2026", 0)

	// 5 scrape endpoints plus their 5 reader renditions, no API head.
	if len(candidates) != 10 {
		t.Fatalf("got %d candidates, want 10", len(candidates))
	}
	if candidates[0].Tag != "90minut" {
		t.Errorf("first candidate = %q, want 90minut", candidates[0].Tag)
	}
	if candidates[0].URL != "http://www.90minut.pl/liga/1/liga14072.html" {
		t.Errorf("90minut URL = %q", candidates[0].URL)
	}

	// All scrape endpoints come before any reader rendition.
	firstReader := -1
	for i, c := range candidates {
		if strings.HasSuffix(c.Tag, "-reader") {
			firstReader = i
			break
		}
	}
	if firstReader != 5 {
		t.Errorf("first reader at index %d, want 5", firstReader)
	}
	for _, c := range candidates[firstReader:] {
		if !strings.HasSuffix(c.Tag, "-reader") || c.Kind != entity.PayloadFreeText {
			t.Errorf("reader candidate malformed: %+v", c)
		}
		if !strings.HasPrefix(c.URL, "https://r.jina.ai/http://") {
			t.Errorf("reader locator not derived by the proxy rule: %s", c.URL)
		}
	}
}

func TestCandidates_APIHeadWhenConfigured(t *testing.T) {
	r := NewResolver(Config{
		APIBaseURL: "https://api.example.test",
		APIToken:   "secret",
		Liga90ID:   "14072",
	})

	candidates := r.Candidates("2025-2026", 106)
	if candidates[0].Kind != entity.PayloadStructuredAPI {
		t.Fatalf("first candidate = %+v, want structured API head", candidates[0])
	}
	if want := "https://api.example.test/fixtures?league=106&season=2025&status=FT"; candidates[0].URL != want {
		t.Errorf("API URL = %q, want %q", candidates[0].URL, want)
	}
	if candidates[0].Headers["x-apisports-key"] != "secret" {
		t.Error("API candidate missing credential header")
	}

	// Without a resolved league id the API head is skipped, not an error.
	if got := r.Candidates("2025-2026", 0); got[0].Kind == entity.PayloadStructuredAPI {
		t.Error("API head must be skipped until the league id is resolved")
	}
}

func TestReaderLocator(t *testing.T) {
	tests := []struct{ in, want string }{
		{"http://www.90minut.pl/liga/1/liga14072.html", "https://r.jina.ai/http://www.90minut.pl/liga/1/liga14072.html"},
		{"https://www.worldfootball.net/all_matches/pol-ekstraklasa-2025-2026/", "https://r.jina.ai/http://www.worldfootball.net/all_matches/pol-ekstraklasa-2025-2026/"},
	}
	for _, tt := range tests {
		if got := ReaderLocator(tt.in); got != tt.want {
			t.Errorf("ReaderLocator(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewResolver_Overrides(t *testing.T) {
	override := Row{Tag: "90minut", URL: "http://www.90minut.pl/liga/1/liga14211.html", Kind: entity.PayloadFreeText}
	extra := Row{Tag: "flashscore", URL: "https://example.test/ekstraklasa-{season}/", Kind: entity.PayloadMarkupTable}

	r := NewResolver(Config{Overrides: []Row{override, extra}})
	candidates := r.Candidates("2025-2026", 0)

	if candidates[0].URL != override.URL {
		t.Errorf("override did not replace default row: %s", candidates[0].URL)
	}
	if candidates[5].Tag != "flashscore" || candidates[5].URL != "https://example.test/ekstraklasa-2025-2026/" {
		t.Errorf("appended override missing or unexpanded: %+v", candidates[5])
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - tag: 90minut
    url: http://www.90minut.pl/liga/1/liga14211.html
    kind: free-text
  - tag: flashscore
    url: https://example.test/ekstraklasa-{season}/
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rows, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("LoadOverrides() returned %d rows, want 2", len(rows))
	}
	if rows[0].Kind != entity.PayloadFreeText {
		t.Errorf("rows[0].Kind = %q", rows[0].Kind)
	}
	if rows[1].Kind != entity.PayloadMarkupTable {
		t.Errorf("kind should default to markup-table, got %q", rows[1].Kind)
	}
}

func TestLoadOverrides_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  - tag: x\n    url: https://x/\n    kind: csv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOverrides(path); err == nil {
		t.Error("expected error for unsupported kind")
	}

	if rows, err := LoadOverrides(""); err != nil || rows != nil {
		t.Errorf("LoadOverrides(\"\") = %v, %v; want nil, nil", rows, err)
	}
}
