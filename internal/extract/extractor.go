// Package extract turns raw source payloads into normalized match lists.
// Three interchangeable strategies exist, one per payload kind: a paginated
// structured API, HTML results tables, and free-text scoreline scanning.
// Adding a new source shape means adding one strategy here; the acquisition
// pipeline never changes.
package extract

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"streakwatch/internal/domain/entity"
)

// ErrNoMatches signals that a payload contained nothing usable. It is a
// per-source signal to try the next candidate, not a hard error.
var ErrNoMatches = errors.New("no matches found in payload")

// Extractor turns one raw payload into a normalized, ordered match list.
type Extractor interface {
	// Extract parses the payload fetched from src. A nil error with an empty
	// list never occurs: extractors return ErrNoMatches instead, so the
	// pipeline can distinguish "nothing usable" uniformly.
	Extract(ctx context.Context, payload []byte, src entity.Source) (entity.MatchList, error)
}

// Fetcher is the retrieval capability extractors need for follow-up requests
// (the structured API walks pagination). Satisfied by fetcher.Client.
type Fetcher interface {
	FetchWithHeaders(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// NewSet builds the strategy table keyed by payload kind.
// The structured API strategy receives the fetcher so it can follow pagination.
func NewSet(f Fetcher, watermark time.Time) map[entity.PayloadKind]Extractor {
	return map[entity.PayloadKind]Extractor{
		entity.PayloadStructuredAPI: NewAPIExtractor(f, watermark),
		entity.PayloadMarkupTable:   NewTableExtractor(),
		entity.PayloadFreeText:      NewTextExtractor(),
	}
}

// scorePattern accepts "digits SEP digits" where SEP is a colon, hyphen or
// en-dash, tolerating the encoding variants scrape targets emit.
var scorePattern = regexp.MustCompile(`^\d+\s*[:–-]\s*\d+$`)

var scoreSep = regexp.MustCompile(`[:–-]`)

// kickoff layouts observed across scrape targets, longest first.
var kickoffLayouts = []string{
	"02/01/2006 15:04",
	"02/01/06 15:04",
	"02/01/2006",
	"02/01/06",
}

// parseKickoff tries the known date/time layouts and returns the zero time
// sentinel when none apply.
func parseKickoff(dateStr, timeStr string) time.Time {
	candidates := []string{strings.TrimSpace(dateStr + " " + timeStr), strings.TrimSpace(dateStr)}
	for _, s := range candidates {
		for _, layout := range kickoffLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
