package extract

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"streakwatch/internal/domain/entity"
)

// Free-text scoreline patterns. Both run over the same text, so results are
// deduplicated by (home, away, home goals, away goals) in first-seen order.
var (
	// "Team 2-1 Team"
	scorelineInfix = regexp.MustCompile(`^(.{2,60}?)\s+(\d{1,2})\s*[:–-]\s*(\d{1,2})\s+(.{2,60})$`)

	// "Team - Team 2:1"
	scorelineSuffix = regexp.MustCompile(`^(.{2,60}?)\s[-–]\s(.{2,60}?)\s+(\d{1,2})\s*[:–-]\s*(\d{1,2})(?:\s|$)`)
)

// minTeamNameLen rejects spans too short to plausibly be a team name;
// shorter spans are almost always numbers or abbreviations picked up by accident.
const minTeamNameLen = 3

// standings and round-header lines that look enough like scorelines to
// produce false positives.
var skipLinePrefixes = []string{"tabela", "ostatnia kolejka"}

// TextExtractor scans plain text for scorelines. Reader-proxy renditions are
// already text; HTML payloads (season pages without a parseable results table)
// are flattened first, preferring a readability rendition and falling back to
// the raw document text.
//
// Free-text records never carry a kickoff timestamp: the emission order of the
// payload is the chronological order.
type TextExtractor struct{}

// NewTextExtractor creates a TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract scans the payload for scorelines.
func (e *TextExtractor) Extract(ctx context.Context, payload []byte, src entity.Source) (entity.MatchList, error) {
	for _, text := range flatten(payload, src.URL) {
		if matches := scanScorelines(text); len(matches) > 0 {
			return matches, nil
		}
	}
	return nil, ErrNoMatches
}

// flatten returns the candidate text renditions of the payload, best first.
func flatten(payload []byte, sourceURL string) []string {
	if !looksLikeHTML(payload) {
		return []string{string(payload)}
	}

	var renditions []string

	pageURL, _ := url.Parse(sourceURL)
	if article, err := readability.FromReader(bytes.NewReader(payload), pageURL); err == nil {
		if t := strings.TrimSpace(article.TextContent); t != "" {
			renditions = append(renditions, t)
		}
	}

	// Readability targets prose and may drop result listings, so the raw
	// document text is always kept as the second rendition. Each block-level
	// element becomes its own line; nested blocks produce duplicate lines,
	// which the tuple dedup in scanScorelines absorbs.
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload)); err == nil {
		var sb strings.Builder
		doc.Find("p, div, li, td, th, h1, h2, h3, h4, h5, h6").Each(func(_ int, el *goquery.Selection) {
			if line := strings.Join(strings.Fields(el.Text()), " "); line != "" {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		})
		if sb.Len() == 0 {
			doc.Find("body").Each(func(_ int, body *goquery.Selection) {
				sb.WriteString(body.Text())
			})
		}
		if t := strings.TrimSpace(sb.String()); t != "" {
			renditions = append(renditions, t)
		}
	}

	return renditions
}

func looksLikeHTML(payload []byte) bool {
	head := strings.ToLower(string(payload[:min(len(payload), 512)]))
	return strings.Contains(head, "<html") || strings.Contains(head, "<body") ||
		strings.Contains(head, "<!doctype html")
}

// scanScorelines runs both patterns over every line, deduplicating by the
// full result tuple while preserving first-seen order.
func scanScorelines(text string) entity.MatchList {
	seen := make(map[string]struct{})
	var matches entity.MatchList

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isSkippableLine(line) {
			continue
		}

		m, ok := parseScoreline(line)
		if !ok {
			continue
		}
		if utf8.RuneCountInString(m.Home) < minTeamNameLen ||
			utf8.RuneCountInString(m.Away) < minTeamNameLen {
			continue
		}

		key := m.NotifyKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		matches = append(matches, m)
	}

	return matches
}

func parseScoreline(line string) (entity.Match, bool) {
	if g := scorelineInfix.FindStringSubmatch(line); g != nil {
		hg, _ := strconv.Atoi(g[2])
		ag, _ := strconv.Atoi(g[3])
		return entity.Match{
			Home:      strings.TrimSpace(g[1]),
			Away:      strings.TrimSpace(g[4]),
			HomeGoals: hg,
			AwayGoals: ag,
		}, true
	}
	if g := scorelineSuffix.FindStringSubmatch(line); g != nil {
		hg, _ := strconv.Atoi(g[3])
		ag, _ := strconv.Atoi(g[4])
		return entity.Match{
			Home:      strings.TrimSpace(g[1]),
			Away:      strings.TrimSpace(g[2]),
			HomeGoals: hg,
			AwayGoals: ag,
		}, true
	}
	return entity.Match{}, false
}

func isSkippableLine(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range skipLinePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
