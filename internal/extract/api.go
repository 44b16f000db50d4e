package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"streakwatch/internal/domain/entity"
)

// maxAPIPages bounds pagination walks in case a provider reports a bogus
// page count.
const maxAPIPages = 50

// apiFixturesPage mirrors the fixtures endpoint of the structured API:
// a paginated result set keyed by league, season and completion status.
type apiFixturesPage struct {
	Paging struct {
		Current int `json:"current"`
		Total   int `json:"total"`
	} `json:"paging"`
	Response []apiFixture `json:"response"`
}

type apiFixture struct {
	Fixture struct {
		Date time.Time `json:"date"`
	} `json:"fixture"`
	Teams struct {
		Home struct {
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		// Nullable: fixtures that have not been played yet carry nulls
		// and are skipped.
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type apiLeaguesPage struct {
	Response []struct {
		League struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"league"`
	} `json:"response"`
}

// APIExtractor maps the structured API's paginated fixtures JSON to matches.
// It follows pagination through the fetcher until the declared page count is
// exhausted; pages are disjoint, so deduplication is implicit.
type APIExtractor struct {
	fetcher   Fetcher
	watermark time.Time
}

// NewAPIExtractor creates an APIExtractor. A non-zero watermark makes the
// extractor drop records at or before it, since the provider is free to
// ignore the date-range narrowing in the query itself.
func NewAPIExtractor(f Fetcher, watermark time.Time) *APIExtractor {
	return &APIExtractor{fetcher: f, watermark: watermark}
}

// Extract parses the already-fetched first page and walks the remaining ones.
func (e *APIExtractor) Extract(ctx context.Context, payload []byte, src entity.Source) (entity.MatchList, error) {
	var matches entity.MatchList

	page := 1
	for {
		var parsed apiFixturesPage
		if err := json.Unmarshal(payload, &parsed); err != nil {
			return nil, fmt.Errorf("decode fixtures page %d: %w", page, err)
		}

		matches = append(matches, e.pageMatches(parsed)...)

		if page >= parsed.Paging.Total || page >= maxAPIPages {
			break
		}
		page++

		nextURL, err := withPageParam(src.URL, page)
		if err != nil {
			return nil, err
		}
		payload, err = e.fetcher.FetchWithHeaders(ctx, nextURL, src.Headers)
		if err != nil {
			return nil, fmt.Errorf("fetch fixtures page %d: %w", page, err)
		}
	}

	if len(matches) == 0 {
		return nil, ErrNoMatches
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Kickoff.Before(matches[j].Kickoff)
	})

	return matches, nil
}

func (e *APIExtractor) pageMatches(page apiFixturesPage) entity.MatchList {
	var out entity.MatchList
	for _, f := range page.Response {
		if f.Goals.Home == nil || f.Goals.Away == nil {
			continue // not played yet
		}
		m := entity.Match{
			Home:      f.Teams.Home.Name,
			Away:      f.Teams.Away.Name,
			HomeGoals: *f.Goals.Home,
			AwayGoals: *f.Goals.Away,
			Kickoff:   f.Fixture.Date.UTC(),
		}
		if m.Validate() != nil {
			continue
		}
		if !e.watermark.IsZero() && !m.Kickoff.After(e.watermark) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func withPageParam(rawURL string, page int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse fixtures URL: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ResolveLeagueID looks up the numeric league id by name through the
// structured API's league search. The id is stable for a deployment, so
// callers cache it in the run state instead of resolving every run.
func ResolveLeagueID(ctx context.Context, f Fetcher, baseURL, leagueName string, headers map[string]string) (int, error) {
	searchURL := fmt.Sprintf("%s/leagues?search=%s", baseURL, url.QueryEscape(leagueName))

	payload, err := f.FetchWithHeaders(ctx, searchURL, headers)
	if err != nil {
		return 0, fmt.Errorf("league search: %w", err)
	}

	var parsed apiLeaguesPage
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return 0, fmt.Errorf("decode league search: %w", err)
	}
	if len(parsed.Response) == 0 {
		return 0, fmt.Errorf("league %q not found", leagueName)
	}

	return parsed.Response[0].League.ID, nil
}
