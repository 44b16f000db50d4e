package source

import (
	"fmt"
	"strings"

	"streakwatch/internal/domain/entity"
)

// readerProxyPrefix is the text-rendering proxy that fetches the same logical
// page and returns it as plain text, defeating markup-level bot blocking.
const readerProxyPrefix = "https://r.jina.ai/http://"

// Row is one declarative entry of the scrape-source table. Locator templates
// may reference {season} (season key, e.g. "2025-2026") and {liga90}
// (the 90minut season page id, which changes every season).
type Row struct {
	Tag  string             `yaml:"tag"`
	URL  string             `yaml:"url"`
	Kind entity.PayloadKind `yaml:"kind"`
}

// defaultTable lists the known scrape endpoints in preference order.
// The 90minut season page has no stable results table, so it goes through
// the free-text strategy; worldfootball and weltfussball serve standard
// results tables.
var defaultTable = []Row{
	{Tag: "90minut", URL: "http://www.90minut.pl/liga/1/liga{liga90}.html", Kind: entity.PayloadFreeText},
	{Tag: "worldfootball-all", URL: "https://www.worldfootball.net/all_matches/pol-ekstraklasa-{season}/", Kind: entity.PayloadMarkupTable},
	{Tag: "worldfootball-schedule", URL: "https://www.worldfootball.net/schedule/pol-ekstraklasa-{season}/", Kind: entity.PayloadMarkupTable},
	{Tag: "weltfussball-alle", URL: "https://www.weltfussball.de/alle_spiele/pol-ekstraklasa-{season}/", Kind: entity.PayloadMarkupTable},
	{Tag: "weltfussball-spielplan", URL: "https://www.weltfussball.de/spielplan/pol-ekstraklasa-{season}/", Kind: entity.PayloadMarkupTable},
}

// Config holds the static inputs of source resolution.
type Config struct {
	// APIBaseURL and APIToken configure the structured API head of the list.
	// An empty token simply skips it; that is not an error condition.
	APIBaseURL string
	APIToken   string

	// Liga90ID is the season-specific 90minut page id.
	Liga90ID string

	// Overrides replace same-tagged default rows or append new ones,
	// typically loaded from a YAML file.
	Overrides []Row
}

// Resolver builds candidate source lists.
type Resolver struct {
	cfg   Config
	table []Row
}

// NewResolver creates a Resolver with the default scrape table plus overrides.
func NewResolver(cfg Config) *Resolver {
	table := make([]Row, len(defaultTable))
	copy(table, defaultTable)

	for _, o := range cfg.Overrides {
		replaced := false
		for i, row := range table {
			if row.Tag == o.Tag {
				table[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			table = append(table, o)
		}
	}

	return &Resolver{cfg: cfg, table: table}
}

// Candidates returns the ordered candidate sources for the season.
//
// leagueID is the cached numeric league id of the structured API; the API
// candidate is emitted only when both credentials and the id are available
// (the id is resolved and cached by the acquisition pipeline on first use).
func (r *Resolver) Candidates(season string, leagueID int) []entity.Source {
	var out []entity.Source

	if r.cfg.APIToken != "" && leagueID > 0 {
		out = append(out, entity.Source{
			Tag: "structured-api",
			URL: fmt.Sprintf("%s/fixtures?league=%d&season=%d&status=FT",
				r.cfg.APIBaseURL, leagueID, SeasonStartYear(season)),
			Kind:    entity.PayloadStructuredAPI,
			Headers: r.APIHeaders(),
		})
	}

	scrapes := make([]entity.Source, 0, len(r.table))
	for _, row := range r.table {
		scrapes = append(scrapes, entity.Source{
			Tag:  row.Tag,
			URL:  r.expand(row.URL, season),
			Kind: row.Kind,
		})
	}
	out = append(out, scrapes...)

	// One transformation rule derives the reader rendition of every scrape
	// locator; readers are always free-text regardless of the original kind.
	for _, s := range scrapes {
		out = append(out, entity.Source{
			Tag:  s.Tag + "-reader",
			URL:  ReaderLocator(s.URL),
			Kind: entity.PayloadFreeText,
		})
	}

	return out
}

// APIHeaders returns the credential headers of the structured API.
func (r *Resolver) APIHeaders() map[string]string {
	if r.cfg.APIToken == "" {
		return nil
	}
	return map[string]string{"x-apisports-key": r.cfg.APIToken}
}

// APIConfigured reports whether the structured API head of the list is usable.
func (r *Resolver) APIConfigured() bool {
	return r.cfg.APIToken != "" && r.cfg.APIBaseURL != ""
}

// APIBaseURL returns the structured API base locator.
func (r *Resolver) APIBaseURL() string {
	return r.cfg.APIBaseURL
}

// ReaderLocator derives the reader-proxy locator from a scrape locator.
func ReaderLocator(rawURL string) string {
	stripped := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	return readerProxyPrefix + stripped
}

func (r *Resolver) expand(template, season string) string {
	expanded := strings.ReplaceAll(template, "{season}", season)
	return strings.ReplaceAll(expanded, "{liga90}", r.cfg.Liga90ID)
}
