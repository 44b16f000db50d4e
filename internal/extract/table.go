package extract

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"streakwatch/internal/domain/entity"
)

// resultsTableSelector marks the results tables on worldfootball/weltfussball
// season pages.
const resultsTableSelector = "table.standard_tabelle"

// TableExtractor parses HTML results tables. A usable row has at least five
// cells (date, time, home, score, away) and a score cell matching the
// digits-separator-digits pattern; everything else is skipped.
type TableExtractor struct{}

// NewTableExtractor creates a TableExtractor.
func NewTableExtractor() *TableExtractor {
	return &TableExtractor{}
}

// Extract scans all results tables in the document.
//
// The list is sorted chronologically only when every accepted row parsed a
// real kickoff date; as soon as one row carries the sentinel, the page's
// emission order is trusted instead, so sentinel rows are never shuffled to
// an arbitrary position.
func (e *TableExtractor) Extract(ctx context.Context, payload []byte, src entity.Source) (entity.MatchList, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var matches entity.MatchList
	doc.Find(resultsTableSelector).Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 5 {
				return
			}

			dateStr := cellText(cells, 0)
			timeStr := cellText(cells, 1)
			home := cellText(cells, 2)
			score := cellText(cells, 3)
			away := cellText(cells, 4)

			if !scorePattern.MatchString(score) {
				return
			}
			homeGoals, awayGoals, ok := splitScore(score)
			if !ok {
				return
			}

			m := entity.Match{
				Home:      home,
				Away:      away,
				HomeGoals: homeGoals,
				AwayGoals: awayGoals,
				Kickoff:   parseKickoff(dateStr, timeStr),
			}
			if m.Validate() != nil {
				return
			}
			matches = append(matches, m)
		})
	})

	if len(matches) == 0 {
		return nil, ErrNoMatches
	}

	if matches.AllDated() {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Kickoff.Before(matches[j].Kickoff)
		})
	}

	return matches, nil
}

func cellText(cells *goquery.Selection, i int) string {
	return strings.Join(strings.Fields(cells.Eq(i).Text()), " ")
}

// splitScore parses "2:1", "2-1" or "2–1" into two goal counts.
func splitScore(score string) (int, int, bool) {
	parts := scoreSep.Split(score, 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hg, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	ag, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return hg, ag, true
}
