// Package source produces the ordered list of candidate data sources for a run.
// Preference order is encoded in the list: the structured API first (when
// credentials are configured), then the scrape endpoints, then a reader-proxy
// rendition of every scrape endpoint as the last resort against bot blocking.
package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SeasonKey returns the "startYear-endYear" season slug for the given moment.
// A season spans July through June: from July onwards the current year starts
// the season, before July it ends it.
func SeasonKey(now time.Time) string {
	start := now.Year()
	if now.Month() < time.July {
		start--
	}
	return fmt.Sprintf("%d-%d", start, start+1)
}

// SeasonStartYear returns the leading year of a season key, which is how the
// structured API identifies a season.
func SeasonStartYear(season string) int {
	head, _, ok := strings.Cut(season, "-")
	if !ok {
		return 0
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return year
}
