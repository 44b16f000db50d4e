// Package notify renders streak alerts and dispatches them to the configured
// channel.
package notify

import (
	"fmt"
	"html"
	"strings"

	"streakwatch/internal/domain/entity"
)

// Event carries everything a channel needs to announce a streak.
type Event struct {
	League    string
	Streak    int
	Threshold int
	Mode      string
	Last      entity.Match
	SourceTag string
}

// FormatHTML renders the Telegram-style HTML alert body. Team names are
// escaped so opponents like "AC <Sparta>" cannot break the markup.
func FormatHTML(ev Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔥 <b>%s</b>: seria <b>%d</b> meczów z rzędu bez remisu!\n",
		html.EscapeString(ev.League), ev.Streak)

	fmt.Fprintf(&b, "Ostatni: <b>%s</b> %d–%d <b>%s</b>",
		html.EscapeString(ev.Last.Home),
		ev.Last.HomeGoals, ev.Last.AwayGoals,
		html.EscapeString(ev.Last.Away))
	if ev.Last.HasKickoff() {
		fmt.Fprintf(&b, " (%s)", ev.Last.Kickoff.Format("02.01.2006 15:04"))
	}
	b.WriteString(".\n")

	fmt.Fprintf(&b, "Próg: ≥ %d. Tryb: %s.\n", ev.Threshold, ev.Mode)
	fmt.Fprintf(&b, "Źródło: %s", html.EscapeString(ev.SourceTag))

	return b.String()
}
