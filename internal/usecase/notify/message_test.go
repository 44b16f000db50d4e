package notify

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"streakwatch/internal/domain/entity"
)

func event() Event {
	return Event{
		League:    "Ekstraklasa",
		Streak:    8,
		Threshold: 7,
		Mode:      "each",
		Last: entity.Match{
			Home:      "Legia Warszawa",
			Away:      "Lech Poznań",
			HomeGoals: 2,
			AwayGoals: 1,
			Kickoff:   time.Date(2026, time.March, 14, 20, 30, 0, 0, time.UTC),
		},
		SourceTag: "90minut",
	}
}

func TestFormatHTML(t *testing.T) {
	text := FormatHTML(event())

	for _, want := range []string{
		"<b>Ekstraklasa</b>",
		"seria <b>8</b> meczów",
		"<b>Legia Warszawa</b> 2–1 <b>Lech Poznań</b>",
		"(14.03.2026 20:30)",
		"Próg: ≥ 7",
		"Tryb: each",
		"Źródło: 90minut",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message missing %q:\n%s", want, text)
		}
	}
}

func TestFormatHTMLOmitsUnknownKickoff(t *testing.T) {
	ev := event()
	ev.Last.Kickoff = time.Time{}

	text := FormatHTML(ev)
	if strings.Contains(text, "(") {
		t.Errorf("message should omit kickoff parenthetical:\n%s", text)
	}
}

func TestFormatHTMLEscapesTeamNames(t *testing.T) {
	ev := event()
	ev.Last.Home = "AC <Sparta> & Co"

	text := FormatHTML(ev)
	if strings.Contains(text, "<Sparta>") {
		t.Errorf("team name not escaped:\n%s", text)
	}
	if !strings.Contains(text, "AC &lt;Sparta&gt; &amp; Co") {
		t.Errorf("expected escaped team name:\n%s", text)
	}
}

type fakeChannel struct {
	texts []string
	err   error
}

func (f *fakeChannel) Notify(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

func TestServiceAnnounce(t *testing.T) {
	ch := &fakeChannel{}
	svc := NewService(ch, slog.Default())

	if err := svc.Announce(context.Background(), event()); err != nil {
		t.Fatalf("Announce err=%v", err)
	}
	if len(ch.texts) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(ch.texts))
	}
}

func TestServiceAnnouncePropagatesChannelError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("boom")}
	svc := NewService(ch, slog.Default())

	if err := svc.Announce(context.Background(), event()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
