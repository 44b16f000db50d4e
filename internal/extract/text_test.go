package extract

import (
	"context"
	"errors"
	"testing"

	"streakwatch/internal/domain/entity"
)

func textSource() entity.Source {
	return entity.Source{Tag: "90minut-reader", URL: "https://r.jina.ai/http://www.90minut.pl/liga/1/liga14072.html", Kind: entity.PayloadFreeText}
}

func TestTextExtractor_SuffixScoreline(t *testing.T) {
	matches, err := NewTextExtractor().Extract(context.Background(), []byte("Legia - Lech 2:1"), textSource())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Extract() returned %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Home != "Legia" || m.Away != "Lech" || m.HomeGoals != 2 || m.AwayGoals != 1 {
		t.Errorf("Extract() = %+v, want Legia 2-1 Lech", m)
	}
	if m.HasKickoff() {
		t.Error("free-text records must carry the sentinel kickoff")
	}
}

func TestTextExtractor_InfixScoreline(t *testing.T) {
	matches, err := NewTextExtractor().Extract(context.Background(), []byte("Pogoń Szczecin 3-1 Widzew Łódź"), textSource())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Extract() returned %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Home != "Pogoń Szczecin" || m.Away != "Widzew Łódź" || m.HomeGoals != 3 || m.AwayGoals != 1 {
		t.Errorf("Extract() = %+v", m)
	}
}

func TestTextExtractor_RejectsShortNames(t *testing.T) {
	_, err := NewTextExtractor().Extract(context.Background(), []byte("ab 1:0 cd"), textSource())
	if !errors.Is(err, ErrNoMatches) {
		t.Errorf("expected ErrNoMatches for sub-3-character names, got %v", err)
	}
}

func TestTextExtractor_DeduplicatesAcrossPatterns(t *testing.T) {
	// Both patterns can fire over overlapping text; the result tuple is the
	// dedup key and first-seen order is preserved.
	text := "Legia - Lech 2:1\nLegia - Lech 2:1\nRaków 1-0 Cracovia\n"
	matches, err := NewTextExtractor().Extract(context.Background(), []byte(text), textSource())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Extract() returned %d matches, want 2", len(matches))
	}
	if matches[0].Home != "Legia" || matches[1].Home != "Raków" {
		t.Errorf("first-seen order not preserved: %v", matches)
	}
}

func TestTextExtractor_SkipsStandingsLines(t *testing.T) {
	text := "Tabela 1. Legia 10 22:8\nOstatnia kolejka 5\nLegia - Lech 2:1\n"
	matches, err := NewTextExtractor().Extract(context.Background(), []byte(text), textSource())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Extract() returned %d matches, want 1", len(matches))
	}
}

func TestTextExtractor_EnDashSeparators(t *testing.T) {
	matches, err := NewTextExtractor().Extract(context.Background(), []byte("Legia – Lech 2–1"), textSource())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(matches) != 1 || matches[0].HomeGoals != 2 || matches[0].AwayGoals != 1 {
		t.Errorf("Extract() = %v", matches)
	}
}

func TestTextExtractor_FlattensHTML(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>Liga</title></head><body>
<div>Kolejka 5</div>
<div>Legia - Lech 2:1</div>
<div>Raków 1-0 Cracovia</div>
</body></html>`
	matches, err := NewTextExtractor().Extract(context.Background(), []byte(page), entity.Source{
		Tag: "90minut", URL: "http://www.90minut.pl/liga/1/liga14072.html", Kind: entity.PayloadFreeText,
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Extract() returned %d matches, want 2: %v", len(matches), matches)
	}
}

func TestTextExtractor_EmptyPayload(t *testing.T) {
	_, err := NewTextExtractor().Extract(context.Background(), []byte("nothing to see here"), textSource())
	if !errors.Is(err, ErrNoMatches) {
		t.Errorf("expected ErrNoMatches, got %v", err)
	}
}
