package state_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"streakwatch/internal/domain/entity"
	"streakwatch/internal/state"
)

func TestFileStore_LoadMissingYieldsZeroState(t *testing.T) {
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if diff := cmp.Diff(&entity.RunState{}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := state.NewFileStore(path)

	want := &entity.RunState{
		LastCheckedAt:   time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC),
		LastStreakLen:   8,
		LastNotifiedKey: "2026-03-14T20:30:00Z",
		LastSeenKey:     "2026-03-14T20:30:00Z",
		LastFullRunAt:   time.Date(2026, 3, 14, 21, 0, 5, 0, time.UTC),
		LeagueID:        106,
	}

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := state.NewFileStore(filepath.Join(dir, "state.json"))

	if err := store.Save(context.Background(), &entity.RunState{LastStreakLen: 3}); err != nil {
		t.Fatalf("Save err=%v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}

func TestFileStore_LoadRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := state.NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}
