// Package state persists the run checkpoint between invocations.
package state

import (
	"context"

	"streakwatch/internal/domain/entity"
)

// Store loads and saves the single run-state document.
//
// Load returns a zero-valued state (never nil) when no document exists yet,
// so a first run starts from an empty checkpoint without special casing.
type Store interface {
	Load(ctx context.Context) (*entity.RunState, error)
	Save(ctx context.Context, st *entity.RunState) error
}
