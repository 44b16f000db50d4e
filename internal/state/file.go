package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"streakwatch/internal/domain/entity"
)

// FileStore keeps the run state as a JSON document on local disk. It is the
// default backend and needs no infrastructure beyond a writable directory.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the state document. A missing file yields a zero state.
func (s *FileStore) Load(_ context.Context) (*entity.RunState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &entity.RunState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	var st entity.RunState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("load state: decode %s: %w", s.path, err)
	}
	st.Normalize()
	return &st, nil
}

// Save writes the state document atomically: the JSON is written to a
// temporary file in the same directory and renamed over the target, so a
// crash mid-write never leaves a truncated checkpoint behind.
func (s *FileStore) Save(_ context.Context, st *entity.RunState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("save state: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("save state: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save state: close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save state: rename: %w", err)
	}
	return nil
}
