package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"streakwatch/internal/domain/entity"
)

// PostgresStore persists the run state as a single jsonb row. It is the
// backend for deployments where local disk does not survive between runs.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a pgx-backed pool for dsn and verifies connectivity.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the checkpoint table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS run_state (
    id         smallint PRIMARY KEY DEFAULT 1,
    doc        jsonb NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT now(),
    CONSTRAINT run_state_singleton CHECK (id = 1)
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Load reads the singleton row. A missing row yields a zero state.
func (s *PostgresStore) Load(ctx context.Context) (*entity.RunState, error) {
	const query = `
SELECT doc
FROM run_state
WHERE id = 1
LIMIT 1`
	var doc []byte
	err := s.db.QueryRowContext(ctx, query).Scan(&doc)
	if err == sql.ErrNoRows {
		return &entity.RunState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	var st entity.RunState
	if err := json.Unmarshal(doc, &st); err != nil {
		return nil, fmt.Errorf("Load: decode doc: %w", err)
	}
	st.Normalize()
	return &st, nil
}

// Save upserts the singleton row.
func (s *PostgresStore) Save(ctx context.Context, st *entity.RunState) error {
	doc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("Save: encode: %w", err)
	}

	const query = `
INSERT INTO run_state (id, doc, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}
