package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

const sequenceSchema = `CREATE TABLE IF NOT EXISTS event_sequence (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	next_val INTEGER NOT NULL
)`

// sequencer numbers audit rows. SQLite may hand out a deleted row id again;
// a sequence value is never reused.
type sequencer struct {
	mu sync.Mutex
	db *sql.DB
}

// withNext runs fn in a transaction together with the increment, so a failed
// insert does not burn a sequence value.
func (s *sequencer) withNext(ctx context.Context, fn func(tx *sql.Tx, seq int64) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO event_sequence (id, next_val) VALUES (1, 2)
		 ON CONFLICT (id) DO UPDATE SET next_val = next_val + 1
		 RETURNING next_val - 1`).Scan(&seq)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if err := fn(tx, seq); err != nil {
		return err
	}
	return tx.Commit()
}
