// Package sqlite keeps slots as rows of a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/tpv/internal/persistence"
)

type Slot struct {
	db *sql.DB
}

// New creates the slots table if it does not exist yet.
func New(ctx context.Context, db *sql.DB) (*Slot, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, fmt.Errorf("creating slots table: %w", err)
	}

	return &Slot{db: db}, nil
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte

	err := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrSlotEmpty
	}

	if err != nil {
		return nil, fmt.Errorf("selecting slot: %w", err)
	}

	return payload, nil
}

func (s *Slot) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO slots(key, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`, key, data)
	if err != nil {
		return fmt.Errorf("upserting slot: %w", err)
	}

	return nil
}

func (s *Slot) Close() error {
	return s.db.Close()
}
