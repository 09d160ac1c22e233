// Package history persists completed verifications to sqlite so the
// dashboard can show recent activity. The store is best-effort: callers
// log insert failures and move on, a verification never fails because
// history is down.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type Record struct {
	ID         string    `json:"id"`
	Claim      string    `json:"claim"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Date       time.Time `json:"date"`
}

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS verifications (
	id TEXT PRIMARY KEY,
	claim TEXT NOT NULL,
	label TEXT NOT NULL,
	confidence REAL,
	date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Open opens (creating if needed) the sqlite database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db '%s': %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Insert(ctx context.Context, claim, label string, confidence float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verifications (id, claim, label, confidence, date) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), claim, label, confidence, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert verification record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, claim, label, confidence, date FROM verifications ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query verification history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Claim, &r.Label, &r.Confidence, &r.Date); err != nil {
			return nil, fmt.Errorf("failed to scan verification record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
