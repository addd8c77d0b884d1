package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dayboard/internal/snapshot"
)

// ErrSnapshotNotFound is returned by Load when no snapshot has been
// written for a kind yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// FallbackStore is the local snapshot store, one row per widget kind in
// the primary SQLite database. It is the minimum persistence guarantee:
// every sync writes here first, and the app reads its own snapshot
// copies back through Load. Sharing the database file means the API
// server and the sync worker write through the same store, SQLite
// arbitrating between the two processes.
type FallbackStore struct {
	db *sql.DB
}

// NewFallbackStore wraps the widget_snapshots table of db. The table is
// created by the storage migrations.
func NewFallbackStore(db *sql.DB) *FallbackStore {
	return &FallbackStore{db: db}
}

// Store implements Sink. Last write wins per kind.
func (s *FallbackStore) Store(ctx context.Context, kind snapshot.Kind, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO widget_snapshots (kind, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		kind.String(), payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store snapshot %s: %w", kind, err)
	}
	return nil
}

// Load returns the latest stored payload for a kind.
func (s *FallbackStore) Load(ctx context.Context, kind snapshot.Kind) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM widget_snapshots WHERE kind = ?`,
		kind.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", kind, err)
	}
	return payload, nil
}

func (s *FallbackStore) Name() string {
	return "fallback"
}
