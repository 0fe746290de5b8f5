package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type sqliteSnapshotStore struct {
	db  *sql.DB
	key string
	log *zap.Logger
}

// NewSQLiteSnapshotStore creates the snapshots table if needed.
func NewSQLiteSnapshotStore(ctx context.Context, db *sql.DB, key string, log *zap.Logger) (SnapshotStore, error) {
	if _, err := db.ExecContext(ctx, createSnapshotsTable); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &sqliteSnapshotStore{
		db:  db,
		key: key,
		log: log.With(zap.String("repository", "snapshot_sqlite")),
	}, nil
}

func (s *sqliteSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	query := `SELECT payload FROM snapshots WHERE key = ?`

	var payload string
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to load snapshot", zap.Error(err), zap.String("key", s.key))
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return []byte(payload), nil
}

func (s *sqliteSnapshotStore) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO snapshots (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, s.key, string(data)); err != nil {
		s.log.Error("Failed to save snapshot", zap.Error(err), zap.String("key", s.key))
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}
