package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-watchlist/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type pgSnapshotStore struct {
	db  database.PgxIface
	key string
	log *zap.Logger
}

// NewPostgresSnapshotStore creates the snapshots table if needed.
func NewPostgresSnapshotStore(ctx context.Context, db database.PgxIface, key string, log *zap.Logger) (SnapshotStore, error) {
	if _, err := db.Exec(ctx, createSnapshotsTable); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &pgSnapshotStore{
		db:  db,
		key: key,
		log: log.With(zap.String("repository", "snapshot_pg")),
	}, nil
}

func (s *pgSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	query := `SELECT payload FROM snapshots WHERE key = $1`

	var payload string
	err := s.db.QueryRow(ctx, query, s.key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to load snapshot", zap.Error(err), zap.String("key", s.key))
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return []byte(payload), nil
}

func (s *pgSnapshotStore) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO snapshots (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.Exec(ctx, query, s.key, string(data)); err != nil {
		s.log.Error("Failed to save snapshot", zap.Error(err), zap.String("key", s.key))
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}
