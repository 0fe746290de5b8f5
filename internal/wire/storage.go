package wire

import (
	"context"
	"fmt"

	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/gateway/cover"
	"movie-watchlist/pkg/database"
	"movie-watchlist/pkg/utils"

	"go.uber.org/zap"
)

// OpenSnapshotStore connects the configured storage driver. The returned
// func releases its connections.
func OpenSnapshotStore(ctx context.Context, config *utils.Config, log *zap.Logger) (repository.SnapshotStore, func(), error) {
	storage := config.Storage

	switch storage.Driver {
	case "", utils.DriverFile:
		store, err := repository.NewFileSnapshotStore(storage.Path, storage.SnapshotKey, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case utils.DriverSQLite:
		db, err := database.InitSQLite(storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := repository.NewSQLiteSnapshotStore(ctx, db, storage.SnapshotKey, log)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil

	case utils.DriverPostgres:
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, nil, err
		}
		store, err := repository.NewPostgresSnapshotStore(ctx, db, storage.SnapshotKey, log)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("invalid storage driver: %q", storage.Driver)
	}
}

// NewCoverResolver builds the Google Books resolver from config.
func NewCoverResolver(config *utils.Config, log *zap.Logger) cover.Resolver {
	return cover.NewGoogleBooks(cover.Config{
		BaseURL:       config.Cover.APIURL,
		Fallback:      config.Cover.Fallback,
		Timeout:       config.Cover.Timeout,
		RatePerSecond: config.Cover.RatePerSecond,
		Burst:         config.Cover.Burst,
	}, log)
}
