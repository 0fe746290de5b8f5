package repository

import (
	"errors"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("movie not found")

type Repository struct {
	Snapshot SnapshotStore
	Movie    MovieRepository
}

func NewRepository(snapshot SnapshotStore, log *zap.Logger) *Repository {
	return &Repository{
		Snapshot: snapshot,
		Movie:    NewMovieRepository(snapshot, log),
	}
}
