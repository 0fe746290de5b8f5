package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"movie-watchlist/internal/data/entity"

	"go.uber.org/zap"
)

type MovieRepository interface {
	// Load reads the persisted snapshot once; a missing or malformed
	// snapshot leaves the list empty.
	Load(ctx context.Context) error

	List(ctx context.Context) []entity.Movie
	Get(ctx context.Context, id int64) (*entity.Movie, error)

	// Mutations persist the whole list before they take effect.
	Add(ctx context.Context, movie *entity.Movie) error
	UpdateStatus(ctx context.Context, id int64, status entity.Status) (*entity.Movie, error)
	UpdateRating(ctx context.Context, id int64, rating int) (*entity.Movie, error)
	Remove(ctx context.Context, id int64) error
}

type movieRepository struct {
	mu       sync.RWMutex
	movies   []entity.Movie
	snapshot SnapshotStore
	now      func() time.Time
	log      *zap.Logger
}

func NewMovieRepository(snapshot SnapshotStore, log *zap.Logger) MovieRepository {
	return &movieRepository{
		movies:   []entity.Movie{},
		snapshot: snapshot,
		now:      time.Now,
		log:      log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Load(ctx context.Context) error {
	data, err := r.snapshot.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	movies := []entity.Movie{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &movies); err != nil {
			r.log.Warn("Malformed snapshot, starting with an empty list", zap.Error(err))
			movies = []entity.Movie{}
		}
	}
	if movies == nil {
		// a persisted "null" decodes to nil
		movies = []entity.Movie{}
	}

	r.mu.Lock()
	r.movies = movies
	r.mu.Unlock()

	r.log.Info("Snapshot loaded", zap.Int("count", len(movies)))
	return nil
}

func (r *movieRepository) List(ctx context.Context) []entity.Movie {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.movies)
}

func (r *movieRepository) Get(ctx context.Context, id int64) (*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	movie := r.movies[i]
	return &movie, nil
}

func (r *movieRepository) Add(ctx context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie.ID = r.nextID()

	next := append(slices.Clone(r.movies), *movie)
	if err := r.persist(ctx, next); err != nil {
		r.log.Error("Failed to add movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to add movie: %w", err)
	}

	r.log.Debug("Movie added", zap.Int64("movie_id", movie.ID))
	return nil
}

func (r *movieRepository) UpdateStatus(ctx context.Context, id int64, status entity.Status) (*entity.Movie, error) {
	return r.update(ctx, id, func(m *entity.Movie) { m.Status = status })
}

func (r *movieRepository) UpdateRating(ctx context.Context, id int64, rating int) (*entity.Movie, error) {
	return r.update(ctx, id, func(m *entity.Movie) { m.Rating = rating })
}

func (r *movieRepository) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	next := slices.Delete(slices.Clone(r.movies), i, i+1)
	if err := r.persist(ctx, next); err != nil {
		r.log.Error("Failed to remove movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to remove movie: %w", err)
	}

	r.log.Debug("Movie removed", zap.Int64("movie_id", id))
	return nil
}

func (r *movieRepository) update(ctx context.Context, id int64, apply func(*entity.Movie)) (*entity.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	next := slices.Clone(r.movies)
	apply(&next[i])

	if err := r.persist(ctx, next); err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	movie := next[i]
	return &movie, nil
}

// persist saves next and swaps it in only when the save succeeded, so a
// failed write leaves the previous list untouched. Callers hold mu.
func (r *movieRepository) persist(ctx context.Context, next []entity.Movie) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := r.snapshot.Save(ctx, data); err != nil {
		return err
	}

	r.movies = next
	return nil
}

// nextID uses the creation time in milliseconds, bumped past the largest
// existing id when two movies are created within the same millisecond.
// Callers hold mu.
func (r *movieRepository) nextID() int64 {
	id := r.now().UnixMilli()
	for _, m := range r.movies {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}

func (r *movieRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.movies, func(m entity.Movie) bool { return m.ID == id })
}
