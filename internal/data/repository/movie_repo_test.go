package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"movie-watchlist/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySnapshot struct {
	data    []byte
	saves   int
	failErr error
}

func (m *memorySnapshot) Load(ctx context.Context) ([]byte, error) {
	return m.data, nil
}

func (m *memorySnapshot) Save(ctx context.Context, data []byte) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memorySnapshot) decode(t *testing.T) []entity.Movie {
	t.Helper()
	var movies []entity.Movie
	require.NoError(t, json.Unmarshal(m.data, &movies))
	return movies
}

func newTestRepo(t *testing.T, snap *memorySnapshot) *movieRepository {
	t.Helper()
	repo := NewMovieRepository(snap, zap.NewNop()).(*movieRepository)
	repo.now = func() time.Time { return time.UnixMilli(1000) }
	require.NoError(t, repo.Load(context.Background()))
	return repo
}

func TestMovieRepository_LoadMalformedSnapshot(t *testing.T) {
	for name, data := range map[string]string{
		"garbage": "{not json",
		"object":  `{"id":1}`,
		"null":    "null",
		"absent":  "",
	} {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepo(t, &memorySnapshot{data: []byte(data)})
			assert.Empty(t, repo.List(context.Background()))
			assert.NotNil(t, repo.List(context.Background()))
		})
	}
}

func TestMovieRepository_LoadExistingSnapshot(t *testing.T) {
	snap := &memorySnapshot{data: []byte(`[{"id":7,"title":"Alien","director":"Scott","releaseDate":"1979-05-25","status":"completed","rating":5}]`)}
	repo := newTestRepo(t, snap)

	movies := repo.List(context.Background())
	require.Len(t, movies, 1)
	assert.Equal(t, entity.Movie{
		ID: 7, Title: "Alien", Director: "Scott", ReleaseDate: "1979-05-25",
		Status: entity.StatusCompleted, Rating: 5,
	}, movies[0])
}

func TestMovieRepository_AddAssignsUniqueIDs(t *testing.T) {
	snap := &memorySnapshot{}
	repo := newTestRepo(t, snap)
	ctx := context.Background()

	first := &entity.Movie{Title: "One", Status: entity.StatusToWatch}
	second := &entity.Movie{Title: "Two", Status: entity.StatusToWatch}
	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Add(ctx, second))

	assert.Equal(t, int64(1000), first.ID)
	assert.Equal(t, int64(1001), second.ID)
	assert.Equal(t, 2, snap.saves)

	persisted := snap.decode(t)
	require.Len(t, persisted, 2)
	assert.Equal(t, "One", persisted[0].Title)
	assert.Equal(t, "Two", persisted[1].Title)
}

func TestMovieRepository_UpdateStatusAndRating(t *testing.T) {
	snap := &memorySnapshot{}
	repo := newTestRepo(t, snap)
	ctx := context.Background()

	movie := &entity.Movie{Title: "Heat", Status: entity.StatusToWatch}
	require.NoError(t, repo.Add(ctx, movie))

	updated, err := repo.UpdateStatus(ctx, movie.ID, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, updated.Status)

	updated, err = repo.UpdateRating(ctx, movie.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, entity.StatusCompleted, updated.Status)

	persisted := snap.decode(t)
	require.Len(t, persisted, 1)
	assert.Equal(t, 4, persisted[0].Rating)
	assert.Equal(t, entity.StatusCompleted, persisted[0].Status)

	_, err = repo.UpdateRating(ctx, 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieRepository_RemovePersistsReducedList(t *testing.T) {
	snap := &memorySnapshot{}
	repo := newTestRepo(t, snap)
	ctx := context.Background()

	a := &entity.Movie{Title: "A"}
	b := &entity.Movie{Title: "B"}
	c := &entity.Movie{Title: "C"}
	for _, m := range []*entity.Movie{a, b, c} {
		require.NoError(t, repo.Add(ctx, m))
	}

	require.NoError(t, repo.Remove(ctx, b.ID))

	persisted := snap.decode(t)
	require.Len(t, persisted, 2)
	assert.Equal(t, a.ID, persisted[0].ID)
	assert.Equal(t, c.ID, persisted[1].ID)
	assert.Equal(t, persisted, repo.List(ctx))

	assert.ErrorIs(t, repo.Remove(ctx, b.ID), ErrNotFound)
}

func TestMovieRepository_FailedSaveRollsBack(t *testing.T) {
	snap := &memorySnapshot{}
	repo := newTestRepo(t, snap)
	ctx := context.Background()

	movie := &entity.Movie{Title: "Kept", Status: entity.StatusToWatch}
	require.NoError(t, repo.Add(ctx, movie))

	snap.failErr = errors.New("disk full")

	err := repo.Add(ctx, &entity.Movie{Title: "Lost"})
	assert.Error(t, err)

	_, err = repo.UpdateStatus(ctx, movie.ID, entity.StatusCompleted)
	assert.Error(t, err)

	assert.Error(t, repo.Remove(ctx, movie.ID))

	movies := repo.List(ctx)
	require.Len(t, movies, 1)
	assert.Equal(t, "Kept", movies[0].Title)
	assert.Equal(t, entity.StatusToWatch, movies[0].Status)
}

func TestMovieRepository_ListReturnsCopy(t *testing.T) {
	repo := newTestRepo(t, &memorySnapshot{})
	ctx := context.Background()
	require.NoError(t, repo.Add(ctx, &entity.Movie{Title: "Original"}))

	movies := repo.List(ctx)
	movies[0].Title = "Changed"

	got, err := repo.Get(ctx, movies[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}

func newMovie(title string) *entity.Movie {
	return &entity.Movie{Title: title, Director: "Villeneuve", Status: entity.StatusToWatch}
}
