package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/dto/request"
	"movie-watchlist/internal/gateway/cover"
	"movie-watchlist/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memorySnapshot struct {
	mu   sync.Mutex
	data []byte
}

func (m *memorySnapshot) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *memorySnapshot) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

type resolverFunc func(ctx context.Context, title string) string

func (f resolverFunc) Resolve(ctx context.Context, title string) string {
	return f(ctx, title)
}

func newTestService(t *testing.T, resolver cover.Resolver) *Service {
	t.Helper()
	repo := repository.NewRepository(&memorySnapshot{}, zap.NewNop())
	require.NoError(t, repo.Movie.Load(context.Background()))

	renderer, err := render.New()
	require.NoError(t, err)

	return NewService(repo, resolver, renderer, zap.NewNop())
}

func addMovies(t *testing.T, svc *Service, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := svc.Watchlist.AddMovie(context.Background(), &request.MovieRequest{
			Title: title, Director: "Someone", Status: "to-watch",
		})
		require.NoError(t, err)
	}
}

func TestWatchlist_AddValidates(t *testing.T) {
	svc := newTestService(t, cover.Static("x.jpg"))
	ctx := context.Background()

	_, err := svc.Watchlist.AddMovie(ctx, &request.MovieRequest{Title: "", Director: "d", Status: "to-watch"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = svc.Watchlist.AddMovie(ctx, &request.MovieRequest{Title: "t", Director: "d", Status: "abandoned"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status")

	_, err = svc.Watchlist.AddMovie(ctx, &request.MovieRequest{Title: "t", Director: "d", Status: "watching", ReleaseDate: "tomorrow"})
	require.Error(t, err)

	movie, err := svc.Watchlist.AddMovie(ctx, &request.MovieRequest{Title: "t", Director: "d", Status: "watching", ReleaseDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Zero(t, movie.Rating)
	assert.NotZero(t, movie.ID)
}

func TestWatchlist_StatusCelebratesCompletion(t *testing.T) {
	svc := newTestService(t, cover.Static("x.jpg"))
	ctx := context.Background()
	addMovies(t, svc, "Heat")
	id := svc.Watchlist.ListMovies(ctx)[0].ID

	resp, err := svc.Watchlist.UpdateStatus(ctx, id, &request.StatusRequest{Status: "watching"})
	require.NoError(t, err)
	assert.False(t, resp.Celebrate)

	resp, err = svc.Watchlist.UpdateStatus(ctx, id, &request.StatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.True(t, resp.Celebrate)
	assert.Equal(t, "completed", resp.Status)
}

func TestWatchlist_RatingAndDelete(t *testing.T) {
	svc := newTestService(t, cover.Static("x.jpg"))
	ctx := context.Background()
	addMovies(t, svc, "Heat", "Ronin")
	id := svc.Watchlist.ListMovies(ctx)[0].ID

	_, err := svc.Watchlist.UpdateRating(ctx, id, &request.RatingRequest{Rating: 6})
	assert.ErrorContains(t, err, "validation failed")

	resp, err := svc.Watchlist.UpdateRating(ctx, id, &request.RatingRequest{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)

	require.NoError(t, svc.Watchlist.DeleteMovie(ctx, id))
	movies := svc.Watchlist.ListMovies(ctx)
	require.Len(t, movies, 1)
	assert.Equal(t, "Ronin", movies[0].Title)

	err = svc.Watchlist.DeleteMovie(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorContains(t, err, "not found")
}

func TestRender_CoversKeepRowOrder(t *testing.T) {
	titles := []string{"Part 1", "Part 2", "Part 3", "Part 4"}
	// earlier rows answer later, so arrival order is the reverse of row order
	delays := map[string]time.Duration{"Part 1": 40 * time.Millisecond, "Part 2": 30 * time.Millisecond, "Part 3": 20 * time.Millisecond, "Part 4": 0}
	svc := newTestService(t, resolverFunc(func(ctx context.Context, title string) string {
		time.Sleep(delays[title])
		return strings.ReplaceAll(title, " ", "-") + ".jpg"
	}))
	addMovies(t, svc, titles...)

	result, err := svc.Render.Render(context.Background(), "viewer", &request.ViewRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Rows)

	last := -1
	for _, title := range titles {
		i := strings.Index(result.Markup, fmt.Sprintf(`<img src="%s.jpg" alt="%s"`, strings.ReplaceAll(title, " ", "-"), title))
		require.GreaterOrEqual(t, i, 0, title)
		assert.Greater(t, i, last)
		last = i
	}

	markup, token := svc.Render.Surface("viewer").Markup()
	assert.Equal(t, result.Markup, markup)
	assert.Equal(t, result.Token, token)
}

func TestRender_StalePassIsDiscarded(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	svc := newTestService(t, resolverFunc(func(ctx context.Context, title string) string {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
			return "slow.jpg"
		}
		return "fast.jpg"
	}))
	addMovies(t, svc, "Inception")

	type outcome struct {
		err error
	}
	slow := make(chan outcome, 1)
	go func() {
		_, err := svc.Render.Render(context.Background(), "viewer", &request.ViewRequest{})
		slow <- outcome{err: err}
	}()

	<-entered
	fast, err := svc.Render.Render(context.Background(), "viewer", &request.ViewRequest{Filter: "incep"})
	require.NoError(t, err)
	assert.Contains(t, fast.Markup, "fast.jpg")

	close(release)
	got := <-slow
	assert.ErrorIs(t, got.err, ErrStalePass)

	markup, token := svc.Render.Surface("viewer").Markup()
	assert.Equal(t, fast.Token, token)
	assert.Contains(t, markup, "fast.jpg")
	assert.NotContains(t, markup, "slow.jpg")
}

func TestRender_ViewersAreIndependent(t *testing.T) {
	svc := newTestService(t, cover.Static("x.jpg"))
	addMovies(t, svc, "Heat")
	ctx := context.Background()

	a, err := svc.Render.Render(ctx, "a", &request.ViewRequest{})
	require.NoError(t, err)
	b, err := svc.Render.Render(ctx, "b", &request.ViewRequest{})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), a.Token)
	assert.Equal(t, uint64(1), b.Token)
}

func TestRender_SurfacesAreBounded(t *testing.T) {
	repo := repository.NewRepository(&memorySnapshot{}, zap.NewNop())
	require.NoError(t, repo.Movie.Load(context.Background()))
	renderer, err := render.New()
	require.NoError(t, err)

	const size = 16
	svc := newRenderService(repo, cover.Static("x.jpg"), renderer, zap.NewNop(), size)
	ctx := context.Background()

	kept, err := svc.Render(ctx, "regular", &request.ViewRequest{})
	require.NoError(t, err)

	for i := 0; i < 10*size; i++ {
		_, err := svc.Render(ctx, fmt.Sprintf("viewer-%d", i), &request.ViewRequest{})
		require.NoError(t, err)
		// a viewer that keeps coming back is not evicted
		if i%(size/2) == 0 {
			svc.Surface("regular")
		}
	}

	assert.Equal(t, size, svc.surfaces.Len())
	_, token := svc.Surface("regular").Markup()
	assert.Equal(t, kept.Token, token)

	evicted := svc.Surface("viewer-0")
	_, token = evicted.Markup()
	assert.Zero(t, token, "an evicted viewer starts a fresh surface")
	assert.Equal(t, size, svc.surfaces.Len())
}

func TestRender_PreviewLeavesSurfaceAlone(t *testing.T) {
	svc := newTestService(t, cover.Static("x.jpg"))
	addMovies(t, svc, "Heat", "Alien")
	ctx := context.Background()

	committed, err := svc.Render.Render(ctx, "viewer", &request.ViewRequest{Filter: "heat"})
	require.NoError(t, err)

	preview, err := svc.Render.Preview(ctx, &request.ViewRequest{Filter: "alien"})
	require.NoError(t, err)
	assert.Contains(t, preview.Markup, "Alien")
	assert.NotContains(t, preview.Markup, "Heat")
	assert.Zero(t, preview.Token)

	markup, token := svc.Render.Surface("viewer").Markup()
	assert.Equal(t, committed.Token, token)
	assert.Equal(t, committed.Markup, markup)
}

func TestRender_GroupScenario(t *testing.T) {
	svc := newTestService(t, cover.Static(cover.DefaultFallback))
	addMovies(t, svc, "Harry Potter 1", "Harry Potter 2", "Inception")
	ctx := context.Background()

	for i, rating := range []int{4, 2, 5} {
		id := svc.Watchlist.ListMovies(ctx)[i].ID
		_, err := svc.Watchlist.UpdateRating(ctx, id, &request.RatingRequest{Rating: rating})
		require.NoError(t, err)
	}

	result, err := svc.Render.Render(ctx, "viewer", &request.ViewRequest{Mode: "group", Field: "status"})
	require.NoError(t, err)

	assert.Contains(t, result.Markup, "Harry Potter Series (Average Rating: 3.00)")
	assert.Contains(t, result.Markup, "to-watch (Average Rating: 5.00)")
	assert.Contains(t, result.Markup, `src="default-cover.jpg"`)
}

func TestViewOptions(t *testing.T) {
	opts := ViewOptions(&request.ViewRequest{Filter: "x", Mode: "group", Field: "director", Sort: "nope"})
	assert.Equal(t, "x", opts.Filter)
	assert.Equal(t, "group", opts.Mode.String())
	assert.Equal(t, "director", opts.GroupBy.String())
	assert.Equal(t, "", opts.SortBy.String())
}
