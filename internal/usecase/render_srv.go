package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/dto/request"
	"movie-watchlist/internal/dto/response"
	"movie-watchlist/internal/gateway/cover"
	"movie-watchlist/internal/render"
	"movie-watchlist/internal/view"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStalePass means a newer pass was started for the same viewer before
// this one finished; its output was discarded.
var ErrStalePass = errors.New("render pass superseded")

const (
	maxConcurrentLookups = 8

	// maxSurfaces bounds the viewers kept in memory. The least recently
	// rendered viewer is dropped first; its next request starts a fresh
	// surface.
	maxSurfaces = 1024
)

type RenderService interface {
	// Render runs one filter, group, sort, cover and render pass for viewer
	// and commits it to the viewer's surface.
	Render(ctx context.Context, viewer string, req *request.ViewRequest) (*response.RenderResult, error)
	Surface(viewer string) *render.Surface

	// Preview runs the same pass without touching any surface.
	Preview(ctx context.Context, req *request.ViewRequest) (*response.RenderResult, error)
}

type renderService struct {
	repo     *repository.Repository
	resolver cover.Resolver
	renderer *render.Renderer
	log      *zap.Logger

	mu       sync.Mutex
	surfaces *lru.Cache
}

func NewRenderService(repo *repository.Repository, resolver cover.Resolver, renderer *render.Renderer, log *zap.Logger) RenderService {
	return newRenderService(repo, resolver, renderer, log, maxSurfaces)
}

func newRenderService(repo *repository.Repository, resolver cover.Resolver, renderer *render.Renderer, log *zap.Logger, size int) *renderService {
	surfaces, err := lru.New(size)
	if err != nil {
		// only a non-positive size fails
		panic(fmt.Sprintf("surface cache: %v", err))
	}
	return &renderService{
		repo:     repo,
		resolver: resolver,
		renderer: renderer,
		log:      log.With(zap.String("service", "render")),
		surfaces: surfaces,
	}
}

// ViewOptions maps a query onto pipeline options; unknown names fall back
// to list mode and no field.
func ViewOptions(req *request.ViewRequest) view.Options {
	return view.Options{
		Filter:  req.Filter,
		Mode:    view.ParseMode(req.Mode),
		GroupBy: view.ParseField(req.Field),
		SortBy:  view.ParseField(req.Sort),
	}
}

func (s *renderService) Surface(viewer string) *render.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.surfaces.Get(viewer); ok {
		return cached.(*render.Surface)
	}
	surface := render.NewSurface()
	if evicted := s.surfaces.Add(viewer, surface); evicted {
		s.log.Debug("Evicted least recently used surface", zap.Int("surfaces", s.surfaces.Len()))
	}
	return surface
}

func (s *renderService) Render(ctx context.Context, viewer string, req *request.ViewRequest) (*response.RenderResult, error) {
	surface := s.Surface(viewer)
	token := surface.Begin()

	v := s.resolve(ctx, req)

	if !surface.Latest(token) {
		s.log.Debug("Render pass superseded before render",
			zap.String("viewer", viewer),
			zap.Uint64("token", token),
		)
		return nil, ErrStalePass
	}

	markup, err := s.renderer.Render(v)
	if err != nil {
		s.log.Error("Failed to render rows", zap.Error(err))
		return nil, fmt.Errorf("render rows: %w", err)
	}

	if !surface.Commit(token, markup) {
		s.log.Debug("Render pass superseded at commit",
			zap.String("viewer", viewer),
			zap.Uint64("token", token),
		)
		return nil, ErrStalePass
	}

	s.log.Debug("Render pass committed",
		zap.String("viewer", viewer),
		zap.Uint64("token", token),
		zap.Int("rows", v.Len()),
		zap.String("mode", v.Mode.String()),
	)

	return &response.RenderResult{
		Token:  token,
		Rows:   v.Len(),
		Markup: markup,
	}, nil
}

func (s *renderService) Preview(ctx context.Context, req *request.ViewRequest) (*response.RenderResult, error) {
	v := s.resolve(ctx, req)

	markup, err := s.renderer.Render(v)
	if err != nil {
		s.log.Error("Failed to render preview", zap.Error(err))
		return nil, fmt.Errorf("render rows: %w", err)
	}

	return &response.RenderResult{Rows: v.Len(), Markup: markup}, nil
}

// resolve builds the view and fills in every row's cover.
func (s *renderService) resolve(ctx context.Context, req *request.ViewRequest) *view.View {
	v := view.Build(s.repo.Movie.List(ctx), ViewOptions(req))

	// Each lookup writes its own row, so arrival order cannot reorder rows.
	// In-flight lookups of a superseded pass are left to finish.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for _, row := range v.Rows() {
		g.Go(func() error {
			row.Cover = s.resolver.Resolve(gctx, row.Movie.Title)
			return nil
		})
	}
	g.Wait()

	return v
}
