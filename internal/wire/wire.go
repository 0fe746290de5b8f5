package wire

import (
	"net/http"

	"movie-watchlist/internal/adaptor"
	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/gateway/cover"
	"movie-watchlist/internal/render"
	"movie-watchlist/internal/usecase"
	"movie-watchlist/pkg/middleware"
	"movie-watchlist/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// App holds every wired dependency
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes around repo and resolver
func Wiring(repo *repository.Repository, resolver cover.Resolver, config *utils.Config, logger *zap.Logger) (*App, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	store := middleware.NewSessionStore(config.App.SessionSecret, config.App.SecureCookies)

	service := usecase.NewService(repo, resolver, renderer, logger)
	handler := adaptor.NewHandler(service, renderer, store, config, logger)

	return &App{
		Router:  setupRouter(handler, store, logger),
		Service: service,
	}, nil
}

func setupRouter(handler *adaptor.Handler, store sessions.Store, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wirePage(r, handler.Page, store, logger)
	wireMovie(r, handler.Movie)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
