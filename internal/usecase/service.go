package usecase

import (
	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/gateway/cover"
	"movie-watchlist/internal/render"

	"go.uber.org/zap"
)

type Service struct {
	Watchlist WatchlistService
	Render    RenderService
}

func NewService(repo *repository.Repository, resolver cover.Resolver, renderer *render.Renderer, log *zap.Logger) *Service {
	return &Service{
		Watchlist: NewWatchlistService(repo, log),
		Render:    NewRenderService(repo, resolver, renderer, log),
	}
}
