package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-watchlist/internal/data/entity"
	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/dto/request"
	"movie-watchlist/internal/dto/response"
	"movie-watchlist/pkg/utils"

	"go.uber.org/zap"
)

type WatchlistService interface {
	ListMovies(ctx context.Context) []response.MovieResponse
	AddMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateStatus(ctx context.Context, movieID int64, req *request.StatusRequest) (*response.StatusResponse, error)
	UpdateRating(ctx context.Context, movieID int64, req *request.RatingRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error
}

type watchlistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWatchlistService(repo *repository.Repository, log *zap.Logger) WatchlistService {
	return &watchlistService{
		repo: repo,
		log:  log.With(zap.String("service", "watchlist")),
	}
}

func (s *watchlistService) ListMovies(ctx context.Context) []response.MovieResponse {
	return response.MoviesToResponse(s.repo.Movie.List(ctx))
}

func (s *watchlistService) AddMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie := &entity.Movie{
		Title:       req.Title,
		Director:    req.Director,
		ReleaseDate: req.ReleaseDate,
		Status:      entity.Status(req.Status),
		Rating:      0,
	}

	if err := s.repo.Movie.Add(ctx, movie); err != nil {
		return nil, fmt.Errorf("add movie: %w", err)
	}

	s.log.Info("Movie added",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *watchlistService) UpdateStatus(ctx context.Context, movieID int64, req *request.StatusRequest) (*response.StatusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.UpdateStatus(ctx, movieID, entity.Status(req.Status))
	if err != nil {
		return nil, s.wrap("update status", movieID, err)
	}

	s.log.Info("Movie status updated",
		zap.Int64("movie_id", movieID),
		zap.String("status", req.Status),
	)

	return &response.StatusResponse{
		MovieResponse: response.MovieToResponse(movie),
		Celebrate:     movie.Completed(),
	}, nil
}

func (s *watchlistService) UpdateRating(ctx context.Context, movieID int64, req *request.RatingRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.UpdateRating(ctx, movieID, req.Rating)
	if err != nil {
		return nil, s.wrap("update rating", movieID, err)
	}

	s.log.Info("Movie rating updated",
		zap.Int64("movie_id", movieID),
		zap.Int("rating", req.Rating),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *watchlistService) DeleteMovie(ctx context.Context, movieID int64) error {
	if err := s.repo.Movie.Remove(ctx, movieID); err != nil {
		return s.wrap("delete movie", movieID, err)
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", movieID))
	return nil
}

func (s *watchlistService) wrap(operation string, movieID int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn(operation+" failed - not found", zap.Int64("movie_id", movieID))
	} else {
		s.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
