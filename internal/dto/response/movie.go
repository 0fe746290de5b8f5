package response

import (
	"movie-watchlist/internal/data/entity"
)

type MovieResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	ReleaseDate string `json:"releaseDate"`
	Status      string `json:"status"`
	Rating      int    `json:"rating"`
}

// StatusResponse flags the celebration shown when a movie is completed.
type StatusResponse struct {
	MovieResponse
	Celebrate bool `json:"celebrate"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Director:    movie.Director,
		ReleaseDate: movie.ReleaseDate,
		Status:      string(movie.Status),
		Rating:      movie.Rating,
	}
}

func MoviesToResponse(movies []entity.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i := range movies {
		out[i] = MovieToResponse(&movies[i])
	}
	return out
}
