package wire

import (
	"movie-watchlist/internal/adaptor"
	"movie-watchlist/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Use(middleware.CORS())

		r.Get("/", movieHandler.GetMovies)                 // GET /api/movies
		r.Post("/", movieHandler.CreateMovie)              // POST /api/movies
		r.Patch("/{id}/status", movieHandler.UpdateStatus) // PATCH /api/movies/{id}/status
		r.Patch("/{id}/rating", movieHandler.UpdateRating) // PATCH /api/movies/{id}/rating
		r.Delete("/{id}", movieHandler.DeleteMovie)        // DELETE /api/movies/{id}
	})
}
