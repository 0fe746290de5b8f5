package wire

import (
	"movie-watchlist/internal/adaptor"
	"movie-watchlist/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

func wirePage(r chi.Router, pageHandler *adaptor.PageHandler, store sessions.Store, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		// Every page request belongs to a viewer with its own surface
		r.Use(middleware.Viewer(store, log))

		r.Get("/", pageHandler.Index)
		r.Get("/rows", pageHandler.Rows)

		r.Post("/movies", pageHandler.AddMovie)
		r.Post("/movies/{id}/status", pageHandler.UpdateStatus)
		r.Post("/movies/{id}/rating", pageHandler.UpdateRating)
		r.Post("/movies/{id}/delete", pageHandler.DeleteMovie)
	})
}
