package adaptor

import (
	"net/http"
	"strings"

	"movie-watchlist/internal/render"
	"movie-watchlist/internal/usecase"
	"movie-watchlist/pkg/utils"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type Handler struct {
	Movie *MovieHandler
	Page  *PageHandler
}

func NewHandler(service *usecase.Service, renderer *render.Renderer, store sessions.Store, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Movie: NewMovieHandler(service.Watchlist, log),
		Page:  NewPageHandler(service, renderer, store, config.App.Name, log),
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

// isClientError reports errors caused by the request rather than the server
func isClientError(msg string) bool {
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "validation failed") ||
		strings.Contains(msg, "invalid")
}

// handleServiceError maps service errors onto JSON responses
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
