package adaptor

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"movie-watchlist/internal/dto/request"
	"movie-watchlist/internal/render"
	"movie-watchlist/internal/usecase"
	"movie-watchlist/internal/view"
	"movie-watchlist/pkg/middleware"
	"movie-watchlist/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	sessionSort      = "sort"
	CelebrationFlash = "🎉 Congratulations! 🎉"
)

// PageHandler serves the server-rendered watch list and its form posts
type PageHandler struct {
	watchlist usecase.WatchlistService
	render    usecase.RenderService
	renderer  *render.Renderer
	store     sessions.Store
	title     string
	log       *zap.Logger
}

func NewPageHandler(service *usecase.Service, renderer *render.Renderer, store sessions.Store, title string, log *zap.Logger) *PageHandler {
	return &PageHandler{
		watchlist: service.Watchlist,
		render:    service.Render,
		renderer:  renderer,
		store:     store,
		title:     title,
		log:       log.With(zap.String("handler", "page")),
	}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	req := h.viewRequest(r, session)
	flashes := session.Flashes()

	if err := session.Save(r, w); err != nil {
		h.log.Warn("Failed to save session", zap.Error(err))
	}

	viewer, _ := utils.GetViewerIDFromContext(r.Context())
	result, err := h.render.Render(r.Context(), viewer, req)
	if errors.Is(err, usecase.ErrStalePass) {
		// a newer pass owns the surface; the page still shows its own query
		result, err = h.render.Preview(r.Context(), req)
	}
	if err != nil {
		h.log.Error("Failed to render watch list", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := render.PageData{
		Title:   h.title,
		Filter:  req.Filter,
		Mode:    view.ParseMode(req.Mode).String(),
		Field:   req.Field,
		Sort:    req.Sort,
		Flashes: flashStrings(flashes),
		Rows:    template.HTML(result.Markup),
	}

	page, err := h.renderer.Page(data)
	if err != nil {
		h.log.Error("Failed to render page", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.ResponseHTML(w, http.StatusOK, page)
}

// Rows handles GET /rows and returns only the table body. A superseded
// pass answers 204 so the client keeps the newer table.
func (h *PageHandler) Rows(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	req := h.viewRequest(r, session)
	if err := session.Save(r, w); err != nil {
		h.log.Warn("Failed to save session", zap.Error(err))
	}

	viewer, _ := utils.GetViewerIDFromContext(r.Context())
	result, err := h.render.Render(r.Context(), viewer, req)
	if errors.Is(err, usecase.ErrStalePass) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.log.Error("Failed to render rows", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Render-Token", fmt.Sprintf("%d", result.Token))
	utils.ResponseHTML(w, http.StatusOK, result.Markup)
}

// AddMovie handles POST /movies
func (h *PageHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	req := &request.MovieRequest{
		Title:       trimmed(r.PostFormValue("title")),
		Director:    trimmed(r.PostFormValue("director")),
		ReleaseDate: r.PostFormValue("releaseDate"),
		Status:      r.PostFormValue("status"),
	}
	if req.Status == "" {
		req.Status = "to-watch"
	}

	if _, err := h.watchlist.AddMovie(r.Context(), req); err != nil {
		h.failed(w, r, err, "add movie")
		return
	}

	h.back(w, r)
}

// UpdateStatus handles POST /movies/{id}/status
func (h *PageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.watchlist.UpdateStatus(r.Context(), id, &request.StatusRequest{Status: r.PostFormValue("status")})
	if err != nil {
		h.failed(w, r, err, "update status")
		return
	}

	if resp.Celebrate {
		h.flash(w, r, CelebrationFlash)
	}
	h.back(w, r)
}

// UpdateRating handles POST /movies/{id}/rating
func (h *PageHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rating := utils.ParseInt(r.PostFormValue("rating"), -1)
	if _, err := h.watchlist.UpdateRating(r.Context(), id, &request.RatingRequest{Rating: rating}); err != nil {
		h.failed(w, r, err, "update rating")
		return
	}

	h.back(w, r)
}

// DeleteMovie handles POST /movies/{id}/delete
func (h *PageHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.watchlist.DeleteMovie(r.Context(), id); err != nil {
		h.failed(w, r, err, "delete movie")
		return
	}

	h.back(w, r)
}

// viewRequest reads the view query. An explicit sort parameter is
// remembered in the session; without one the last remembered sort applies.
func (h *PageHandler) viewRequest(r *http.Request, session *sessions.Session) *request.ViewRequest {
	query := r.URL.Query()

	req := &request.ViewRequest{
		Filter: query.Get("q"),
		Mode:   query.Get("mode"),
		Field:  query.Get("field"),
	}

	if query.Has("sort") {
		req.Sort = view.ParseField(query.Get("sort")).String()
		session.Values[sessionSort] = req.Sort
	} else if sort, ok := session.Values[sessionSort].(string); ok {
		req.Sort = sort
	}

	return req
}

func (h *PageHandler) session(r *http.Request) *sessions.Session {
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		return session
	}
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		h.log.Debug("Discarding unreadable session", zap.Error(err))
	}
	return session
}

func (h *PageHandler) flash(w http.ResponseWriter, r *http.Request, message string) {
	session := h.session(r)
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		h.log.Warn("Failed to save flash", zap.Error(err))
	}
}

// failed reports a form error back on the page, or 500 for storage errors
func (h *PageHandler) failed(w http.ResponseWriter, r *http.Request, err error, operation string) {
	msg := err.Error()
	if isClientError(msg) {
		h.log.Warn(operation+" rejected", zap.Error(err))
		h.flash(w, r, msg)
		h.back(w, r)
		return
	}

	h.log.Error("Failed to "+operation, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (h *PageHandler) back(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func flashStrings(flashes []interface{}) []string {
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
