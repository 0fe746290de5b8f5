package middleware

import (
	"context"
	"net/http"

	"movie-watchlist/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	SessionName     = "watchlist-session"
	sessionViewerID = "viewer_id"
)

type sessionKey struct{}

// SessionFromContext returns the session loaded by Viewer. Handlers must
// reuse it; a second store lookup would miss a cookie set on this request.
func SessionFromContext(ctx context.Context) (*sessions.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*sessions.Session)
	return session, ok
}

// NewSessionStore builds the cookie store holding viewer preferences.
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Viewer makes sure every request carries a viewer id. Each viewer gets its
// own display surface, so overlapping render passes are ordered per browser.
func Viewer(store sessions.Store, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A cookie that fails to decode still yields a fresh session
			session, err := store.Get(r, SessionName)
			if err != nil {
				logger.Debug("Discarding unreadable session", zap.Error(err))
			}

			viewerID, _ := session.Values[sessionViewerID].(string)
			if viewerID == "" {
				viewerID = uuid.NewString()
				session.Values[sessionViewerID] = viewerID
				if err := session.Save(r, w); err != nil {
					logger.Warn("Failed to save session", zap.Error(err))
				}
			}

			ctx := utils.SetViewerContext(r.Context(), viewerID)
			ctx = context.WithValue(ctx, sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
