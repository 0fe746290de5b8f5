package utils

import (
	"context"
)

type contextKey string

const (
	ViewerIDKey  contextKey = "viewer_id"
	RequestIDKey contextKey = "request_id"
)

// GetViewerIDFromContext returns the viewer id set by the session middleware.
func GetViewerIDFromContext(ctx context.Context) (string, bool) {
	viewer, ok := ctx.Value(ViewerIDKey).(string)
	return viewer, ok && viewer != ""
}

func SetViewerContext(ctx context.Context, viewerID string) context.Context {
	return context.WithValue(ctx, ViewerIDKey, viewerID)
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}

func SetRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
