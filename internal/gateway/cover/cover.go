// Package cover maps a movie title to a display image URL.
package cover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultFallback is shown when no usable image was found.
const DefaultFallback = "default-cover.jpg"

// Resolver never fails: every error path degrades to a fallback image.
type Resolver interface {
	Resolve(ctx context.Context, title string) string
}

type Config struct {
	BaseURL       string
	Fallback      string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// volumesResponse is the part of the Google Books volumes search we read.
type volumesResponse struct {
	Items []struct {
		VolumeInfo *struct {
			ImageLinks *struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

type googleBooks struct {
	baseURL  string
	fallback string
	client   *http.Client
	limiter  *rate.Limiter
	log      *zap.Logger
}

// NewGoogleBooks issues one search per Resolve call. Results are not cached.
func NewGoogleBooks(cfg Config, log *zap.Logger) Resolver {
	if cfg.Fallback == "" {
		cfg.Fallback = DefaultFallback
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &googleBooks{
		baseURL:  cfg.BaseURL,
		fallback: cfg.Fallback,
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(limit, burst),
		log:      log.With(zap.String("gateway", "cover")),
	}
}

func (g *googleBooks) Resolve(ctx context.Context, title string) string {
	thumbnail, err := g.lookup(ctx, title)
	if err != nil {
		g.log.Debug("Cover lookup failed, using fallback",
			zap.String("title", title),
			zap.Error(err),
		)
		return g.fallback
	}
	if thumbnail == "" {
		g.log.Debug("No cover found, using fallback", zap.String("title", title))
		return g.fallback
	}
	return thumbnail
}

func (g *googleBooks) lookup(ctx context.Context, title string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	u, err := url.Parse(g.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("q", title)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch volumes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warn("Cover provider returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("title", title),
		)
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode volumes: %w", err)
	}

	if len(body.Items) == 0 {
		return "", nil
	}
	info := body.Items[0].VolumeInfo
	if info == nil || info.ImageLinks == nil {
		return "", nil
	}
	return info.ImageLinks.Thumbnail, nil
}

type static string

// Static returns a resolver that always answers url, without any lookup.
func Static(url string) Resolver {
	return static(url)
}

func (s static) Resolve(ctx context.Context, title string) string {
	return string(s)
}
