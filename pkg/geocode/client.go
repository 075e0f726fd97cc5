// Package geocode resolves street addresses to coordinates via a
// Pelias-compatible autocomplete API (geocode.earth).
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/civicmaps/overlay/internal/resilience"
)

// Client geocodes addresses.
type Client interface {
	// Geocode resolves a single cleaned address. An address the provider
	// cannot match returns Matched false, not an error.
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Result holds the geocoding output for an address.
type Result struct {
	Latitude  float64
	Longitude float64
	Label     string // provider's matched label
	Matched   bool
}

// FocusPoint biases results toward a coordinate, which improves relevance
// for ambiguous street names.
type FocusPoint struct {
	Lat float64
	Lon float64
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(g *geocoder) { g.baseURL = u }
}

// WithFocusPoint biases results toward the given coordinate.
func WithFocusPoint(fp FocusPoint) Option {
	return func(g *geocoder) { g.focus = &fp }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) { g.httpClient = hc }
}

// WithRateLimit sets the requests-per-second limit. Free-tier keys are
// throttled hard, so the default is conservative.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) { g.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithRetry overrides the transient-error retry settings.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(g *geocoder) { g.retry = cfg }
}

type geocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	focus      *FocusPoint
	retry      resilience.RetryConfig
}

// NewClient creates a geocoding Client for the given API key.
func NewClient(apiKey string, opts ...Option) Client {
	g := &geocoder{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		limiter:    rate.NewLimiter(1, 1),
		retry:      resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
