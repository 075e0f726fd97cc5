// Package connectdash fetches camera counter stats from Connect-style
// community camera dashboards.
package connectdash

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/civicmaps/overlay/internal/resilience"
)

// Stats is one reading of a dashboard's camera counters.
type Stats struct {
	Registered int `json:"registered_cameras"`
	Integrated int `json:"integrated_cameras"`
}

// Client fetches dashboard stats over HTTP with retry and a hard timeout;
// a slow dashboard fails the sample, never hangs the run.
type Client struct {
	httpClient *http.Client
	retry      resilience.RetryConfig
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry overrides the retry settings.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient creates a dashboard stats client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStats reads the stats endpoint of one dashboard.
func (c *Client) FetchStats(ctx context.Context, url string) (*Stats, error) {
	return resilience.DoVal(ctx, c.retry, "connectdash.fetch", func(ctx context.Context) (*Stats, error) {
		return c.fetchOnce(ctx, url)
	})
}

func (c *Client) fetchOnce(ctx context.Context, url string) (*Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "connectdash: build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "connectdash: fetch %s", url)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("connectdash: %s returned status %d", url, resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "connectdash: read %s", url)
	}

	var stats Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, eris.Wrapf(err, "connectdash: parse stats from %s", url)
	}
	return &stats, nil
}
