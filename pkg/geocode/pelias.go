package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/civicmaps/overlay/internal/resilience"
)

const defaultBaseURL = "https://api.geocode.earth/v1/autocomplete"

// peliasResponse is the GeoJSON FeatureCollection returned by the
// autocomplete API. Only the pieces we consume are decoded.
type peliasResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode resolves one address. The first feature is the most likely
// match. Rate-limited and retried on transient failures; a clean "no
// results" response is Matched false.
func (g *geocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	if address == "" {
		return &Result{Matched: false}, nil
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limit")
	}

	return resilience.DoVal(ctx, g.retry, "geocode", func(ctx context.Context) (*Result, error) {
		return g.geocodeOnce(ctx, address)
	})
}

func (g *geocoder) geocodeOnce(ctx context.Context, address string) (*Result, error) {
	params := url.Values{
		"text":    {address},
		"api_key": {g.apiKey},
	}
	if g.focus != nil {
		params.Set("focus.point.lat", strconv.FormatFloat(g.focus.Lat, 'f', -1, 64))
		params.Set("focus.point.lon", strconv.FormatFloat(g.focus.Lon, 'f', -1, 64))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("geocode: api returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}

	var pr peliasResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}

	if len(pr.Features) == 0 {
		return &Result{Matched: false}, nil
	}
	coords := pr.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return &Result{Matched: false}, nil
	}

	return &Result{
		Longitude: coords[0],
		Latitude:  coords[1],
		Label:     pr.Features[0].Properties.Label,
		Matched:   true,
	}, nil
}
