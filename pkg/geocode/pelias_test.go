package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicmaps/overlay/internal/resilience"
)

const matchedBody = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [-72.6079, 42.1584]},
			"properties": {"label": "449 Front Street, Chicopee, MA, USA"}
		}
	]
}`

func testClient(t *testing.T, handler http.HandlerFunc, opts ...Option) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{
		WithBaseURL(srv.URL),
		WithRateLimit(1000),
		WithRetry(resilience.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}),
	}, opts...)
	return NewClient("test-key", opts...)
}

func TestGeocodeMatch(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "449 Front Street", r.URL.Query().Get("text"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(matchedBody)) //nolint:errcheck
	})

	res, err := client.Geocode(context.Background(), "449 Front Street")
	require.NoError(t, err)
	require.True(t, res.Matched)
	assert.InDelta(t, 42.1584, res.Latitude, 1e-9)
	assert.InDelta(t, -72.6079, res.Longitude, 1e-9)
	assert.Contains(t, res.Label, "Chicopee")
}

func TestGeocodeNoResultsIsNotAnError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "FeatureCollection", "features": []}`)) //nolint:errcheck
	})

	res, err := client.Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestGeocodeFocusPointParams(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42.1584", r.URL.Query().Get("focus.point.lat"))
		assert.Equal(t, "-72.6079", r.URL.Query().Get("focus.point.lon"))
		w.Write([]byte(matchedBody)) //nolint:errcheck
	}, WithFocusPoint(FocusPoint{Lat: 42.1584, Lon: -72.6079}))

	_, err := client.Geocode(context.Background(), "449 Front Street")
	require.NoError(t, err)
}

func TestGeocodeRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(matchedBody)) //nolint:errcheck
	})

	res, err := client.Geocode(context.Background(), "449 Front Street")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGeocodeClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Geocode(context.Background(), "449 Front Street")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeocodeCSV(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("text"), "Unknown") {
			w.Write([]byte(`{"type": "FeatureCollection", "features": []}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(matchedBody)) //nolint:errcheck
	})

	in := strings.Join([]string{
		"Name,Address",
		"Library,449 Front St",
		"Mystery,Unknown Nowhere St",
		"Blank,",
	}, "\n")

	var out strings.Builder
	err := GeocodeCSV(context.Background(), client, strings.NewReader(in), &out, BatchOptions{Concurrency: 2})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name,Address,Cleaned_Address,Latitude,Longitude,Geocoding_Status", lines[0])
	assert.Contains(t, lines[1], StatusSuccess)
	assert.Contains(t, lines[1], "42.1584")
	assert.Contains(t, lines[2], StatusFailed)
	assert.Contains(t, lines[3], "Skipped")
}

func TestGeocodeCSVMissingAddressColumn(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
	err := GeocodeCSV(context.Background(), client, strings.NewReader("Name\nLibrary\n"), &strings.Builder{}, BatchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing address column")
}
