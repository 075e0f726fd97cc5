package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "counts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestAppendAndListSamples(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.AppendSample(ctx, Sample{
		URL: "https://dash.example/a", Registered: 120, Integrated: 45, TakenAt: base,
	}))
	require.NoError(t, s.AppendSample(ctx, Sample{
		URL: "https://dash.example/a", Registered: 125, Integrated: 46, TakenAt: base.Add(time.Hour),
	}))
	require.NoError(t, s.AppendSample(ctx, Sample{
		URL: "https://dash.example/b", Err: "timeout", TakenAt: base,
	}))

	all, err := s.ListSamples(ctx, SampleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.NotEmpty(t, all[0].ID)

	byURL, err := s.ListSamples(ctx, SampleFilter{URL: "https://dash.example/a"})
	require.NoError(t, err)
	require.Len(t, byURL, 2)
	assert.Equal(t, 120, byURL[0].Registered)
	assert.Equal(t, 125, byURL[1].Registered)

	since, err := s.ListSamples(ctx, SampleFilter{Since: base.Add(30 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, 46, since[0].Integrated)
}

func TestExportCSV(t *testing.T) {
	samples := []Sample{
		{URL: "https://dash.example/a", Registered: 120, Integrated: 45, TakenAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{URL: "https://dash.example/b", Err: "timeout", TakenAt: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, samples))

	out := buf.String()
	assert.Contains(t, out, "Timestamp,URL,Registered Cameras,Integrated Cameras")
	assert.Contains(t, out, "2025-06-01 12:00:00,https://dash.example/a,120,45")
	assert.Contains(t, out, "2025-06-01 13:00:00,https://dash.example/b,Error,Error")
}
