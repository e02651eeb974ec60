package dashboard

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/testutil"
)

func newTestLoader(t *testing.T, backend *testutil.FakeBackend) *Loader {
	t.Helper()
	return NewLoader(api.NewClient(backend.Config()), 2*time.Second, 50)
}

// registerHappyRoutes fills the fake with a complete, healthy resource set
// for subject 42.
func registerHappyRoutes(backend *testutil.FakeBackend) {
	backend.JSON(http.MethodGet, "/api/summary", `{"press_count": 12, "mentions_count": 30, "posts_count": 5, "alerts_count": 2}`)
	backend.JSON(http.MethodGet, "/api/report", `{"id": 1, "player_id": 42, "executive_summary": "Semana tranquila"}`)
	backend.JSON(http.MethodGet, "/api/press", `[{"id": 1, "source": "Marca", "title": "titular", "sentiment_label": "positivo"}]`)
	backend.JSON(http.MethodGet, "/api/social", `[{"id": 2, "platform": "twitter", "author": "fan", "text": "golazo"}]`)
	backend.JSON(http.MethodGet, "/api/activity", `[{"id": 3, "platform": "instagram", "text": "entreno"}]`)
	backend.JSON(http.MethodGet, "/api/alerts", `[{"id": 4, "severity": "high", "title": "Crisis", "read": 0}, {"id": 5, "severity": "low", "title": "Pico", "read": 0}]`)
	backend.JSON(http.MethodGet, "/api/stats", `{"press_daily": [{"day": "2025-03-01", "count": 3}]}`)
	backend.JSON(http.MethodGet, "/api/scans", `[{"id": 9, "player_id": 42, "status": "completed"}]`)
	backend.JSON(http.MethodGet, "/api/player/42/image-index", `{"index": 71.5}`)
	backend.JSON(http.MethodGet, "/api/player/42/weekly-reports", `[]`)
	backend.JSON(http.MethodGet, "/api/player/42/sentiment-by-platform", `[{"platform": "twitter", "count": 20, "positive": 12, "neutral": 5, "negative": 3}]`)
	backend.JSON(http.MethodGet, "/api/player/42/activity-peaks", `{"hours": [], "days": [], "peak_hour": 21, "peak_day": "Dom"}`)
	backend.JSON(http.MethodGet, "/api/player/42/top-influencers", `[{"author": "fan", "platform": "twitter", "mentions": 8}]`)
	backend.JSON(http.MethodGet, "/api/player/42/image-index-history", `[{"image_index": 68.0, "created_at": "2025-02-01"}, {"image_index": 71.5, "created_at": "2025-03-01"}]`)
	backend.JSON(http.MethodGet, "/api/player/42/intelligence", `{"id": 1, "player_id": 42, "risk_score": 35}`)
	backend.JSON(http.MethodGet, "/api/player/42/activity-calendar", `[{"day": "2025-03-01", "count": 2}]`)
	backend.JSON(http.MethodGet, "/api/player/42/market-value-history", `[{"date": "2025-01-01", "value": 20000000}]`)
	backend.JSON(http.MethodGet, "/api/player/42/collaborations", `[{"name": "Nike", "type": "brand"}]`)
	backend.JSON(http.MethodGet, "/api/player/42/trends/history", `[{"date": "2025-03-01", "value": 55}]`)
	backend.JSON(http.MethodGet, "/api/player/42/sofascore-ratings", `{"ratings": [{"date": "2025-03-01", "rating": 7.2}], "stats": null}`)
	backend.JSON(http.MethodGet, "/api/player/42/activity-by-platform", `{"instagram": 10, "tiktok": 4}`)
}

func TestFullLoadPopulatesSnapshot(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	registerHappyRoutes(backend)
	loader := newTestLoader(t, backend)

	snap := loader.FullLoad(context.Background(), 42, AllRange())

	assert.Equal(t, 12, snap.Summary.PressCount)
	require.NotNil(t, snap.Report)
	assert.Equal(t, "Semana tranquila", snap.Report.ExecutiveSummary)
	assert.Len(t, snap.Press, 1)
	assert.Len(t, snap.Social, 1)
	assert.Len(t, snap.Activity, 1)
	assert.Len(t, snap.Alerts, 2)
	assert.Len(t, snap.Scans, 1)
	require.NotNil(t, snap.ImageIndex)
	assert.InDelta(t, 71.5, snap.ImageIndex.Index, 0.001)
	require.NotNil(t, snap.Intelligence)
	assert.InDelta(t, 35.0, snap.Intelligence.RiskScore, 0.001)
	assert.Equal(t, map[string]int{"instagram": 10, "tiktok": 4}, snap.ActivityByPlatform)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestLoadFallbackIsolation(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	registerHappyRoutes(backend)
	// One resource breaks; the rest of the batch is unaffected.
	backend.Status(http.MethodGet, "/api/social", http.StatusInternalServerError, "db locked")
	backend.Status(http.MethodGet, "/api/player/42/intelligence", http.StatusNotFound, "Not Found")
	loader := newTestLoader(t, backend)

	snap := loader.FullLoad(context.Background(), 42, AllRange())

	assert.Empty(t, snap.Social, "failed resource falls back to its typed default")
	assert.NotNil(t, snap.Social, "fallback is an empty list, not nil")
	assert.Nil(t, snap.Intelligence)

	// Siblings are intact.
	assert.Equal(t, 12, snap.Summary.PressCount)
	assert.Len(t, snap.Press, 1)
	assert.Len(t, snap.Alerts, 2)
}

func TestReloadRefreshesOnlyRangeSensitiveResources(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	registerHappyRoutes(backend)

	var summaryQueries []string
	backend.HandleFunc(http.MethodGet, "/api/summary", func(w http.ResponseWriter, r *http.Request) {
		summaryQueries = append(summaryQueries, r.URL.Query().Get("date_from"))
		w.Write([]byte(`{"press_count": 4, "mentions_count": 9, "posts_count": 1, "alerts_count": 2}`))
	})

	loader := newTestLoader(t, backend)
	full := loader.FullLoad(context.Background(), 42, AllRange())
	require.Len(t, full.Scans, 1)

	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	r, err := PresetRange("7", now)
	require.NoError(t, err)

	snap := loader.Reload(context.Background(), 42, r, full)

	// The narrowed range reached the backend.
	require.Len(t, summaryQueries, 2)
	assert.Equal(t, "", summaryQueries[0])
	assert.Equal(t, "2025-03-03T00:00:00", summaryQueries[1])

	// History endpoints were hit once, by the full load only.
	assert.Equal(t, 1, backend.Requests(http.MethodGet, "/api/scans"))
	assert.Equal(t, 1, backend.Requests(http.MethodGet, "/api/player/42/image-index"))
	assert.Equal(t, 1, backend.Requests(http.MethodGet, "/api/player/42/intelligence"))

	// Carried-over history data survives the reload untouched.
	assert.Equal(t, full.Scans, snap.Scans)
	assert.Equal(t, full.ImageIndex, snap.ImageIndex)
	assert.Equal(t, full.Intelligence, snap.Intelligence)
	assert.Equal(t, full.Ratings, snap.Ratings)

	// Range-sensitive data was refreshed.
	assert.Equal(t, 4, snap.Summary.PressCount)
}

func TestReloadIsIdempotent(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	registerHappyRoutes(backend)
	loader := newTestLoader(t, backend)

	full := loader.FullLoad(context.Background(), 42, AllRange())

	first := loader.Reload(context.Background(), 42, AllRange(), full)
	second := loader.Reload(context.Background(), 42, AllRange(), first)

	first.LoadedAt, second.LoadedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
}

func TestLoaderPerFetchTimeout(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	registerHappyRoutes(backend)

	release := make(chan struct{})
	var once sync.Once
	t.Cleanup(func() { once.Do(func() { close(release) }) })
	backend.HandleFunc(http.MethodGet, "/api/stats", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.Write([]byte(`{}`))
	})

	loader := NewLoader(api.NewClient(backend.Config()), 50*time.Millisecond, 50)

	start := time.Now()
	snap := loader.FullLoad(context.Background(), 42, AllRange())
	once.Do(func() { close(release) })

	// The hung resource timed out on its own budget instead of stalling the
	// whole batch.
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Empty(t, snap.Stats.PressDaily)
	assert.Equal(t, 12, snap.Summary.PressCount)
}
