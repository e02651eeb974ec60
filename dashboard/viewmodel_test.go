package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapulse/pulse/api"
)

func TestRiskLevelThresholds(t *testing.T) {
	assert.Equal(t, RiskHigh, RiskLevelFor(100))
	assert.Equal(t, RiskHigh, RiskLevelFor(70))
	assert.Equal(t, RiskMedium, RiskLevelFor(69.9))
	assert.Equal(t, RiskMedium, RiskLevelFor(40))
	assert.Equal(t, RiskLow, RiskLevelFor(39.9))
	assert.Equal(t, RiskLow, RiskLevelFor(0))
}

func TestFilterAlerts(t *testing.T) {
	alerts := []api.Alert{
		{ID: 1, Severity: api.SeverityHigh, Read: 0},
		{ID: 2, Severity: api.SeverityHigh, Read: 1},
		{ID: 3, Severity: api.SeverityLow, Read: 0},
	}

	assert.Len(t, FilterAlerts(alerts, AlertFilter{}), 3)
	assert.Len(t, FilterAlerts(alerts, AlertFilter{Severity: api.SeverityHigh}), 2)
	assert.Len(t, FilterAlerts(alerts, AlertFilter{UnreadOnly: true}), 2)

	got := FilterAlerts(alerts, AlertFilter{Severity: api.SeverityHigh, UnreadOnly: true})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFilterSocialByPlatform(t *testing.T) {
	items := []api.SocialItem{
		{ID: 1, Platform: "twitter"},
		{ID: 2, Platform: "Instagram"},
		{ID: 3, Platform: "twitter"},
	}

	assert.Len(t, FilterSocialByPlatform(items, ""), 3)
	assert.Len(t, FilterSocialByPlatform(items, "twitter"), 2)
	assert.Len(t, FilterSocialByPlatform(items, "instagram"), 1)
}

func TestDistributionFromLabels(t *testing.T) {
	d := DistributionFromLabels([]api.LabelCount{
		{SentimentLabel: "positivo", Count: 5},
		{SentimentLabel: "neutro", Count: 3},
		{SentimentLabel: "negativo", Count: 2},
	})

	assert.Equal(t, 5, d.Positive)
	assert.Equal(t, 3, d.Neutral)
	assert.Equal(t, 2, d.Negative)
	assert.Equal(t, 10, d.Total())
}

func TestSummaryCardsWithDeltas(t *testing.T) {
	summary := api.Summary{PressCount: 12, MentionsCount: 30, PostsCount: 5, AlertsCount: 2}
	cards := SummaryCards(summary, map[string]int{"press_count": 4, "alerts_count": -1})

	require.Len(t, cards, 4)
	assert.Equal(t, 12, cards[0].Value)
	require.NotNil(t, cards[0].Delta)
	assert.Equal(t, 4, *cards[0].Delta)
	assert.Nil(t, cards[1].Delta)
	require.NotNil(t, cards[3].Delta)
	assert.Equal(t, -1, *cards[3].Delta)
}

func TestImageIndexTrend(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.Zero(t, ImageIndexTrend(nil))
	assert.Zero(t, ImageIndexTrend([]api.ImageIndexPoint{{ImageIndex: f(60)}}))

	trend := ImageIndexTrend([]api.ImageIndexPoint{
		{ImageIndex: f(60)},
		{ImageIndex: nil},
		{ImageIndex: f(68)},
	})
	assert.InDelta(t, 8.0, trend, 0.001)
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", TimeAgo("2025-03-10T11:59:30", now))
	assert.Equal(t, "5m ago", TimeAgo("2025-03-10T11:55:00", now))
	assert.Equal(t, "3h ago", TimeAgo("2025-03-10T09:00:00", now))
	assert.Equal(t, "2d ago", TimeAgo("2025-03-08T10:00:00", now))
	assert.Equal(t, "garbage", TimeAgo("garbage", now))
}

func TestSparkline(t *testing.T) {
	assert.Empty(t, Sparkline(nil))
	assert.Equal(t, "▁", Sparkline([]float64{5}))

	line := Sparkline([]float64{0, 50, 100})
	runes := []rune(line)
	require.Len(t, runes, 3)
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[2])
}

func TestSafeRenderIsolatesPanics(t *testing.T) {
	snap := Snapshot{Summary: api.Summary{PressCount: 3}}

	renderers := map[string]Renderer{
		"ok": func(s Snapshot) string { return "ok" },
		"boom": func(s Snapshot) string {
			panic("renderer bug")
		},
		"also-ok": func(s Snapshot) string { return "fine" },
	}

	out := RenderAll(renderers, snap)

	assert.Equal(t, "ok", out["ok"])
	assert.Equal(t, "fine", out["also-ok"])
	assert.Equal(t, "", out["boom"], "a panicking renderer yields empty output, not a crash")
}
