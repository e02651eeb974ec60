package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mediapulse/pulse/api"
)

// Risk levels derived from the intelligence risk score.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// RiskLevelFor buckets a 0-100 risk score.
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score >= 70:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

// UnreadAlertCount is the badge number next to the alerts tab.
func UnreadAlertCount(alerts []api.Alert) int {
	n := 0
	for _, a := range alerts {
		if !a.IsRead() {
			n++
		}
	}
	return n
}

// FilterAlerts applies the alerts tab filter locally.
func FilterAlerts(alerts []api.Alert, f AlertFilter) []api.Alert {
	out := make([]api.Alert, 0, len(alerts))
	for _, a := range alerts {
		if f.Severity != "" && a.Severity != f.Severity {
			continue
		}
		if f.UnreadOnly && a.IsRead() {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterSocialByPlatform narrows the social list to one platform.
func FilterSocialByPlatform(items []api.SocialItem, platform string) []api.SocialItem {
	if platform == "" {
		return items
	}
	out := make([]api.SocialItem, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Platform, platform) {
			out = append(out, item)
		}
	}
	return out
}

// SentimentDistribution buckets labeled counts into positive/neutral/negative.
// The backend labels sentiment in Spanish.
type SentimentDistribution struct {
	Positive int
	Neutral  int
	Negative int
}

// Total returns the number of labeled items.
func (d SentimentDistribution) Total() int {
	return d.Positive + d.Neutral + d.Negative
}

// DistributionFromLabels folds label counts into a distribution.
func DistributionFromLabels(counts []api.LabelCount) SentimentDistribution {
	var d SentimentDistribution
	for _, c := range counts {
		switch c.SentimentLabel {
		case "positivo":
			d.Positive += c.Count
		case "negativo":
			d.Negative += c.Count
		default:
			d.Neutral += c.Count
		}
	}
	return d
}

// SummaryCard is one headline counter with its optional delta versus the
// previous scan.
type SummaryCard struct {
	Label string
	Value int
	Delta *int
}

// SummaryCards builds the four headline cards. deltas maps counter name to
// the change since the previous scan; unknown counters have no delta.
func SummaryCards(summary api.Summary, deltas map[string]int) []SummaryCard {
	cards := []SummaryCard{
		{Label: "Press", Value: summary.PressCount},
		{Label: "Mentions", Value: summary.MentionsCount},
		{Label: "Posts", Value: summary.PostsCount},
		{Label: "Alerts", Value: summary.AlertsCount},
	}
	keys := []string{"press_count", "mentions_count", "posts_count", "alerts_count"}
	for i, key := range keys {
		if d, ok := deltas[key]; ok {
			v := d
			cards[i].Delta = &v
		}
	}
	return cards
}

// ImageIndexTrend compares the two most recent image-index samples. Returns
// 0 when fewer than two samples exist.
func ImageIndexTrend(history []api.ImageIndexPoint) float64 {
	samples := make([]float64, 0, len(history))
	for _, p := range history {
		if p.ImageIndex != nil {
			samples = append(samples, *p.ImageIndex)
		}
	}
	if len(samples) < 2 {
		return 0
	}
	return samples[len(samples)-1] - samples[len(samples)-2]
}

// PlatformBreakdown sorts the per-platform sentiment rows by mention volume.
func PlatformBreakdown(rows []api.PlatformSentiment) []api.PlatformSentiment {
	out := make([]api.PlatformSentiment, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// TimeAgo renders a compact relative time: "just now", "5m ago", "3h ago",
// "2d ago". Unparseable timestamps come back verbatim.
func TimeAgo(timestamp string, now time.Time) string {
	t, err := parseBackendTime(timestamp)
	if err != nil {
		return timestamp
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

// parseBackendTime accepts the timestamp layouts the backend emits.
func parseBackendTime(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Sparkline renders a numeric series as unicode block characters.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	blocks := []rune("▁▂▃▄▅▆▇█")
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - min) / span * float64(len(blocks)-1))
		}
		b.WriteRune(blocks[idx])
	}
	return b.String()
}
