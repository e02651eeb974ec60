package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediapulse/pulse/errors"
)

// ImageIndex fetches the composite image score.
func (c *Client) ImageIndex(ctx context.Context, subjectID int) (*ImageIndex, error) {
	var out *ImageIndex
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/image-index", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ImageIndexHistory fetches historical image-index samples, oldest first.
func (c *Client) ImageIndexHistory(ctx context.Context, subjectID, limit int) ([]ImageIndexPoint, error) {
	var out []ImageIndexPoint
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/image-index-history", subjectID), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SentimentByPlatform fetches per-platform sentiment, press included as a
// pseudo-platform.
func (c *Client) SentimentByPlatform(ctx context.Context, subjectID int) ([]PlatformSentiment, error) {
	var out []PlatformSentiment
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/sentiment-by-platform", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActivityPeaks fetches the posting-time histograms.
func (c *Client) ActivityPeaks(ctx context.Context, subjectID int) (*ActivityPeaks, error) {
	var out *ActivityPeaks
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/activity-peaks", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TopInfluencers fetches the authors that mention the subject most.
func (c *Client) TopInfluencers(ctx context.Context, subjectID, limit int) ([]Influencer, error) {
	var out []Influencer
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/top-influencers", subjectID), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Intelligence fetches the latest risk assessment, nil when none exists.
func (c *Client) Intelligence(ctx context.Context, subjectID int) (*Intelligence, error) {
	var out *Intelligence
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/intelligence", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActivityCalendar fetches the daily post-count heat map series.
func (c *Client) ActivityCalendar(ctx context.Context, subjectID int) ([]CalendarDay, error) {
	var out []CalendarDay
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/activity-calendar", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarketValueHistory fetches market-value samples over time.
func (c *Client) MarketValueHistory(ctx context.Context, subjectID int) ([]MarketValuePoint, error) {
	var out []MarketValuePoint
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/market-value-history", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Collaborations fetches detected brand and peer collaborations.
func (c *Client) Collaborations(ctx context.Context, subjectID int) ([]Collaboration, error) {
	var out []Collaboration
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/collaborations", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TrendsHistory fetches search-interest samples over time.
func (c *Client) TrendsHistory(ctx context.Context, subjectID int) ([]TrendPoint, error) {
	var out []TrendPoint
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/trends/history", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ratings fetches match ratings and aggregate performance stats.
func (c *Client) Ratings(ctx context.Context, subjectID int) (Ratings, error) {
	var out Ratings
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/sofascore-ratings", subjectID), nil, &out); err != nil {
		return Ratings{}, err
	}
	return out, nil
}

// ActivityByPlatform fetches the subject's post counts grouped by platform.
func (c *Client) ActivityByPlatform(ctx context.Context, subjectID int) (map[string]int, error) {
	var out map[string]int
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/activity-by-platform", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Portfolio fetches the all-subjects overview.
func (c *Client) Portfolio(ctx context.Context) ([]PortfolioEntry, error) {
	var out []PortfolioEntry
	if err := c.getJSON(ctx, "/api/portfolio", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PortfolioSparklines fetches per-subject mention trend series keyed by
// subject id.
func (c *Client) PortfolioSparklines(ctx context.Context) (map[string][]float64, error) {
	var out map[string][]float64
	if err := c.getJSON(ctx, "/api/portfolio/sparklines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PortfolioIntelligence fetches the latest risk assessment per subject.
func (c *Client) PortfolioIntelligence(ctx context.Context) ([]Intelligence, error) {
	var out []Intelligence
	if err := c.getJSON(ctx, "/api/portfolio/intelligence", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CompareScans fetches two scan reports side by side.
func (c *Client) CompareScans(ctx context.Context, scanA, scanB int) (ScanComparison, error) {
	var out ScanComparison
	q := url.Values{}
	q.Set("scan_id_a", strconv.Itoa(scanA))
	q.Set("scan_id_b", strconv.Itoa(scanB))
	if err := c.getJSON(ctx, "/api/compare", q, &out); err != nil {
		return ScanComparison{}, err
	}
	return out, nil
}

// CompareSubjects fetches comparison columns for two or more subjects.
func (c *Client) CompareSubjects(ctx context.Context, subjectIDs []int) ([]ComparisonEntry, error) {
	if len(subjectIDs) < 2 {
		return nil, errors.InvalidInput("at least two subjects are required to compare")
	}
	parts := make([]string, len(subjectIDs))
	for i, id := range subjectIDs {
		parts[i] = strconv.Itoa(id)
	}
	q := url.Values{}
	q.Set("player_ids", strings.Join(parts, ","))

	var out []ComparisonEntry
	if err := c.getJSON(ctx, "/api/compare-players", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateWeeklyReport asks the backend to build a fresh weekly report.
func (c *Client) GenerateWeeklyReport(ctx context.Context, subjectID int) (*WeeklyReport, error) {
	var out *WeeklyReport
	if err := c.postJSON(ctx, fmt.Sprintf("/api/player/%d/weekly-report", subjectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WeeklyReports lists previously generated weekly reports, newest first.
func (c *Client) WeeklyReports(ctx context.Context, subjectID, limit int) ([]WeeklyReport, error) {
	var out []WeeklyReport
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d/weekly-reports", subjectID), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
