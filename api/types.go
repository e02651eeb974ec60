package api

import "encoding/json"

// Subject is a tracked public figure.
type Subject struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Twitter         string `json:"twitter,omitempty"`
	Instagram       string `json:"instagram,omitempty"`
	TikTok          string `json:"tiktok,omitempty"`
	TransfermarktID string `json:"transfermarkt_id,omitempty"`
	Club            string `json:"club,omitempty"`
	PhotoURL        string `json:"photo_url,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// SubjectInput is the payload for creating a subject or starting a scan.
type SubjectInput struct {
	Name            string `json:"name"`
	Twitter         string `json:"twitter,omitempty"`
	Instagram       string `json:"instagram,omitempty"`
	TikTok          string `json:"tiktok,omitempty"`
	TransfermarktID string `json:"transfermarkt_id,omitempty"`
	Club            string `json:"club,omitempty"`
}

// ScanStatus is the backend's live scan state.
// SubjectID is set once the scan has registered the subject.
type ScanStatus struct {
	Running   bool   `json:"running"`
	Progress  string `json:"progress"`
	SubjectID *int   `json:"player_id"`
}

// Summary holds the headline counters for the selected date range.
// Sentiment averages are nil when no scored items exist.
type Summary struct {
	PressCount      int      `json:"press_count"`
	MentionsCount   int      `json:"mentions_count"`
	PostsCount      int      `json:"posts_count"`
	AlertsCount     int      `json:"alerts_count"`
	PressSentiment  *float64 `json:"press_sentiment"`
	SocialSentiment *float64 `json:"social_sentiment"`
	PlayerSentiment *float64 `json:"player_sentiment"`
	AvgEngagement   *float64 `json:"avg_engagement"`
}

// Report is the narrative report produced after a scan. Topics and brands are
// free-form JSON from the analyzer.
type Report struct {
	ID               int             `json:"id"`
	SubjectID        int             `json:"player_id"`
	ExecutiveSummary string          `json:"executive_summary"`
	Topics           json.RawMessage `json:"topics,omitempty"`
	Brands           json.RawMessage `json:"brands,omitempty"`
	Delta            json.RawMessage `json:"delta,omitempty"`
	ImageIndex       *float64        `json:"image_index,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

// PressItem is a single press article.
type PressItem struct {
	ID             int      `json:"id"`
	Source         string   `json:"source"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Summary        string   `json:"summary,omitempty"`
	Sentiment      *float64 `json:"sentiment"`
	SentimentLabel string   `json:"sentiment_label"`
	PublishedAt    string   `json:"published_at"`
}

// SocialItem is a third-party mention on a social platform.
type SocialItem struct {
	ID             int      `json:"id"`
	Platform       string   `json:"platform"`
	Author         string   `json:"author"`
	Text           string   `json:"text"`
	URL            string   `json:"url"`
	Likes          int      `json:"likes"`
	Retweets       int      `json:"retweets"`
	Sentiment      *float64 `json:"sentiment"`
	SentimentLabel string   `json:"sentiment_label"`
	CreatedAt      string   `json:"created_at"`
}

// ActivityItem is a post published by the subject themselves.
type ActivityItem struct {
	ID             int      `json:"id"`
	Platform       string   `json:"platform"`
	Text           string   `json:"text"`
	URL            string   `json:"url"`
	Likes          int      `json:"likes"`
	Comments       int      `json:"comments"`
	Shares         int      `json:"shares"`
	Views          int      `json:"views"`
	EngagementRate *float64 `json:"engagement_rate"`
	MediaType      string   `json:"media_type,omitempty"`
	Sentiment      *float64 `json:"sentiment"`
	SentimentLabel string   `json:"sentiment_label"`
	PostedAt       string   `json:"posted_at"`
}

// Alert severities as the backend emits them.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Alert is a notification raised by the analyzer.
// Read is an integer on the wire (SQLite boolean).
type Alert struct {
	ID        int    `json:"id"`
	SubjectID int    `json:"player_id"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
	Read      int    `json:"read"`
}

// IsRead reports whether the alert has been marked as read.
func (a Alert) IsRead() bool { return a.Read != 0 }

// DailyCount is one day of a time series.
type DailyCount struct {
	Day           string   `json:"day"`
	Count         int      `json:"count"`
	AvgSentiment  *float64 `json:"avg_sentiment,omitempty"`
	AvgEngagement *float64 `json:"avg_engagement,omitempty"`
}

// LabelCount pairs a categorical label with its item count.
type LabelCount struct {
	SentimentLabel string `json:"sentiment_label,omitempty"`
	Source         string `json:"source,omitempty"`
	Count          int    `json:"count"`
}

// Stats bundles the chart series for the statistics tab.
type Stats struct {
	PressDaily      []DailyCount   `json:"press_daily"`
	MentionsDaily   []DailyCount   `json:"mentions_daily"`
	PostsDaily      []DailyCount   `json:"posts_daily"`
	PressSentiment  []LabelCount   `json:"press_sentiment"`
	SocialSentiment []LabelCount   `json:"social_sentiment"`
	PressSources    []LabelCount   `json:"press_sources"`
	TopPosts        []ActivityItem `json:"top_posts"`
}

// ScanRecord is one entry in the scan history, optionally joined with the
// report that the scan produced.
type ScanRecord struct {
	ID               int             `json:"id"`
	SubjectID        int             `json:"player_id"`
	StartedAt        string          `json:"started_at"`
	FinishedAt       string          `json:"finished_at"`
	Status           string          `json:"status"`
	PressCount       int             `json:"press_count"`
	MentionsCount    int             `json:"mentions_count"`
	PostsCount       int             `json:"posts_count"`
	AlertsCount      int             `json:"alerts_count"`
	ExecutiveSummary string          `json:"executive_summary,omitempty"`
	Topics           json.RawMessage `json:"topics,omitempty"`
	SummarySnapshot  json.RawMessage `json:"summary_snapshot,omitempty"`
}

// ImageIndex is the composite 0-100 public-image score with its component
// breakdown.
type ImageIndex struct {
	Index      float64            `json:"index"`
	Components map[string]float64 `json:"components,omitempty"`
	Total      int                `json:"total_items,omitempty"`
}

// ImageIndexPoint is one historical image-index sample.
type ImageIndexPoint struct {
	ImageIndex *float64 `json:"image_index"`
	CreatedAt  string   `json:"created_at"`
	StartedAt  string   `json:"started_at,omitempty"`
}

// PlatformSentiment is the per-platform sentiment breakdown. Press appears as
// its own pseudo-platform.
type PlatformSentiment struct {
	Platform     string   `json:"platform"`
	Count        int      `json:"count"`
	AvgSentiment *float64 `json:"avg_sentiment"`
	Positive     int      `json:"positive"`
	Neutral      int      `json:"neutral"`
	Negative     int      `json:"negative"`
}

// HourCount and DayCount form the posting-time histograms.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type DayCount struct {
	Day    string `json:"day"`
	DayNum int    `json:"day_num"`
	Count  int    `json:"count"`
}

// ActivityPeaks describes when the subject's own posts cluster.
type ActivityPeaks struct {
	Hours    []HourCount `json:"hours"`
	Days     []DayCount  `json:"days"`
	PeakHour *int        `json:"peak_hour"`
	PeakDay  *string     `json:"peak_day"`
}

// Influencer is an author ranked by how often they mention the subject.
type Influencer struct {
	Author        string   `json:"author"`
	Platform      string   `json:"platform"`
	Mentions      int      `json:"mentions"`
	TotalLikes    int      `json:"total_likes"`
	TotalRetweets int      `json:"total_retweets"`
	AvgSentiment  *float64 `json:"avg_sentiment"`
}

// Intelligence is the analyzer's risk assessment. RiskScore drives the risk
// badge (>=70 high, >=40 medium).
type Intelligence struct {
	ID             int             `json:"id"`
	SubjectID      int             `json:"player_id"`
	RiskScore      float64         `json:"risk_score"`
	Narratives     json.RawMessage `json:"narrativas,omitempty"`
	Signals        json.RawMessage `json:"signals,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

// SearchResults groups cross-table search hits.
type SearchResults struct {
	Press    []PressItem    `json:"press"`
	Social   []SocialItem   `json:"social"`
	Activity []ActivityItem `json:"activity"`
}

// PortfolioEntry is one subject in the portfolio overview.
type PortfolioEntry struct {
	Subject
	Summary          Summary     `json:"summary"`
	ImageIndex       float64     `json:"image_index"`
	ImageIndexDetail *ImageIndex `json:"image_index_detail,omitempty"`
	LastScan         *ScanRecord `json:"last_scan"`
	LastPostDate     string      `json:"last_post_date,omitempty"`
}

// ComparisonEntry is one subject's column in a cross-subject comparison.
type ComparisonEntry struct {
	Subject    Subject         `json:"player"`
	Summary    Summary         `json:"summary"`
	ImageIndex ImageIndex      `json:"image_index"`
	Topics     json.RawMessage `json:"topics,omitempty"`
	Brands     json.RawMessage `json:"brands,omitempty"`
}

// ScanComparison is a side-by-side pair of scan reports.
type ScanComparison struct {
	A json.RawMessage `json:"a"`
	B json.RawMessage `json:"b"`
}

// WeeklyReport is a generated actionable report.
type WeeklyReport struct {
	ID             int             `json:"id"`
	SubjectID      int             `json:"player_id"`
	ReportText     string          `json:"report_text"`
	Recommendation string          `json:"recommendation"`
	ImageIndex     *float64        `json:"image_index"`
	Data           json.RawMessage `json:"data,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

// SchedulerStatus reports whether automatic scans are scheduled.
type SchedulerStatus struct {
	Enabled  bool   `json:"enabled"`
	NextRun  string `json:"next_run,omitempty"`
	Interval string `json:"interval,omitempty"`
}

// Costs is the estimated external-API spend breakdown.
type Costs struct {
	Total     float64            `json:"total,omitempty"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

// RatingEntry is one match rating sample.
type RatingEntry struct {
	Date   string   `json:"date,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
	Rival  string   `json:"rival,omitempty"`
}

// Ratings pairs match ratings with aggregate performance stats.
type Ratings struct {
	Ratings []RatingEntry   `json:"ratings"`
	Stats   json.RawMessage `json:"stats"`
}

// MarketValuePoint is one market-value sample over time.
type MarketValuePoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// TrendPoint is one Google-trends style interest sample.
type TrendPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// CalendarDay is one day of the activity calendar heat map.
type CalendarDay struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Collaboration is a detected brand or peer collaboration.
type Collaboration struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Mentions int    `json:"mentions,omitempty"`
	LastSeen string `json:"last_seen,omitempty"`
}

// Health is the backend liveness response.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
