package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/logging"
)

// Loader performs the fan-out fetch that fills a Snapshot. Every resource is
// fetched through a safe wrapper: a failure or timeout on one resource logs
// and falls back to that resource's typed default instead of failing the
// batch. The joined result is returned as a single snapshot.
type Loader struct {
	client       *api.Client
	fetchTimeout time.Duration
	pageSize     int
	log          *logrus.Entry
}

// NewLoader builds a loader. fetchTimeout bounds each individual resource
// fetch; pageSize is the first-page limit for the item lists.
func NewLoader(client *api.Client, fetchTimeout time.Duration, pageSize int) *Loader {
	return &Loader{
		client:       client,
		fetchTimeout: fetchTimeout,
		pageSize:     pageSize,
		log:          logging.NewLogger("loader"),
	}
}

// safeFetch runs one resource fetch with its own timeout. On error the
// snapshot keeps the fallback already in place.
func (l *Loader) safeFetch(ctx context.Context, wg *sync.WaitGroup, name string, fetch func(context.Context) error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, l.fetchTimeout)
		defer cancel()
		if err := fetch(fetchCtx); err != nil {
			l.log.Debugf("Fetch %s failed, using fallback: %v", name, err)
		}
	}()
}

// FullLoad fetches the complete resource superset for a subject. Used when
// entering the dashboard or switching subjects.
func (l *Loader) FullLoad(ctx context.Context, subjectID int, r DateRange) Snapshot {
	snap := Snapshot{
		Press:    []api.PressItem{},
		Social:   []api.SocialItem{},
		Activity: []api.ActivityItem{},
		Alerts:   []api.Alert{},
	}
	dateFrom, dateTo := r.Params()

	var wg sync.WaitGroup
	l.fetchRangeSensitive(ctx, &wg, &snap, subjectID, dateFrom, dateTo)
	l.fetchHistory(ctx, &wg, &snap, subjectID)
	wg.Wait()

	snap.LoadedAt = time.Now()
	return snap
}

// Reload fetches only the range-sensitive resources and carries the history
// resources over from the previous snapshot. Used on date range changes.
func (l *Loader) Reload(ctx context.Context, subjectID int, r DateRange, prev Snapshot) Snapshot {
	snap := Snapshot{
		Press:    []api.PressItem{},
		Social:   []api.SocialItem{},
		Activity: []api.ActivityItem{},
		Alerts:   []api.Alert{},

		// History resources are not range-sensitive; keep what we have.
		Scans:              prev.Scans,
		ImageIndex:         prev.ImageIndex,
		WeeklyReports:      prev.WeeklyReports,
		ImageIndexHistory:  prev.ImageIndexHistory,
		Intelligence:       prev.Intelligence,
		ActivityCalendar:   prev.ActivityCalendar,
		MarketValueHistory: prev.MarketValueHistory,
		Collaborations:     prev.Collaborations,
		TrendsHistory:      prev.TrendsHistory,
		Ratings:            prev.Ratings,
		ActivityByPlatform: prev.ActivityByPlatform,
	}
	dateFrom, dateTo := r.Params()

	var wg sync.WaitGroup
	l.fetchRangeSensitive(ctx, &wg, &snap, subjectID, dateFrom, dateTo)
	wg.Wait()

	snap.LoadedAt = time.Now()
	return snap
}

// fetchRangeSensitive schedules the resources that honor the date range,
// plus the ones the reference keeps fresh alongside them: alerts are never
// date-filtered, and the report / platform analytics reflect the last scan.
func (l *Loader) fetchRangeSensitive(ctx context.Context, wg *sync.WaitGroup, snap *Snapshot, subjectID int, dateFrom, dateTo string) {
	l.safeFetch(ctx, wg, "summary", func(ctx context.Context) error {
		out, err := l.client.Summary(ctx, subjectID, dateFrom, dateTo)
		if err == nil {
			snap.Summary = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "report", func(ctx context.Context) error {
		out, err := l.client.Report(ctx, subjectID)
		if err == nil {
			snap.Report = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "press", func(ctx context.Context) error {
		out, err := l.client.Press(ctx, subjectID, l.pageSize, 0, dateFrom, dateTo)
		if err == nil && out != nil {
			snap.Press = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "social", func(ctx context.Context) error {
		out, err := l.client.Social(ctx, subjectID, l.pageSize, 0, dateFrom, dateTo, "")
		if err == nil && out != nil {
			snap.Social = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "activity", func(ctx context.Context) error {
		out, err := l.client.Activity(ctx, subjectID, l.pageSize, 0, dateFrom, dateTo)
		if err == nil && out != nil {
			snap.Activity = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "alerts", func(ctx context.Context) error {
		out, err := l.client.Alerts(ctx, subjectID, l.pageSize, "", false)
		if err == nil && out != nil {
			snap.Alerts = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "stats", func(ctx context.Context) error {
		out, err := l.client.Stats(ctx, subjectID, dateFrom, dateTo)
		if err == nil {
			snap.Stats = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "sentiment-by-platform", func(ctx context.Context) error {
		out, err := l.client.SentimentByPlatform(ctx, subjectID)
		if err == nil {
			snap.SentimentByPlatform = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "top-influencers", func(ctx context.Context) error {
		out, err := l.client.TopInfluencers(ctx, subjectID, 10)
		if err == nil {
			snap.TopInfluencers = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "activity-peaks", func(ctx context.Context) error {
		out, err := l.client.ActivityPeaks(ctx, subjectID)
		if err == nil {
			snap.ActivityPeaks = out
		}
		return err
	})
}

// fetchHistory schedules the resources only the full load needs.
func (l *Loader) fetchHistory(ctx context.Context, wg *sync.WaitGroup, snap *Snapshot, subjectID int) {
	l.safeFetch(ctx, wg, "scans", func(ctx context.Context) error {
		out, err := l.client.Scans(ctx, subjectID, 0)
		if err == nil {
			snap.Scans = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "image-index", func(ctx context.Context) error {
		out, err := l.client.ImageIndex(ctx, subjectID)
		if err == nil {
			snap.ImageIndex = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "weekly-reports", func(ctx context.Context) error {
		out, err := l.client.WeeklyReports(ctx, subjectID, 5)
		if err == nil {
			snap.WeeklyReports = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "image-index-history", func(ctx context.Context) error {
		out, err := l.client.ImageIndexHistory(ctx, subjectID, 30)
		if err == nil {
			snap.ImageIndexHistory = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "intelligence", func(ctx context.Context) error {
		out, err := l.client.Intelligence(ctx, subjectID)
		if err == nil {
			snap.Intelligence = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "activity-calendar", func(ctx context.Context) error {
		out, err := l.client.ActivityCalendar(ctx, subjectID)
		if err == nil {
			snap.ActivityCalendar = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "market-value-history", func(ctx context.Context) error {
		out, err := l.client.MarketValueHistory(ctx, subjectID)
		if err == nil {
			snap.MarketValueHistory = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "collaborations", func(ctx context.Context) error {
		out, err := l.client.Collaborations(ctx, subjectID)
		if err == nil {
			snap.Collaborations = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "trends-history", func(ctx context.Context) error {
		out, err := l.client.TrendsHistory(ctx, subjectID)
		if err == nil {
			snap.TrendsHistory = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "ratings", func(ctx context.Context) error {
		out, err := l.client.Ratings(ctx, subjectID)
		if err == nil {
			snap.Ratings = out
		}
		return err
	})
	l.safeFetch(ctx, wg, "activity-by-platform", func(ctx context.Context) error {
		out, err := l.client.ActivityByPlatform(ctx, subjectID)
		if err == nil {
			snap.ActivityByPlatform = out
		}
		return err
	})
}
