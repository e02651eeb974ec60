package dashboard

import (
	"sync"
	"time"

	"github.com/mediapulse/pulse/api"
)

// Snapshot is one immutable batch of dashboard data. A snapshot is built off
// to the side by the loader and swapped in whole, so renderers never see a
// half-loaded mix of resources.
type Snapshot struct {
	Summary             api.Summary
	Report              *api.Report
	Press               []api.PressItem
	Social              []api.SocialItem
	Activity            []api.ActivityItem
	Alerts              []api.Alert
	Stats               api.Stats
	Scans               []api.ScanRecord
	ImageIndex          *api.ImageIndex
	WeeklyReports       []api.WeeklyReport
	SentimentByPlatform []api.PlatformSentiment
	ActivityPeaks       *api.ActivityPeaks
	TopInfluencers      []api.Influencer
	ImageIndexHistory   []api.ImageIndexPoint
	Intelligence        *api.Intelligence
	ActivityCalendar    []api.CalendarDay
	MarketValueHistory  []api.MarketValuePoint
	Collaborations      []api.Collaboration
	TrendsHistory       []api.TrendPoint
	Ratings             api.Ratings
	ActivityByPlatform  map[string]int

	LoadedAt time.Time
}

// AlertFilter narrows the alerts tab.
type AlertFilter struct {
	Severity   string
	UnreadOnly bool
}

// Pagination tracks the per-list offset cursors.
type Pagination struct {
	Press    int
	Social   int
	Activity int
}

// Store owns all mutable dashboard state for one session: the selected
// subject, the current snapshot, filters, pagination and the date range.
// All access goes through methods; the zero value is ready to use.
//
// Loads are guarded by a generation counter: BeginLoad hands out a token and
// Commit applies a finished snapshot only when no newer load has started in
// the meantime, so a slow batch for a previous subject or range can never
// overwrite fresher data.
type Store struct {
	mu sync.RWMutex

	subject    *api.Subject
	snapshot   Snapshot
	dateRange  DateRange
	alerts     AlertFilter
	platform   string
	pagination Pagination
	generation uint64
}

// NewStore returns an empty store with an unbounded date range.
func NewStore() *Store {
	return &Store{dateRange: AllRange()}
}

// BeginLoad marks the start of a load batch and returns its generation token.
func (s *Store) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// Commit installs a finished snapshot if gen is still the newest load.
// Returns false when the batch was superseded and discarded.
func (s *Store) Commit(gen uint64, snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.snapshot = snap
	return true
}

// Snapshot returns the current snapshot. The contents are shared; treat them
// as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// SetSubject switches the store to a new subject, dropping everything that
// belonged to the previous one.
func (s *Store) SetSubject(subject *api.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subject = subject
	s.snapshot = Snapshot{}
	s.dateRange = AllRange()
	s.alerts = AlertFilter{}
	s.platform = ""
	s.pagination = Pagination{}
}

// Subject returns the selected subject, nil before setup completes.
func (s *Store) Subject() *api.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subject
}

// SubjectID returns the selected subject's id, 0 when none is selected.
func (s *Store) SubjectID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.subject == nil {
		return 0
	}
	return s.subject.ID
}

// SetDateRange applies a new range and resets pagination. Range changes
// drive a partial reload, not a full one.
func (s *Store) SetDateRange(r DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dateRange = r
	s.pagination = Pagination{}
}

// DateRange returns the active range.
func (s *Store) DateRange() DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dateRange
}

// SetAlertFilter updates the alerts tab filter.
func (s *Store) SetAlertFilter(f AlertFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = f
}

// AlertFilter returns the active alerts filter.
func (s *Store) AlertFilter() AlertFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

// SetPlatformFilter narrows the social tab to one platform, empty for all.
func (s *Store) SetPlatformFilter(platform string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.platform = platform
}

// PlatformFilter returns the active platform filter.
func (s *Store) PlatformFilter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.platform
}

// Pagination returns the current offsets.
func (s *Store) Pagination() Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// AdvancePress moves the press cursor forward one page and returns the new
// offset.
func (s *Store) AdvancePress(pageSize int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagination.Press += pageSize
	return s.pagination.Press
}

// AdvanceSocial moves the social cursor forward one page.
func (s *Store) AdvanceSocial(pageSize int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagination.Social += pageSize
	return s.pagination.Social
}

// AdvanceActivity moves the activity cursor forward one page.
func (s *Store) AdvanceActivity(pageSize int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pagination.Activity += pageSize
	return s.pagination.Activity
}

// AppendPress adds a fetched page to the press list.
func (s *Store) AppendPress(items []api.PressItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Press = append(s.snapshot.Press, items...)
}

// AppendSocial adds a fetched page to the social list.
func (s *Store) AppendSocial(items []api.SocialItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Social = append(s.snapshot.Social, items...)
}

// AppendActivity adds a fetched page to the activity list.
func (s *Store) AppendActivity(items []api.ActivityItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Activity = append(s.snapshot.Activity, items...)
}

// ReplaceAlerts swaps in a freshly fetched alerts list without touching the
// rest of the snapshot. Mark-read and dismiss refresh the badge this way
// instead of reloading the dashboard.
func (s *Store) ReplaceAlerts(alerts []api.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Alerts = alerts
	s.snapshot.Summary.AlertsCount = countUnread(alerts)
}

func countUnread(alerts []api.Alert) int {
	n := 0
	for _, a := range alerts {
		if !a.IsRead() {
			n++
		}
	}
	return n
}
