package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapulse/pulse/api"
)

func TestStoreGenerationGuard(t *testing.T) {
	store := NewStore()

	older := store.BeginLoad()
	newer := store.BeginLoad()

	// The batch that started second wins, no matter which finishes first.
	assert.True(t, store.Commit(newer, Snapshot{Summary: api.Summary{PressCount: 2}}))
	assert.False(t, store.Commit(older, Snapshot{Summary: api.Summary{PressCount: 1}}),
		"stale batch must be discarded")

	assert.Equal(t, 2, store.Snapshot().Summary.PressCount)
}

func TestStoreSubjectSwitchResetsEverything(t *testing.T) {
	store := NewStore()
	gen := store.BeginLoad()
	require.True(t, store.Commit(gen, Snapshot{Press: []api.PressItem{{ID: 1}}}))

	store.SetDateRange(CustomRange("2025-03-01", "2025-03-07"))
	store.SetAlertFilter(AlertFilter{Severity: api.SeverityHigh})
	store.SetPlatformFilter("twitter")
	store.AdvancePress(50)

	store.SetSubject(&api.Subject{ID: 9, Name: "Nuevo"})

	assert.Empty(t, store.Snapshot().Press)
	assert.True(t, store.DateRange().IsAll())
	assert.Equal(t, AlertFilter{}, store.AlertFilter())
	assert.Equal(t, "", store.PlatformFilter())
	assert.Equal(t, Pagination{}, store.Pagination())
	assert.Equal(t, 9, store.SubjectID())
}

func TestStoreDateRangeResetsPagination(t *testing.T) {
	store := NewStore()
	store.AdvancePress(50)
	store.AdvanceSocial(50)
	require.Equal(t, 50, store.Pagination().Press)

	store.SetDateRange(CustomRange("2025-03-01", ""))

	assert.Equal(t, Pagination{}, store.Pagination())
}

func TestStorePaginationAppend(t *testing.T) {
	store := NewStore()
	gen := store.BeginLoad()
	require.True(t, store.Commit(gen, Snapshot{Press: []api.PressItem{{ID: 1}}}))

	offset := store.AdvancePress(50)
	assert.Equal(t, 50, offset)
	store.AppendPress([]api.PressItem{{ID: 2}, {ID: 3}})

	press := store.Snapshot().Press
	require.Len(t, press, 3)
	assert.Equal(t, 3, press[2].ID)
}

func TestStoreAlertBadgeUpdatesWithoutReload(t *testing.T) {
	store := NewStore()
	gen := store.BeginLoad()
	alerts := []api.Alert{
		{ID: 1, Severity: api.SeverityHigh, Read: 0},
		{ID: 2, Severity: api.SeverityLow, Read: 0},
	}
	require.True(t, store.Commit(gen, Snapshot{
		Alerts:  alerts,
		Summary: api.Summary{AlertsCount: 2, PressCount: 12},
	}))
	require.Equal(t, 2, UnreadAlertCount(store.Snapshot().Alerts))

	// Mark-read refetches only the alerts list; everything else stands.
	store.ReplaceAlerts([]api.Alert{
		{ID: 1, Severity: api.SeverityHigh, Read: 1},
		{ID: 2, Severity: api.SeverityLow, Read: 0},
	})

	snap := store.Snapshot()
	assert.Equal(t, 1, UnreadAlertCount(snap.Alerts))
	assert.Equal(t, 1, snap.Summary.AlertsCount)
	assert.Equal(t, 12, snap.Summary.PressCount, "rest of the snapshot untouched")
}
