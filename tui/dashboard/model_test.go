package dashboard

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/config"
	core "github.com/mediapulse/pulse/dashboard"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := &config.Config{}
	cfg.SetDefaults()
	return New(cfg, api.NewClient(cfg.Backend))
}

func TestNextPresetCycles(t *testing.T) {
	assert.Equal(t, core.PresetWeek, nextPreset(core.PresetAll))
	assert.Equal(t, core.PresetMonth, nextPreset(core.PresetWeek))
	assert.Equal(t, core.PresetQuarter, nextPreset(core.PresetMonth))
	assert.Equal(t, core.PresetAll, nextPreset(core.PresetQuarter))

	// Custom ranges fall back to the start of the cycle.
	assert.Equal(t, core.PresetAll, nextPreset(core.PresetCustom))
}

func TestNextSeverityCycles(t *testing.T) {
	assert.Equal(t, api.SeverityHigh, nextSeverity(""))
	assert.Equal(t, api.SeverityMedium, nextSeverity(api.SeverityHigh))
	assert.Equal(t, api.SeverityLow, nextSeverity(api.SeverityMedium))
	assert.Equal(t, "", nextSeverity(api.SeverityLow))
}

func TestToggleCompareKeepsAtMostTwo(t *testing.T) {
	m := newTestModel(t)

	m.toggleCompare(1)
	m.toggleCompare(2)
	assert.Equal(t, []int{1, 2}, m.compareCursors)

	// A third selection is ignored until one is removed.
	m.toggleCompare(3)
	assert.Equal(t, []int{1, 2}, m.compareCursors)

	// Re-selecting removes.
	m.toggleCompare(1)
	assert.Equal(t, []int{2}, m.compareCursors)
	m.toggleCompare(3)
	assert.Equal(t, []int{2, 3}, m.compareCursors)
}

func TestUpdateDiscardsStaleSnapshot(t *testing.T) {
	m := newTestModel(t)

	stale := m.store.BeginLoad()
	fresh := m.store.BeginLoad()

	current, _ := m.Update(snapshotMsg{
		Gen:      fresh,
		Snapshot: core.Snapshot{Summary: api.Summary{PressCount: 10}},
	})
	m = current.(Model)
	assert.Equal(t, 10, m.store.Snapshot().Summary.PressCount)

	current, _ = m.Update(snapshotMsg{
		Gen:      stale,
		Snapshot: core.Snapshot{Summary: api.Summary{PressCount: 99}},
	})
	m = current.(Model)
	assert.Equal(t, 10, m.store.Snapshot().Summary.PressCount,
		"A superseded load batch must not overwrite fresher data")
}

func TestUpdateAlertsRefreshKeepsBadgeCurrent(t *testing.T) {
	m := newTestModel(t)

	gen := m.store.BeginLoad()
	require.True(t, m.store.Commit(gen, core.Snapshot{
		Alerts: []api.Alert{{ID: 1, Severity: api.SeverityHigh}, {ID: 2, Severity: api.SeverityLow}},
	}))

	current, _ := m.Update(alertsRefreshedMsg{
		Alerts: []api.Alert{{ID: 1, Severity: api.SeverityHigh, Read: 1}, {ID: 2, Severity: api.SeverityLow}},
	})
	m = current.(Model)

	snap := m.store.Snapshot()
	assert.Equal(t, 1, core.UnreadAlertCount(snap.Alerts))
	assert.Equal(t, 1, snap.Summary.AlertsCount)
}

func TestTabItemCountFollowsFilters(t *testing.T) {
	m := newTestModel(t)

	gen := m.store.BeginLoad()
	require.True(t, m.store.Commit(gen, core.Snapshot{
		Alerts: []api.Alert{
			{ID: 1, Severity: api.SeverityHigh},
			{ID: 2, Severity: api.SeverityLow, Read: 1},
		},
	}))

	m.tab = TabAlerts
	assert.Equal(t, 2, m.tabItemCount(m.store.Snapshot()))

	m.store.SetAlertFilter(core.AlertFilter{UnreadOnly: true})
	assert.Equal(t, 1, m.tabItemCount(m.store.Snapshot()))
}

func TestTruncateCutsOnRunes(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 10))

	got := truncate("Declaraciones polémicas tras el partido de anoche", 20)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 20, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))

	// Newlines would break single-line list rows.
	assert.Equal(t, "titular en dos líneas", truncate("titular en\ndos líneas", 30))
}
