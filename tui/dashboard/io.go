package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mediapulse/pulse/api"
	core "github.com/mediapulse/pulse/dashboard"
)

// scanProgressMsg carries a status update while a scan runs.
type scanProgressMsg struct {
	Status api.ScanStatus
}

// scanDoneMsg is sent once when the backend reports the scan finished.
type scanDoneMsg struct {
	SubjectID int
}

// snapshotMsg carries a finished load batch with its generation token.
type snapshotMsg struct {
	Gen      uint64
	Snapshot core.Snapshot
	Subject  *api.Subject
	Partial  bool
}

// alertsRefreshedMsg carries a re-fetched alerts list after mark-read or
// dismiss.
type alertsRefreshedMsg struct {
	Alerts []api.Alert
	Err    error
}

// moreItemsMsg carries a fetched pagination page for one list.
type moreItemsMsg struct {
	Tab      Tab
	Press    []api.PressItem
	Social   []api.SocialItem
	Activity []api.ActivityItem
	Err      error
}

// searchResultsMsg carries global search hits.
type searchResultsMsg struct {
	Query   string
	Results api.SearchResults
	Err     error
}

// portfolioMsg carries the portfolio overview screen data.
type portfolioMsg struct {
	Entries    []api.PortfolioEntry
	Sparklines map[string][]float64
	Err        error
}

// comparisonMsg carries either a scan or a subject comparison.
type comparisonMsg struct {
	Scans    *api.ScanComparison
	Subjects []api.ComparisonEntry
	Err      error
}

// sideInfoMsg carries the best-effort indicator fetches. Errors are
// swallowed; missing info just hides the indicator.
type sideInfoMsg struct {
	Scheduler *api.SchedulerStatus
	LastScan  *api.ScanRecord
	Costs     *api.Costs
}

// scanStartedMsg reports the outcome of a scan start request.
type scanStartedMsg struct {
	Err error
}

// errMsg is a generic failure surfaced on the status line.
type errMsg struct {
	Err error
}

// configReloadMsg is sent when the config file changed on disk.
type configReloadMsg struct{}

// ConfigReloaded is the message the config watcher sends into the program
// when the config file changes on disk.
func ConfigReloaded() tea.Msg {
	return configReloadMsg{}
}

// listenPollEvents forwards the next poller callback into the program.
// Re-issued after every received event.
func listenPollEvents(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// fullLoadCmd runs a complete load batch for a subject.
func (m Model) fullLoadCmd(subjectID int) tea.Cmd {
	gen := m.store.BeginLoad()
	r := m.store.DateRange()
	return func() tea.Msg {
		ctx := context.Background()
		var subject *api.Subject
		if s, err := m.client.GetSubject(ctx, subjectID); err == nil {
			subject = &s
		}
		snap := m.loader.FullLoad(ctx, subjectID, r)
		return snapshotMsg{Gen: gen, Snapshot: snap, Subject: subject}
	}
}

// reloadCmd runs a partial, range-sensitive reload.
func (m Model) reloadCmd(subjectID int, r core.DateRange) tea.Cmd {
	gen := m.store.BeginLoad()
	prev := m.store.Snapshot()
	return func() tea.Msg {
		snap := m.loader.Reload(context.Background(), subjectID, r, prev)
		return snapshotMsg{Gen: gen, Snapshot: snap, Partial: true}
	}
}

// refreshAlertsCmd re-fetches only the alerts list.
func (m Model) refreshAlertsCmd(subjectID int) tea.Cmd {
	return func() tea.Msg {
		alerts, err := m.client.Alerts(context.Background(), subjectID, m.pageSize, "", false)
		return alertsRefreshedMsg{Alerts: alerts, Err: err}
	}
}

// markReadCmd marks one alert read, then refreshes the list.
func (m Model) markReadCmd(subjectID, alertID int) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.MarkAlertRead(context.Background(), alertID); err != nil {
			return alertsRefreshedMsg{Err: err}
		}
		alerts, err := m.client.Alerts(context.Background(), subjectID, m.pageSize, "", false)
		return alertsRefreshedMsg{Alerts: alerts, Err: err}
	}
}

// dismissCmd deletes one alert, then refreshes the list.
func (m Model) dismissCmd(subjectID, alertID int) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.DismissAlert(context.Background(), alertID); err != nil {
			return alertsRefreshedMsg{Err: err}
		}
		alerts, err := m.client.Alerts(context.Background(), subjectID, m.pageSize, "", false)
		return alertsRefreshedMsg{Alerts: alerts, Err: err}
	}
}

// loadMoreCmd fetches the next page for the active list tab.
func (m Model) loadMoreCmd(tab Tab, subjectID int) tea.Cmd {
	r := m.store.DateRange()
	dateFrom, dateTo := r.Params()
	switch tab {
	case TabPress:
		offset := m.store.AdvancePress(m.pageSize)
		return func() tea.Msg {
			items, err := m.client.Press(context.Background(), subjectID, m.pageSize, offset, dateFrom, dateTo)
			return moreItemsMsg{Tab: TabPress, Press: items, Err: err}
		}
	case TabSocial:
		offset := m.store.AdvanceSocial(m.pageSize)
		return func() tea.Msg {
			items, err := m.client.Social(context.Background(), subjectID, m.pageSize, offset, dateFrom, dateTo, "")
			return moreItemsMsg{Tab: TabSocial, Social: items, Err: err}
		}
	case TabActivity:
		offset := m.store.AdvanceActivity(m.pageSize)
		return func() tea.Msg {
			items, err := m.client.Activity(context.Background(), subjectID, m.pageSize, offset, dateFrom, dateTo)
			return moreItemsMsg{Tab: TabActivity, Activity: items, Err: err}
		}
	}
	return nil
}

// searchCmd runs a global search.
func (m Model) searchCmd(subjectID int, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.client.Search(context.Background(), subjectID, query, 30)
		return searchResultsMsg{Query: query, Results: results, Err: err}
	}
}

// portfolioCmd loads the portfolio screen. Sparkline failures are tolerated.
func (m Model) portfolioCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := m.client.Portfolio(ctx)
		if err != nil {
			return portfolioMsg{Err: err}
		}
		sparklines, err := m.client.PortfolioSparklines(ctx)
		if err != nil {
			sparklines = nil
		}
		return portfolioMsg{Entries: entries, Sparklines: sparklines}
	}
}

// compareScansCmd loads a two-scan comparison.
func (m Model) compareScansCmd(scanA, scanB int) tea.Cmd {
	return func() tea.Msg {
		cmp, err := m.client.CompareScans(context.Background(), scanA, scanB)
		if err != nil {
			return comparisonMsg{Err: err}
		}
		return comparisonMsg{Scans: &cmp}
	}
}

// sideInfoCmd fetches the scheduler/last-scan/costs indicators. All three
// are best-effort.
func (m Model) sideInfoCmd(subjectID int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var msg sideInfoMsg
		if s, err := m.client.SchedulerStatus(ctx); err == nil {
			msg.Scheduler = &s
		}
		if scan, err := m.client.LastScan(ctx, subjectID); err == nil {
			msg.LastScan = scan
		}
		if costs, err := m.client.Costs(ctx); err == nil {
			msg.Costs = &costs
		}
		return msg
	}
}

// startScanCmd asks the backend to scan a subject.
func (m Model) startScanCmd(input api.SubjectInput) tea.Cmd {
	return func() tea.Msg {
		return scanStartedMsg{Err: m.client.StartScan(context.Background(), input)}
	}
}
