package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mediapulse/pulse/api"
	core "github.com/mediapulse/pulse/dashboard"
	"github.com/mediapulse/pulse/errors"
	"github.com/mediapulse/pulse/state"
)

// datePresets is the cycle order for the date range key.
var datePresets = []string{core.PresetAll, core.PresetWeek, core.PresetMonth, core.PresetQuarter}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanProgressMsg:
		m.scanProgress = msg.Status.Progress
		return m, listenPollEvents(m.pollEvents)

	case scanDoneMsg:
		if err := state.SetLastSubject(msg.SubjectID); err != nil {
			m.log.Warnf("Failed to persist last subject: %v", err)
		}
		m.screen = ScreenDashboard
		m.loading = true
		m.statusErr = nil
		return m, tea.Batch(
			m.fullLoadCmd(msg.SubjectID),
			m.sideInfoCmd(msg.SubjectID),
			listenPollEvents(m.pollEvents),
		)

	case snapshotMsg:
		if msg.Subject != nil {
			m.store.SetSubject(msg.Subject)
		}
		if !m.store.Commit(msg.Gen, msg.Snapshot) {
			m.log.Debug("Discarding superseded load batch")
			return m, nil
		}
		m.loading = false
		return m, nil

	case alertsRefreshedMsg:
		if msg.Err != nil {
			m.statusErr = msg.Err
			return m, nil
		}
		m.store.ReplaceAlerts(msg.Alerts)
		return m, nil

	case moreItemsMsg:
		if msg.Err != nil {
			m.statusErr = msg.Err
			return m, nil
		}
		switch msg.Tab {
		case TabPress:
			m.store.AppendPress(msg.Press)
		case TabSocial:
			m.store.AppendSocial(msg.Social)
		case TabActivity:
			m.store.AppendActivity(msg.Activity)
		}
		return m, nil

	case searchResultsMsg:
		if msg.Err != nil {
			m.statusErr = msg.Err
			return m, nil
		}
		results := msg.Results
		m.searchResults = &results
		return m, nil

	case portfolioMsg:
		m.loading = false
		if msg.Err != nil {
			m.statusErr = msg.Err
			m.screen = ScreenDashboard
			return m, nil
		}
		m.portfolio = msg.Entries
		m.sparklines = msg.Sparklines
		m.screen = ScreenPortfolio
		return m, nil

	case comparisonMsg:
		m.loading = false
		if msg.Err != nil {
			m.statusErr = msg.Err
			return m, nil
		}
		m.comparison = msg.Scans
		m.screen = ScreenComparison
		return m, nil

	case sideInfoMsg:
		m.scheduler = msg.Scheduler
		m.lastScan = msg.LastScan
		m.costs = msg.Costs
		return m, nil

	case scanStartedMsg:
		if msg.Err != nil {
			m.statusErr = msg.Err
			if m.store.SubjectID() != 0 {
				m.screen = ScreenDashboard
			} else {
				m.screen = ScreenSetup
			}
			return m, nil
		}
		m.screen = ScreenScanning
		m.scanProgress = "Starting scan..."
		m.startPolling()
		return m, nil

	case configReloadMsg:
		m.log.Info("Configuration file changed, settings apply on restart")
		return m, nil

	case errMsg:
		m.statusErr = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenSetup:
		return m.handleSetupKey(msg)
	case ScreenScanning:
		return m.handleScanningKey(msg)
	case ScreenDashboard:
		return m.handleDashboardKey(msg)
	case ScreenPortfolio:
		return m.handlePortfolioKey(msg)
	case ScreenComparison:
		return m.handleComparisonKey(msg)
	}
	return m, nil
}

func (m Model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		m.inputs[m.focusField].Blur()
		m.focusField = (m.focusField + 1) % fieldCount
		m.inputs[m.focusField].Focus()
		return m, nil

	case "shift+tab", "up":
		m.inputs[m.focusField].Blur()
		m.focusField = (m.focusField - 1 + fieldCount) % fieldCount
		m.inputs[m.focusField].Focus()
		return m, nil

	case "enter":
		input := m.setupInput()
		if strings.TrimSpace(input.Name) == "" {
			m.statusErr = errors.InvalidInput("subject name is required")
			return m, nil
		}
		m.statusErr = nil
		m.screen = ScreenScanning
		m.scanProgress = "Starting scan..."
		return m, m.startScanCmd(input)
	}

	var cmd tea.Cmd
	m.inputs[m.focusField], cmd = m.inputs[m.focusField].Update(msg)
	return m, cmd
}

func (m Model) handleScanningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.poller.Stop()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal states capture all input first.
	if m.confirmDismiss != nil {
		return m.handleConfirmKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	subjectID := m.store.SubjectID()
	snap := m.store.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.poller.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab - 1 + tabCount) % tabCount
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.tab] > 0 {
			m.cursor[m.tab]--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.tab] < m.tabItemCount(snap)-1 {
			m.cursor[m.tab]++
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.reloadCmd(subjectID, m.store.DateRange())

	case key.Matches(msg, m.keys.CycleDate):
		next := nextPreset(m.store.DateRange().Preset)
		r, err := core.PresetRange(next, timeNow())
		if err != nil {
			m.statusErr = err
			return m, nil
		}
		m.store.SetDateRange(r)
		m.cursor = make(map[Tab]int)
		m.loading = true
		return m, m.reloadCmd(subjectID, r)

	case key.Matches(msg, m.keys.LoadMore):
		if m.tab == TabPress || m.tab == TabSocial || m.tab == TabActivity {
			return m, m.loadMoreCmd(m.tab, subjectID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchResults = nil
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.MarkRead):
		if m.tab == TabAlerts {
			if alert := m.selectedAlert(snap); alert != nil && !alert.IsRead() {
				return m, m.markReadCmd(subjectID, alert.ID)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if m.tab == TabAlerts {
			if alert := m.selectedAlert(snap); alert != nil {
				m.confirmDismiss = alert
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Unread):
		if m.tab == TabAlerts {
			f := m.store.AlertFilter()
			f.UnreadOnly = !f.UnreadOnly
			m.store.SetAlertFilter(f)
			m.cursor[TabAlerts] = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Severity):
		if m.tab == TabAlerts {
			f := m.store.AlertFilter()
			f.Severity = nextSeverity(f.Severity)
			m.store.SetAlertFilter(f)
			m.cursor[TabAlerts] = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Portfolio):
		m.loading = true
		return m, m.portfolioCmd()

	case key.Matches(msg, m.keys.Compare):
		if m.tab == TabHistory && len(m.compareCursors) == 2 {
			m.loading = true
			return m, m.compareScansCmd(m.compareCursors[0], m.compareCursors[1])
		}
		return m, nil

	case key.Matches(msg, m.keys.Rescan):
		subject := m.store.Subject()
		if subject == nil {
			return m, nil
		}
		m.screen = ScreenScanning
		m.scanProgress = "Starting scan..."
		return m, m.startScanCmd(api.SubjectInput{
			Name:            subject.Name,
			Twitter:         subject.Twitter,
			Instagram:       subject.Instagram,
			TikTok:          subject.TikTok,
			TransfermarktID: subject.TransfermarktID,
			Club:            subject.Club,
		})
	}

	// History tab: space toggles a scan for comparison.
	if m.tab == TabHistory && msg.String() == " " {
		if scan := m.selectedScan(snap); scan != nil {
			m.toggleCompare(scan.ID)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	alert := m.confirmDismiss
	m.confirmDismiss = nil
	switch msg.String() {
	case "y", "Y":
		return m, m.dismissCmd(m.store.SubjectID(), alert.ID)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchResults = nil
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if len(query) < 2 {
			return m, nil
		}
		return m, m.searchCmd(m.store.SubjectID(), query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handlePortfolioKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Portfolio):
		m.screen = ScreenDashboard
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor[tabCount] > 0 {
			m.cursor[tabCount]--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor[tabCount] < len(m.portfolio)-1 {
			m.cursor[tabCount]++
		}
		return m, nil
	}

	if msg.String() == "enter" {
		idx := m.cursor[tabCount]
		if idx < len(m.portfolio) {
			entry := m.portfolio[idx]
			m.screen = ScreenDashboard
			m.loading = true
			return m, func() tea.Msg { return scanDoneMsg{SubjectID: entry.ID} }
		}
	}
	return m, nil
}

func (m Model) handleComparisonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Compare):
		m.screen = ScreenDashboard
		m.comparison = nil
		m.compareCursors = nil
		return m, nil
	}
	return m, nil
}

// tabItemCount returns how many rows the active tab's list has.
func (m Model) tabItemCount(snap core.Snapshot) int {
	switch m.tab {
	case TabPress:
		return len(snap.Press)
	case TabSocial:
		return len(core.FilterSocialByPlatform(snap.Social, m.store.PlatformFilter()))
	case TabActivity:
		return len(snap.Activity)
	case TabAlerts:
		return len(core.FilterAlerts(snap.Alerts, m.store.AlertFilter()))
	case TabHistory:
		return len(snap.Scans)
	case TabReports:
		return len(snap.WeeklyReports)
	}
	return 0
}

// selectedAlert resolves the cursor on the filtered alerts list.
func (m Model) selectedAlert(snap core.Snapshot) *api.Alert {
	filtered := core.FilterAlerts(snap.Alerts, m.store.AlertFilter())
	idx := m.cursor[TabAlerts]
	if idx < 0 || idx >= len(filtered) {
		return nil
	}
	return &filtered[idx]
}

// selectedScan resolves the cursor on the history list.
func (m Model) selectedScan(snap core.Snapshot) *api.ScanRecord {
	idx := m.cursor[TabHistory]
	if idx < 0 || idx >= len(snap.Scans) {
		return nil
	}
	return &snap.Scans[idx]
}

// toggleCompare adds or removes a scan id from the comparison selection,
// keeping at most two.
func (m *Model) toggleCompare(scanID int) {
	for i, id := range m.compareCursors {
		if id == scanID {
			m.compareCursors = append(m.compareCursors[:i], m.compareCursors[i+1:]...)
			return
		}
	}
	if len(m.compareCursors) < 2 {
		m.compareCursors = append(m.compareCursors, scanID)
	}
}

func nextPreset(current string) string {
	for i, p := range datePresets {
		if p == current {
			return datePresets[(i+1)%len(datePresets)]
		}
	}
	return datePresets[0]
}

func nextSeverity(current string) string {
	switch current {
	case "":
		return api.SeverityHigh
	case api.SeverityHigh:
		return api.SeverityMedium
	case api.SeverityMedium:
		return api.SeverityLow
	default:
		return ""
	}
}
