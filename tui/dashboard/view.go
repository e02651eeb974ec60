package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mediapulse/pulse/api"
	core "github.com/mediapulse/pulse/dashboard"
	"github.com/mediapulse/pulse/tui/theme"
)

// View renders the active screen.
func (m Model) View() string {
	switch m.screen {
	case ScreenSetup:
		return m.viewSetup()
	case ScreenScanning:
		return m.viewScanning()
	case ScreenPortfolio:
		return m.viewPortfolio()
	case ScreenComparison:
		return m.viewComparison()
	default:
		return m.viewDashboard()
	}
}

func (m Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("MediaPulse"))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Title.Render("Track a new subject"))
	b.WriteString("\n\n")

	labels := []string{"Name", "Twitter", "Instagram", "Club"}
	for i, input := range m.inputs {
		label := labels[i]
		if i == m.focusField {
			b.WriteString(m.theme.Accent.Render("> " + label))
		} else {
			b.WriteString(m.theme.Muted.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.statusErr != nil {
		b.WriteString(m.theme.Error.Render(m.statusErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render("tab: next field • enter: start scan • esc: quit"))
	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("MediaPulse"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s Scanning...", m.spinner.View()))
	b.WriteString("\n\n")
	if m.scanProgress != "" {
		b.WriteString(m.theme.Info.Render(m.scanProgress))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("q: quit"))
	return b.String()
}

func (m Model) viewDashboard() string {
	snap := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n")
	b.WriteString(m.renderTabBar(snap))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.renderSearch())
	} else {
		b.WriteString(core.SafeRender(tabNames[m.tab], m.tabRenderer(), snap))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// tabRenderer picks the render function for the active tab. Each renderer is
// invoked through SafeRender so a panic in one tab cannot take the program
// down.
func (m Model) tabRenderer() core.Renderer {
	switch m.tab {
	case TabIntelligence:
		return m.renderIntelligence
	case TabPress:
		return m.renderPress
	case TabSocial:
		return m.renderSocial
	case TabActivity:
		return m.renderActivity
	case TabAlerts:
		return m.renderAlerts
	case TabHistory:
		return m.renderHistory
	case TabPerformance:
		return m.renderPerformance
	case TabReports:
		return m.renderReports
	}
	return func(core.Snapshot) string { return "" }
}

func (m Model) renderHeader(snap core.Snapshot) string {
	subject := m.store.Subject()
	name := "—"
	if subject != nil {
		name = subject.Name
		if subject.Club != "" {
			name += " · " + subject.Club
		}
	}

	parts := []string{m.theme.Header.Render("MediaPulse"), m.theme.Bold.Render(name)}

	parts = append(parts, m.theme.Muted.Render(rangeLabel(m.store.DateRange())))

	if unread := core.UnreadAlertCount(snap.Alerts); unread > 0 {
		parts = append(parts, m.theme.Warning.Render(fmt.Sprintf("● %d unread", unread)))
	}

	if snap.Intelligence != nil {
		parts = append(parts, m.renderRiskBadge(snap.Intelligence.RiskScore))
	}

	if m.lastScan != nil && m.lastScan.FinishedAt != "" {
		parts = append(parts, m.theme.Muted.Render("scanned "+core.TimeAgo(m.lastScan.FinishedAt, time.Now())))
	}
	if m.scheduler != nil && m.scheduler.Enabled {
		parts = append(parts, m.theme.Info.Render("auto-scan on"))
	}
	if m.costs != nil && m.costs.Total > 0 {
		parts = append(parts, m.theme.Muted.Render(fmt.Sprintf("$%.2f", m.costs.Total)))
	}
	if m.loading {
		parts = append(parts, m.spinner.View()+" loading")
	}

	return strings.Join(parts, "  ")
}

func (m Model) renderRiskBadge(score float64) string {
	label := fmt.Sprintf("risk %.0f", score)
	switch core.RiskLevelFor(score) {
	case core.RiskHigh:
		return m.theme.SeverityHigh.Render(label)
	case core.RiskMedium:
		return m.theme.SeverityMedium.Render(label)
	default:
		return m.theme.SeverityLow.Render(label)
	}
}

func (m Model) renderTabBar(snap core.Snapshot) string {
	tabs := make([]string, 0, int(tabCount))
	for t := Tab(0); t < tabCount; t++ {
		label := tabNames[t]
		if t == TabAlerts {
			if unread := core.UnreadAlertCount(snap.Alerts); unread > 0 {
				label = fmt.Sprintf("%s(%d)", label, unread)
			}
		}
		if t == m.tab {
			tabs = append(tabs, m.theme.Selected.Render(" "+label+" "))
		} else {
			tabs = append(tabs, m.theme.Muted.Render(" "+label+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFooter() string {
	if m.confirmDismiss != nil {
		return m.theme.Warning.Render(
			fmt.Sprintf("Dismiss alert %q? (y/n)", m.confirmDismiss.Title))
	}
	if m.statusErr != nil {
		return m.theme.Error.Render(m.statusErr.Error())
	}

	var b strings.Builder
	for i, binding := range m.keys.ShortHelp() {
		if i > 0 {
			b.WriteString(" • ")
		}
		b.WriteString(binding.Help().Key + " " + binding.Help().Desc)
	}
	return m.theme.Muted.Render(b.String())
}

func (m Model) renderIntelligence(snap core.Snapshot) string {
	var b strings.Builder

	// Headline counters, with deltas versus the previous scan when known.
	deltas := summaryDeltas(snap.Scans)
	cards := make([]string, 0, 4)
	for _, card := range core.SummaryCards(snap.Summary, deltas) {
		body := fmt.Sprintf("%s\n%s", m.theme.Muted.Render(card.Label), m.theme.Bold.Render(fmt.Sprintf("%d", card.Value)))
		if card.Delta != nil && *card.Delta != 0 {
			if *card.Delta > 0 {
				body += m.theme.Success.Render(fmt.Sprintf(" +%d", *card.Delta))
			} else {
				body += m.theme.Error.Render(fmt.Sprintf(" %d", *card.Delta))
			}
		}
		cards = append(cards, m.theme.Box.Render(body))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	if snap.ImageIndex != nil {
		b.WriteString(m.theme.Title.Render("Image index"))
		b.WriteString(fmt.Sprintf("  %s", m.theme.Bold.Render(fmt.Sprintf("%.1f", snap.ImageIndex.Index))))
		if trend := core.ImageIndexTrend(snap.ImageIndexHistory); trend != 0 {
			if trend > 0 {
				b.WriteString(m.theme.Success.Render(fmt.Sprintf(" ▲ %.1f", trend)))
			} else {
				b.WriteString(m.theme.Error.Render(fmt.Sprintf(" ▼ %.1f", -trend)))
			}
		}
		if line := imageIndexSparkline(snap.ImageIndexHistory); line != "" {
			b.WriteString("  " + m.theme.Accent.Render(line))
		}
		b.WriteString("\n\n")
	}

	if snap.Intelligence != nil {
		b.WriteString(m.theme.Title.Render("Risk assessment"))
		b.WriteString("  " + m.renderRiskBadge(snap.Intelligence.RiskScore))
		b.WriteString("\n")
		if snap.Intelligence.Recommendation != "" {
			b.WriteString(snap.Intelligence.Recommendation)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if snap.Report != nil && snap.Report.ExecutiveSummary != "" {
		b.WriteString(m.theme.Title.Render("Executive summary"))
		b.WriteString("\n")
		b.WriteString(snap.Report.ExecutiveSummary)
		b.WriteString("\n\n")
	}

	if rows := core.PlatformBreakdown(snap.SentimentByPlatform); len(rows) > 0 {
		b.WriteString(m.theme.Title.Render("Sentiment by platform"))
		b.WriteString("\n")
		for _, row := range rows {
			avg := "—"
			if row.AvgSentiment != nil {
				avg = fmt.Sprintf("%.2f", *row.AvgSentiment)
			}
			b.WriteString(fmt.Sprintf("  %-12s %4d items  avg %s  +%d/~%d/-%d\n",
				row.Platform, row.Count, avg, row.Positive, row.Neutral, row.Negative))
		}
		b.WriteString("\n")
	}

	if len(snap.TopInfluencers) > 0 {
		b.WriteString(m.theme.Title.Render("Top influencers"))
		b.WriteString("\n")
		for i, inf := range snap.TopInfluencers {
			if i >= 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  %-20s %-10s %d mentions, %d likes\n",
				inf.Author, inf.Platform, inf.Mentions, inf.TotalLikes))
		}
	}

	if b.Len() == 0 {
		return m.theme.Muted.Render("No data yet. Press R to reload or r to rescan.")
	}
	return b.String()
}

func (m Model) renderPress(snap core.Snapshot) string {
	if len(snap.Press) == 0 {
		return m.theme.Muted.Render("No press articles in this range.")
	}
	var b strings.Builder
	for i, item := range snap.Press {
		b.WriteString(m.renderListRow(i == m.cursor[TabPress], func() string {
			title := theme.RenderSentiment(item.SentimentLabel, item.Title)
			return fmt.Sprintf("%s\n    %s · %s",
				title,
				m.theme.Muted.Render(item.Source),
				m.theme.Muted.Render(core.TimeAgo(item.PublishedAt, time.Now())))
		}))
	}
	b.WriteString(m.loadMoreHint(len(snap.Press), snap.Summary.PressCount))
	return b.String()
}

func (m Model) renderSocial(snap core.Snapshot) string {
	items := core.FilterSocialByPlatform(snap.Social, m.store.PlatformFilter())
	if len(items) == 0 {
		return m.theme.Muted.Render("No mentions in this range.")
	}
	var b strings.Builder
	for i, item := range items {
		b.WriteString(m.renderListRow(i == m.cursor[TabSocial], func() string {
			text := theme.RenderSentiment(item.SentimentLabel, truncate(item.Text, 100))
			return fmt.Sprintf("%s\n    %s @%s · ♥%d ↻%d · %s",
				text,
				m.theme.Accent.Render(item.Platform),
				item.Author, item.Likes, item.Retweets,
				m.theme.Muted.Render(core.TimeAgo(item.CreatedAt, time.Now())))
		}))
	}
	b.WriteString(m.loadMoreHint(len(items), snap.Summary.MentionsCount))
	return b.String()
}

func (m Model) renderActivity(snap core.Snapshot) string {
	if len(snap.Activity) == 0 {
		return m.theme.Muted.Render("No posts in this range.")
	}
	var b strings.Builder
	for i, item := range snap.Activity {
		b.WriteString(m.renderListRow(i == m.cursor[TabActivity], func() string {
			engagement := ""
			if item.EngagementRate != nil {
				engagement = fmt.Sprintf(" · %.1f%% eng", *item.EngagementRate)
			}
			return fmt.Sprintf("%s\n    %s · ♥%d 💬%d%s · %s",
				truncate(item.Text, 100),
				m.theme.Accent.Render(item.Platform),
				item.Likes, item.Comments, engagement,
				m.theme.Muted.Render(core.TimeAgo(item.PostedAt, time.Now())))
		}))
	}

	if snap.ActivityPeaks != nil && snap.ActivityPeaks.PeakHour != nil {
		b.WriteString("\n")
		peak := fmt.Sprintf("Posting peak: %02d:00", *snap.ActivityPeaks.PeakHour)
		if snap.ActivityPeaks.PeakDay != nil {
			peak += " on " + *snap.ActivityPeaks.PeakDay
		}
		b.WriteString(m.theme.Info.Render(peak))
		b.WriteString("\n")
	}
	b.WriteString(m.loadMoreHint(len(snap.Activity), snap.Summary.PostsCount))
	return b.String()
}

func (m Model) renderAlerts(snap core.Snapshot) string {
	filter := m.store.AlertFilter()
	alerts := core.FilterAlerts(snap.Alerts, filter)

	var b strings.Builder
	if filter.Severity != "" || filter.UnreadOnly {
		desc := []string{}
		if filter.Severity != "" {
			desc = append(desc, "severity="+filter.Severity)
		}
		if filter.UnreadOnly {
			desc = append(desc, "unread only")
		}
		b.WriteString(m.theme.Muted.Render("Filter: " + strings.Join(desc, ", ")))
		b.WriteString("\n\n")
	}

	if len(alerts) == 0 {
		b.WriteString(m.theme.Muted.Render("No alerts."))
		return b.String()
	}

	for i, alert := range alerts {
		b.WriteString(m.renderListRow(i == m.cursor[TabAlerts], func() string {
			marker := "●"
			if alert.IsRead() {
				marker = " "
			}
			return fmt.Sprintf("%s %s %s\n    %s · %s",
				marker,
				m.severityStyle(alert.Severity).Render(strings.ToUpper(alert.Severity)),
				alert.Title,
				truncate(alert.Message, 90),
				m.theme.Muted.Render(core.TimeAgo(alert.CreatedAt, time.Now())))
		}))
	}
	return b.String()
}

func (m Model) renderHistory(snap core.Snapshot) string {
	if len(snap.Scans) == 0 {
		return m.theme.Muted.Render("No scans recorded yet.")
	}
	var b strings.Builder
	for i, scan := range snap.Scans {
		b.WriteString(m.renderListRow(i == m.cursor[TabHistory], func() string {
			marker := " "
			for _, id := range m.compareCursors {
				if id == scan.ID {
					marker = "✓"
				}
			}
			return fmt.Sprintf("[%s] #%d %s · %d press, %d mentions, %d posts, %d alerts · %s",
				marker, scan.ID,
				m.theme.Muted.Render(core.TimeAgo(scan.StartedAt, time.Now())),
				scan.PressCount, scan.MentionsCount, scan.PostsCount, scan.AlertsCount,
				scan.Status)
		}))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("space: select for comparison • c: compare two selected scans"))
	return b.String()
}

func (m Model) renderPerformance(snap core.Snapshot) string {
	var b strings.Builder

	if len(snap.Ratings.Ratings) > 0 {
		b.WriteString(m.theme.Title.Render("Match ratings"))
		b.WriteString("\n")
		values := make([]float64, 0, len(snap.Ratings.Ratings))
		for _, r := range snap.Ratings.Ratings {
			if r.Rating != nil {
				values = append(values, *r.Rating)
			}
		}
		b.WriteString("  " + m.theme.Accent.Render(core.Sparkline(values)))
		b.WriteString("\n")
		for i := len(snap.Ratings.Ratings) - 1; i >= 0 && i >= len(snap.Ratings.Ratings)-5; i-- {
			r := snap.Ratings.Ratings[i]
			rating := "—"
			if r.Rating != nil {
				rating = fmt.Sprintf("%.1f", *r.Rating)
			}
			b.WriteString(fmt.Sprintf("  %s  %s vs %s\n", r.Date, m.theme.Bold.Render(rating), r.Rival))
		}
		b.WriteString("\n")
	}

	if len(snap.MarketValueHistory) > 0 {
		b.WriteString(m.theme.Title.Render("Market value"))
		b.WriteString("\n")
		values := make([]float64, 0, len(snap.MarketValueHistory))
		for _, p := range snap.MarketValueHistory {
			if p.Value != nil {
				values = append(values, *p.Value)
			}
		}
		b.WriteString("  " + m.theme.Accent.Render(core.Sparkline(values)))
		b.WriteString("\n\n")
	}

	if len(snap.TrendsHistory) > 0 {
		b.WriteString(m.theme.Title.Render("Search interest"))
		b.WriteString("\n")
		values := make([]float64, 0, len(snap.TrendsHistory))
		for _, p := range snap.TrendsHistory {
			values = append(values, float64(p.Value))
		}
		b.WriteString("  " + m.theme.Accent.Render(core.Sparkline(values)))
		b.WriteString("\n\n")
	}

	if len(snap.Collaborations) > 0 {
		b.WriteString(m.theme.Title.Render("Collaborations"))
		b.WriteString("\n")
		for _, c := range snap.Collaborations {
			b.WriteString(fmt.Sprintf("  %-24s %s, %d mentions\n", c.Name, c.Type, c.Mentions))
		}
	}

	if b.Len() == 0 {
		return m.theme.Muted.Render("No performance data available.")
	}
	return b.String()
}

func (m Model) renderReports(snap core.Snapshot) string {
	if len(snap.WeeklyReports) == 0 {
		return m.theme.Muted.Render("No weekly reports generated yet.")
	}
	var b strings.Builder
	for i, report := range snap.WeeklyReports {
		b.WriteString(m.renderListRow(i == m.cursor[TabReports], func() string {
			index := ""
			if report.ImageIndex != nil {
				index = fmt.Sprintf(" · index %.1f", *report.ImageIndex)
			}
			return fmt.Sprintf("#%d %s%s\n    %s",
				report.ID,
				m.theme.Muted.Render(core.TimeAgo(report.CreatedAt, time.Now())),
				index,
				truncate(report.Recommendation, 100))
		}))
	}
	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Search"))
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.searchResults == nil {
		b.WriteString(m.theme.Muted.Render("enter: search • esc: close"))
		return b.String()
	}

	r := m.searchResults
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Press (%d)", len(r.Press))))
	b.WriteString("\n")
	for _, item := range r.Press {
		b.WriteString("  " + theme.RenderSentiment(item.SentimentLabel, truncate(item.Title, 90)) + "\n")
	}
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Social (%d)", len(r.Social))))
	b.WriteString("\n")
	for _, item := range r.Social {
		b.WriteString("  " + truncate(item.Text, 90) + "\n")
	}
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Activity (%d)", len(r.Activity))))
	b.WriteString("\n")
	for _, item := range r.Activity {
		b.WriteString("  " + truncate(item.Text, 90) + "\n")
	}
	return b.String()
}

func (m Model) viewPortfolio() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("MediaPulse"))
	b.WriteString("  ")
	b.WriteString(m.theme.Title.Render("Portfolio"))
	b.WriteString("\n\n")

	if len(m.portfolio) == 0 {
		b.WriteString(m.theme.Muted.Render("No subjects tracked yet."))
		b.WriteString("\n")
	}

	for i, entry := range m.portfolio {
		selected := i == m.cursor[tabCount]
		line := fmt.Sprintf("%-24s index %5.1f · %d press, %d mentions, %d alerts",
			entry.Name, entry.ImageIndex,
			entry.Summary.PressCount, entry.Summary.MentionsCount, entry.Summary.AlertsCount)
		if spark, ok := m.sparklines[fmt.Sprintf("%d", entry.ID)]; ok && len(spark) > 0 {
			line += "  " + core.Sparkline(spark)
		}
		if entry.LastScan != nil && entry.LastScan.FinishedAt != "" {
			line += "  " + core.TimeAgo(entry.LastScan.FinishedAt, time.Now())
		}
		if selected {
			b.WriteString(m.theme.SelectedRow.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("enter: open subject • esc: back • q: quit"))
	return b.String()
}

func (m Model) viewComparison() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("MediaPulse"))
	b.WriteString("  ")
	b.WriteString(m.theme.Title.Render("Scan comparison"))
	b.WriteString("\n\n")

	if m.comparison == nil {
		b.WriteString(m.theme.Muted.Render("No comparison loaded."))
	} else {
		left := m.theme.Box.Render(string(m.comparison.A))
		right := m.theme.Box.Render(string(m.comparison.B))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("esc: back"))
	return b.String()
}

func (m Model) renderListRow(selected bool, render func() string) string {
	row := render()
	if selected {
		row = m.theme.SelectedRow.Render(row)
	}
	return row + "\n"
}

func (m Model) loadMoreHint(loaded, total int) string {
	if total > loaded {
		return "\n" + m.theme.Muted.Render(fmt.Sprintf("Showing %d of %d • o: load more", loaded, total))
	}
	return ""
}

func (m Model) severityStyle(severity string) lipgloss.Style {
	switch severity {
	case api.SeverityHigh:
		return m.theme.SeverityHigh
	case api.SeverityMedium:
		return m.theme.SeverityMedium
	default:
		return m.theme.SeverityLow
	}
}

// summaryDeltas derives counter deltas from the two most recent scans.
func summaryDeltas(scans []api.ScanRecord) map[string]int {
	if len(scans) < 2 {
		return nil
	}
	latest, prev := scans[0], scans[1]
	return map[string]int{
		"press_count":    latest.PressCount - prev.PressCount,
		"mentions_count": latest.MentionsCount - prev.MentionsCount,
		"posts_count":    latest.PostsCount - prev.PostsCount,
		"alerts_count":   latest.AlertsCount - prev.AlertsCount,
	}
}

func imageIndexSparkline(history []api.ImageIndexPoint) string {
	values := make([]float64, 0, len(history))
	for _, p := range history {
		if p.ImageIndex != nil {
			values = append(values, *p.ImageIndex)
		}
	}
	return core.Sparkline(values)
}

// truncate shortens display text and drops newlines. Press and social text is
// Spanish, so cut on runes rather than bytes.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func rangeLabel(r core.DateRange) string {
	switch r.Preset {
	case core.PresetWeek:
		return "last 7 days"
	case core.PresetMonth:
		return "last 30 days"
	case core.PresetQuarter:
		return "last 90 days"
	case core.PresetCustom:
		return r.From[:10] + " → " + r.To[:10]
	default:
		return "all time"
	}
}
