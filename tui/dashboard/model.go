package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/config"
	core "github.com/mediapulse/pulse/dashboard"
	"github.com/mediapulse/pulse/logging"
	"github.com/mediapulse/pulse/state"
	"github.com/mediapulse/pulse/tui/theme"
)

// timeNow is swapped in tests exercising date range presets.
var timeNow = time.Now

// Screen identifies the top-level view.
type Screen int

const (
	ScreenSetup Screen = iota
	ScreenScanning
	ScreenDashboard
	ScreenPortfolio
	ScreenComparison
)

// Tab identifies one dashboard tab.
type Tab int

const (
	TabIntelligence Tab = iota
	TabPress
	TabSocial
	TabActivity
	TabAlerts
	TabHistory
	TabPerformance
	TabReports
	tabCount
)

var tabNames = map[Tab]string{
	TabIntelligence: "Intelligence",
	TabPress:        "Press",
	TabSocial:       "Social",
	TabActivity:     "Activity",
	TabAlerts:       "Alerts",
	TabHistory:      "History",
	TabPerformance:  "Performance",
	TabReports:      "Reports",
}

// setup form field indexes
const (
	fieldName = iota
	fieldTwitter
	fieldInstagram
	fieldClub
	fieldCount
)

// Model is the dashboard TUI root model.
type Model struct {
	cfg    *config.Config
	client *api.Client
	store  *core.Store
	loader *core.Loader
	poller *core.ScanPoller
	log    *logrus.Entry
	theme  *theme.Theme

	pageSize   int
	pollEvents chan tea.Msg

	screen Screen
	tab    Tab
	width  int
	height int

	spinner      spinner.Model
	scanProgress string
	loading      bool
	statusErr    error

	// setup screen
	inputs     []textinput.Model
	focusField int

	// per-tab cursors
	cursor map[Tab]int

	// alert dismissal needs an explicit confirmation
	confirmDismiss *api.Alert

	// search overlay
	searching     bool
	searchInput   textinput.Model
	searchResults *api.SearchResults

	// secondary screens
	portfolio      []api.PortfolioEntry
	sparklines     map[string][]float64
	comparison     *api.ScanComparison
	compareCursors []int // scan ids selected on the history tab

	// header indicators
	scheduler *api.SchedulerStatus
	lastScan  *api.ScanRecord
	costs     *api.Costs

	keys KeyMap
}

// New builds the dashboard model around an API client and configuration.
func New(cfg *config.Config, client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.DefaultTheme.Info

	inputs := make([]textinput.Model, fieldCount)
	placeholders := []string{"Name (required)", "Twitter handle", "Instagram handle", "Club"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldName].Focus()

	search := textinput.New()
	search.Placeholder = "Search press, social and activity..."
	search.CharLimit = 200
	search.Width = 50

	pageSize := cfg.Dashboard.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	return Model{
		cfg:         cfg,
		client:      client,
		store:       core.NewStore(),
		loader:      core.NewLoader(client, cfg.Dashboard.FetchTimeout.Std(), pageSize),
		poller:      core.NewScanPoller(client, cfg.Scan.PollInterval.Std()),
		log:         logging.NewLogger("tui"),
		theme:       theme.DefaultTheme,
		pageSize:    pageSize,
		pollEvents:  make(chan tea.Msg, 8),
		screen:      ScreenSetup,
		tab:         TabIntelligence,
		spinner:     sp,
		inputs:      inputs,
		searchInput: search,
		cursor:      make(map[Tab]int),
		keys:        defaultKeyMap,
	}
}

// Init resumes the last session when one is recorded, otherwise shows setup.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, listenPollEvents(m.pollEvents)}

	if id, err := state.LastSubject(); err == nil && id > 0 {
		m.log.Debugf("Resuming last subject %d", id)
		cmds = append(cmds, func() tea.Msg { return scanDoneMsg{SubjectID: id} })
	}
	return tea.Batch(cmds...)
}

// startPolling wires the scan poller's callbacks into the program's message
// loop.
func (m *Model) startPolling() {
	events := m.pollEvents
	m.poller.Start(context.Background(),
		func(status api.ScanStatus) {
			select {
			case events <- scanProgressMsg{Status: status}:
			default:
			}
		},
		func(subjectID int) {
			events <- scanDoneMsg{SubjectID: subjectID}
		},
	)
}

// setupInput collects the setup form into a scan request.
func (m Model) setupInput() api.SubjectInput {
	return api.SubjectInput{
		Name:      m.inputs[fieldName].Value(),
		Twitter:   m.inputs[fieldTwitter].Value(),
		Instagram: m.inputs[fieldInstagram].Value(),
		Club:      m.inputs[fieldClub].Value(),
	}
}
