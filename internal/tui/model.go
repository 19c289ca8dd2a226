package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solarwork/crewledger/internal/ledger"
	"github.com/solarwork/crewledger/internal/logger"
	"github.com/solarwork/crewledger/internal/model"
	"github.com/solarwork/crewledger/internal/query"
)

// Tab is the focused dashboard view.
type Tab int

const (
	TabRecords Tab = iota
	TabStatistics
	TabTimer
)

var tabNames = []string{"Records", "Statistics", "Timer"}

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePickWorker // choosing a worker to start a shift for
	ModeConfirmDelete
	ModeHelp
)

// tickMsg drives the 1 Hz timer display refresh. It carries no
// authority over the stored start time; elapsed time is recomputed
// from the clock on every tick.
type tickMsg time.Time

// Model is the dashboard TUI model.
type Model struct {
	ledger   *ledger.Ledger
	currency string

	workers  []model.Worker
	projects []model.Project
	entries  []model.WorkEntry
	stats    query.Statistics
	timer    model.TimerState

	width  int
	height int
	tab    Tab
	mode   Mode

	recordCursor int
	workerCursor int
	rangeFilter  string // "", today, this_week, this_month

	now     time.Time
	message string
}

// NewModel creates the dashboard model.
func NewModel(led *ledger.Ledger, currency string) Model {
	logger.Info("Initializing dashboard model")
	m := Model{
		ledger:   led,
		currency: currency,
		now:      time.Now(),
	}
	m.refresh()
	return m
}

// Init starts the display tick.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads collections from the ledger and recomputes the
// filtered view.
func (m *Model) refresh() {
	m.workers = m.ledger.Workers()
	m.projects = m.ledger.Projects()
	m.timer = m.ledger.Timer()

	f := query.Filter{HourlyPassProject: true}
	if m.rangeFilter != "" {
		from, to, err := query.ResolveRange(m.rangeFilter, m.now)
		if err == nil {
			f.DateFrom, f.DateTo = from, to
		}
	}
	m.entries = query.Entries(m.ledger.Entries(), f)
	query.SortNewestFirst(m.entries)
	m.stats = query.Aggregate(m.entries)

	if m.recordCursor >= len(m.entries) {
		m.recordCursor = len(m.entries) - 1
	}
	if m.recordCursor < 0 {
		m.recordCursor = 0
	}
}

// projectName resolves a project id for display.
func (m Model) projectName(id string) string {
	for _, p := range m.projects {
		if p.ID == id {
			return p.Name
		}
	}
	return "Unknown project"
}

// workerName resolves a worker id for display.
func (m Model) workerName(id string) string {
	for _, w := range m.workers {
		if w.ID == id {
			return w.Name
		}
	}
	return "Unknown"
}
