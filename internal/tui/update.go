package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solarwork/crewledger/internal/logger"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.timer = m.ledger.Timer()
		return m, tick()

	case tea.KeyMsg:
		switch m.mode {
		case ModePickWorker:
			return m.updatePickWorker(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, keys.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil

	case key.Matches(msg, keys.PrevTab):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.tab == TabRecords && m.recordCursor > 0 {
			m.recordCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.tab == TabRecords && m.recordCursor < len(m.entries)-1 {
			m.recordCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Range):
		m.rangeFilter = nextRange(m.rangeFilter)
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.Refresh):
		m.refresh()
		m.message = "Refreshed"
		return m, nil

	case key.Matches(msg, keys.Delete):
		if m.tab == TabRecords && len(m.entries) > 0 {
			m.mode = ModeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, keys.Shift):
		if m.timer.IsRunning {
			entry, err := m.ledger.StopShift()
			if err != nil {
				m.message = "! " + err.Error()
			} else {
				m.message = "Shift ended: " + m.workerName(entry.WorkerID)
				logger.Info("shift stopped from dashboard", logger.F("entry", entry.ID))
			}
			m.refresh()
			return m, nil
		}
		if len(m.workers) == 0 {
			m.message = "! no workers to start a shift for"
			return m, nil
		}
		m.mode = ModePickWorker
		m.workerCursor = 0
		return m, nil

	case key.Matches(msg, keys.Break):
		if !m.timer.IsRunning {
			m.message = "! no shift running"
			return m, nil
		}
		var err error
		if m.timer.BreakStart != nil {
			err = m.ledger.EndBreak()
		} else {
			err = m.ledger.StartBreak()
		}
		if err != nil {
			m.message = "! " + err.Error()
		}
		m.timer = m.ledger.Timer()
		return m, nil
	}
	return m, nil
}

func (m Model) updatePickWorker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.workerCursor > 0 {
			m.workerCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.workerCursor < len(m.workers)-1 {
			m.workerCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		w := m.workers[m.workerCursor]
		if _, err := m.ledger.StartShift(w.ID); err != nil {
			m.message = "! " + err.Error()
		} else {
			m.message = "Shift started for " + w.Name
		}
		m.mode = ModeNormal
		m.timer = m.ledger.Timer()
		return m, nil
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.recordCursor < len(m.entries) {
			entry := m.entries[m.recordCursor]
			if err := m.ledger.DeleteEntry(entry.ID); err != nil {
				m.message = "! " + err.Error()
			} else {
				m.message = "Entry deleted"
			}
		}
		m.mode = ModeNormal
		m.refresh()
		return m, nil
	default:
		m.mode = ModeNormal
		return m, nil
	}
}

func nextRange(current string) string {
	switch current {
	case "":
		return "today"
	case "today":
		return "this_week"
	case "this_week":
		return "this_month"
	default:
		return ""
	}
}
