package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/solarwork/crewledger/internal/ledger"
	"github.com/solarwork/crewledger/internal/model"
)

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader() + "\n")

	switch m.mode {
	case ModePickWorker:
		b.WriteString(m.viewWorkerPicker())
	case ModeHelp:
		b.WriteString(m.viewHelp())
	default:
		switch m.tab {
		case TabRecords:
			b.WriteString(m.viewRecords())
		case TabStatistics:
			b.WriteString(m.viewStatistics())
		case TabTimer:
			b.WriteString(m.viewTimer())
		}
	}

	b.WriteString("\n" + m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = ActiveTabStyle.Render(name)
		} else {
			tabs[i] = TabStyle.Render(name)
		}
	}

	title := HeaderStyle.Render("CrewLedger")
	rangeNote := ""
	if m.rangeFilter != "" {
		rangeNote = MutedStyle.Render(" [" + m.rangeFilter + "]")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Join(tabs, ""), rangeNote)
}

func (m Model) viewRecords() string {
	if len(m.entries) == 0 {
		return MutedStyle.Render("\n  No entries match the current range\n")
	}

	var b strings.Builder
	visible := m.height - 6
	if visible < 5 {
		visible = 5
	}

	start := 0
	if m.recordCursor >= visible {
		start = m.recordCursor - visible + 1
	}

	for i := start; i < len(m.entries) && i < start+visible; i++ {
		line := m.recordLine(m.entries[i])
		if i == m.recordCursor {
			b.WriteString(SelectedRowStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(RowStyle.Render("  "+line) + "\n")
		}
	}
	return b.String()
}

func (m Model) recordLine(e model.WorkEntry) string {
	switch e.Type {
	case model.EntryTask:
		codes := make([]string, 0, len(e.Workers))
		for _, w := range e.Workers {
			codes = append(codes, w.WorkerCode)
		}
		return fmt.Sprintf("%s  table %-6s %-18s %dx %s%.2f [%s]",
			model.FromMillis(e.Timestamp).Format("01-02 15:04"),
			e.TableNumber,
			truncate(m.projectName(e.ProjectID), 18),
			len(e.Workers), m.currency, e.RewardPerWorker,
			strings.Join(codes, ","))
	case model.EntryHourly:
		return fmt.Sprintf("%s  %5.2f h %18s    %s%.2f  %s",
			model.FromMillis(e.StartTime).Format("01-02 15:04"),
			e.TotalHours, "", m.currency, e.TotalEarned,
			truncate(m.workerName(e.WorkerID), 18))
	default:
		return e.ID
	}
}

func (m Model) viewStatistics() string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString("  " + StatLabelStyle.Render(label) + StatValueStyle.Render(value) + "\n")
	}

	b.WriteString("\n")
	row("Total earnings", fmt.Sprintf("%s%.2f", m.currency, m.stats.TotalEarnings))
	row("  from tasks", fmt.Sprintf("%s%.2f", m.currency, m.stats.TotalTaskEarnings))
	row("  from hours", fmt.Sprintf("%s%.2f", m.currency, m.stats.TotalHourlyEarnings))
	row("Hours worked", fmt.Sprintf("%.1f h", m.stats.TotalHours))
	row("Tables completed", fmt.Sprintf("%d", m.stats.TotalTables))
	row("Avg per table", fmt.Sprintf("%s%.2f", m.currency, m.stats.AvgRewardPerTable))

	if len(m.stats.PerWorkerEarnings) > 0 {
		b.WriteString("\n" + MutedStyle.Render("  Per worker") + "\n")
		for _, w := range m.workers {
			earned, ok := m.stats.PerWorkerEarnings[w.ID]
			if !ok {
				continue
			}
			row(truncate(w.Name, 22), fmt.Sprintf("%s%.2f", m.currency, earned))
		}
	}
	return b.String()
}

func (m Model) viewTimer() string {
	if !m.timer.IsRunning {
		return MutedStyle.Render("\n  No shift running. Press s to start one.\n")
	}

	elapsed := ledger.Elapsed(m.now, m.timer)
	h := int(elapsed.Hours())
	min := int(elapsed.Minutes()) % 60
	sec := int(elapsed.Seconds()) % 60
	display := fmt.Sprintf("%02d:%02d:%02d  %s", h, min, sec, m.workerName(m.timer.WorkerID))

	if m.timer.BreakStart != nil {
		return BreakStyle.Render(display + "  (on break)")
	}
	return TimerStyle.Render(display)
}

func (m Model) viewWorkerPicker() string {
	var b strings.Builder
	b.WriteString("\n  Start shift for:\n\n")
	for i, w := range m.workers {
		line := fmt.Sprintf("%-6s %s", w.Code, w.Name)
		if i == m.workerCursor {
			b.WriteString(SelectedRowStyle.Render("  > "+line) + "\n")
		} else {
			b.WriteString(RowStyle.Render("    "+line) + "\n")
		}
	}
	b.WriteString("\n" + MutedStyle.Render("  enter: start  esc: cancel") + "\n")
	return b.String()
}

func (m Model) viewHelp() string {
	lines := []string{
		"",
		"  ↑/k ↓/j    move",
		"  tab        switch view",
		"  f          cycle date range (all/today/this_week/this_month)",
		"  s          start or stop a shift",
		"  b          toggle break during a shift",
		"  d          delete the selected entry",
		"  r          refresh from store",
		"  q          quit",
		"",
		"  any key to close help",
	}
	return MutedStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewFooter() string {
	parts := []string{"?: help", "q: quit"}
	if m.timer.IsRunning {
		elapsed := ledger.Elapsed(m.now, m.timer)
		parts = append(parts, fmt.Sprintf("shift: %02d:%02d:%02d",
			int(elapsed.Hours()), int(elapsed.Minutes())%60, int(elapsed.Seconds())%60))
	}
	footer := FooterStyle.Render(strings.Join(parts, "   "))

	if m.mode == ModeConfirmDelete {
		return footer + "  " + ErrorStyle.Render("Delete selected entry? (y/n)")
	}
	if m.message == "" {
		return footer
	}
	style := MessageStyle
	if strings.HasPrefix(m.message, "!") {
		style = ErrorStyle
	}
	return footer + "  " + style.Render(m.message)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
