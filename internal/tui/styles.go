package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary   = lipgloss.Color("#3b82f6")
	Accent    = lipgloss.Color("#22c55e")
	Danger    = lipgloss.Color("#ef4444")
	Warning   = lipgloss.Color("#f97316")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 2).
			Underline(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Text).
				Background(lipgloss.Color("#16213e"))

	RowStyle = lipgloss.NewStyle().
			Foreground(Text)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	TimerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent).
			Padding(1, 2)

	BreakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Warning).
			Padding(1, 2)

	MessageStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Padding(0, 1)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Width(24)

	StatValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	FooterStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)
)
