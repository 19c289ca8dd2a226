package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Enter   key.Binding
	Delete  key.Binding
	Shift   key.Binding
	Break   key.Binding
	Range   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextTab: key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab", "next view")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "h"), key.WithHelp("shift+tab", "previous view")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
	Shift:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop shift")),
	Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "toggle break")),
	Range:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle date range")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
