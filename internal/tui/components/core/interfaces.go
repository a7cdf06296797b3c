package core

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is a panel the root model renders. Components own their own
// Update with a concrete return type.
type Component interface {
	Init() tea.Cmd
	View() string
}

// Sizeable components can be resized
type Sizeable interface {
	SetSize(width, height int) tea.Cmd
}

// Focusable components can receive keyboard focus
type Focusable interface {
	Focus() tea.Cmd
	Blur() tea.Cmd
	IsFocused() bool
}
