package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/agentdeck/internal/tui/components/core"
)

// Dialog represents a modal dialog component
type Dialog interface {
	core.Component
	core.Sizeable
	core.Focusable

	Update(tea.Msg) (Dialog, tea.Cmd)
	IsOpen() bool
	Open() tea.Cmd
	Close() tea.Cmd

	Result() any
	IsCancelled() bool
}

// ClosedMsg is emitted by the Manager when its active dialog closes.
type ClosedMsg struct {
	Kind      Kind
	Result    any
	Cancelled bool
}
