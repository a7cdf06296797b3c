package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/agentdeck/internal/tui/components/core"
	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

// BaseDialog provides common dialog functionality
type BaseDialog struct {
	core.FocusableBase
	core.SizeableBase

	title     string
	isOpen    bool
	result    any
	cancelled bool
}

// NewBaseDialog creates a new base dialog
func NewBaseDialog(title string) *BaseDialog {
	return &BaseDialog{title: title}
}

func (d *BaseDialog) Init() tea.Cmd {
	return nil
}

func (d *BaseDialog) IsOpen() bool {
	return d.isOpen
}

// Open resets the result and focuses the dialog.
func (d *BaseDialog) Open() tea.Cmd {
	d.isOpen = true
	d.cancelled = false
	d.result = nil
	return d.Focus()
}

func (d *BaseDialog) Close() tea.Cmd {
	d.isOpen = false
	return d.Blur()
}

// Cancel closes the dialog as cancelled
func (d *BaseDialog) Cancel() tea.Cmd {
	d.cancelled = true
	return d.Close()
}

func (d *BaseDialog) Result() any {
	return d.result
}

func (d *BaseDialog) IsCancelled() bool {
	return d.cancelled
}

func (d *BaseDialog) SetResult(result any) {
	d.result = result
}

// RenderDialog frames content with the title and centers it in the
// dialog's area.
func (d *BaseDialog) RenderDialog(content string) string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()
	if d.title != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, s.DialogTitle.Render(d.title), content)
	}
	box := s.Dialog.Render(content)

	if d.Width == 0 || d.Height == 0 {
		return box
	}
	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
}
