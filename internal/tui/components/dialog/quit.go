package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

// QuitDialog asks for confirmation before quitting
type QuitDialog struct {
	*BaseDialog

	selectedNo bool
	dirty      bool
}

func NewQuitDialog() *QuitDialog {
	return &QuitDialog{
		BaseDialog: NewBaseDialog("⚠️  Confirm Exit"),
		selectedNo: true,
	}
}

// SetDirty makes the dialog mention unsaved changes.
func (d *QuitDialog) SetDirty(dirty bool) {
	d.dirty = dirty
}

func (d *QuitDialog) Open() tea.Cmd {
	d.selectedNo = true
	return d.BaseDialog.Open()
}

// Update handles messages
func (d *QuitDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "ctrl+c", "y", "Y":
			d.SetResult(true)
			return d, tea.Batch(d.Close(), tea.Quit)
		case "esc", "n", "N", "q":
			return d, d.Cancel()
		case "left", "right", "tab", "h", "l":
			d.selectedNo = !d.selectedNo
		case "enter", "space":
			if d.selectedNo {
				return d, d.Cancel()
			}
			d.SetResult(true)
			return d, tea.Batch(d.Close(), tea.Quit)
		}
	}

	return d, nil
}

// View renders the dialog
func (d *QuitDialog) View() string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()

	question := s.Bold.Render("🚪 Quit LaunchAgent Manager?")
	lines := []string{question}
	if d.dirty {
		lines = append(lines, s.Warning.Render("Unsaved changes will be lost."))
	}

	yes, no := s.Button, s.Button
	if d.selectedNo {
		no = s.ButtonSelected
	} else {
		yes = s.ButtonSelected
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yes.Render("[Y]es"), "  ", no.Render("[N]o"), "  ", s.Button.Render("[Esc]"))

	lines = append(lines, "", buttons)
	return d.RenderDialog(lipgloss.JoinVertical(lipgloss.Center, lines...))
}
