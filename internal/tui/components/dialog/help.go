package dialog

import (
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

// HelpText is the key reference shown by the help dialog.
const HelpText = `# Keys

## Everywhere
| key | action |
|---|---|
| ` + "`1` `2` `3`" + ` | switch to User / Global / Apple agents |
| ` + "`tab`" + ` | cycle focus: search, agents, form |
| ` + "`/`" + ` | search agents |
| ` + "`ctrl+s`" + ` | save the open agent and reload it |
| ` + "`p`" + ` | toggle the XML preview |
| ` + "`y`" + ` | copy the XML to the clipboard |
| ` + "`r`" + ` | rescan the current tab |
| ` + "`t`" + ` | choose a theme |
| ` + "`?`" + ` | this help |
| ` + "`q` `esc` `ctrl+c`" + ` | quit |

## Agents
| key | action |
|---|---|
| ` + "`j` `k`" + ` | move, wrapping at the ends |
| ` + "`g` `G`" + ` | first / last agent |
| ` + "`enter`" + ` | open the agent in the form |

## Form
| key | action |
|---|---|
| ` + "`j` `k`" + ` | move between fields |
| ` + "`enter`" + ` | edit the field |
| ` + "`ctrl+z`" + ` | restore the version before the last save |

## Editing
| key | action |
|---|---|
| ` + "`enter`" + ` | apply a single-line value |
| ` + "`alt+enter`" + ` | new line in a list or map |
| ` + "`ctrl+s`" + ` | apply any value |
| ` + "`esc`" + ` | discard the edit |

Lists take one item per line. Environment variables take ` + "`KEY=value`" + `
per line; lines without ` + "`=`" + ` are dropped. Booleans are ` + "`true`" + ` only
when the text is exactly ` + "`true`" + `. An integer that does not parse clears
the field.
`

// HelpDialog displays the key reference rendered from markdown.
type HelpDialog struct {
	*BaseDialog

	viewport viewport.Model
	rendered string
	width    int
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{
		BaseDialog: NewBaseDialog("❓ Help"),
		viewport:   viewport.New(),
	}
}

// SetSize sizes the scrollable area to fit inside the frame.
func (d *HelpDialog) SetSize(width, height int) tea.Cmd {
	d.BaseDialog.SetSize(width, height)

	w := min(max(width-8, 20), 80)
	h := max(height-8, 3)
	d.viewport = viewport.New(
		viewport.WithWidth(w),
		viewport.WithHeight(h),
	)
	d.viewport.MouseWheelEnabled = true
	if w != d.width || d.rendered == "" {
		d.width = w
		d.rendered = styles.RenderMarkdown(HelpText, w)
	}
	d.viewport.SetContent(d.rendered)
	return nil
}

func (d *HelpDialog) Open() tea.Cmd {
	// The theme may have changed since the last render.
	d.rendered = styles.RenderMarkdown(HelpText, max(d.width, 40))
	d.viewport.SetContent(d.rendered)
	d.viewport.GotoTop()
	return d.BaseDialog.Open()
}

func (d *HelpDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.isOpen {
		return d, nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "q", "?", "enter":
			return d, d.Close()
		case "ctrl+c":
			return d, d.Cancel()
		}
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *HelpDialog) View() string {
	if !d.isOpen {
		return ""
	}
	hint := styles.CurrentTheme().S().Subtle.Render("j/k scroll • esc close")
	return d.RenderDialog(lipgloss.JoinVertical(lipgloss.Left, d.viewport.View(), hint))
}
