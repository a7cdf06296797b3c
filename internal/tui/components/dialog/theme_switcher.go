package dialog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

// ThemeSwitcherDialog previews themes as the selection moves. Enter keeps
// the selection; esc restores the theme that was active on open.
type ThemeSwitcherDialog struct {
	*BaseDialog
	themes        []string
	selectedIndex int
	original      string
}

func NewThemeSwitcher() *ThemeSwitcherDialog {
	return &ThemeSwitcherDialog{
		BaseDialog: NewBaseDialog("🎨 Theme"),
	}
}

func (d *ThemeSwitcherDialog) Open() tea.Cmd {
	manager := styles.DefaultManager()
	d.themes = manager.List()
	d.original = manager.Current().Name
	d.selectedIndex = 0
	for i, name := range d.themes {
		if name == d.original {
			d.selectedIndex = i
			break
		}
	}
	return d.BaseDialog.Open()
}

func (d *ThemeSwitcherDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.isOpen || len(d.themes) == 0 {
		return d, nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "up", "k":
			d.selectedIndex = (d.selectedIndex - 1 + len(d.themes)) % len(d.themes)
			d.preview()
		case "down", "j":
			d.selectedIndex = (d.selectedIndex + 1) % len(d.themes)
			d.preview()
		case "enter":
			d.SetResult(d.themes[d.selectedIndex])
			return d, d.Close()
		case "esc", "ctrl+c", "q":
			styles.DefaultManager().SetTheme(d.original) //nolint:errcheck
			return d, d.Cancel()
		}
	}

	return d, nil
}

func (d *ThemeSwitcherDialog) preview() {
	styles.DefaultManager().SetTheme(d.themes[d.selectedIndex]) //nolint:errcheck
}

func (d *ThemeSwitcherDialog) View() string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()
	var lines []string
	lines = append(lines, s.Subtle.Render("↑/↓ to preview, enter to keep, esc to revert"), "")

	for i, name := range d.themes {
		switch {
		case i == d.selectedIndex:
			lines = append(lines, styles.RenderThemeGradient("→ "+name, true))
		case name == d.original:
			lines = append(lines, s.Muted.Render(fmt.Sprintf("  %s (current)", name)))
		default:
			lines = append(lines, s.Text.Render("  "+name))
		}
	}

	lines = append(lines, "",
		styles.RenderGradientBar(20, 1),
		strings.Join([]string{
			s.Success.Render("Running"),
			s.Stopped.Render("Stopped"),
			s.Enabled.Render("Enabled"),
			s.Warning.Render("Warning"),
		}, " "))

	return d.RenderDialog(strings.Join(lines, "\n"))
}
