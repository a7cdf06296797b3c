package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/billie-coop/agentdeck/internal/launchd"
	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

const (
	headerHeight = 1
	statusHeight = 1
	searchHeight = 3
	editorLines  = 6
	labelWidth   = 30
)

// resize sizes every component from the window size.
func (m *Model) resize() tea.Cmd {
	var cmds []tea.Cmd

	if m.loading != nil {
		cmds = append(cmds, m.loading.SetSize(m.width, m.height))
	}
	cmds = append(cmds, m.status.SetSize(m.width, statusHeight))
	cmds = append(cmds, m.dialogs.SetSize(m.width, m.height))

	mainWidth := m.width - m.sidebarWidth()
	m.editor.SetWidth(max(mainWidth-6, 10))

	// Preview sits inside a bordered panel under a one-line title.
	m.preview = viewport.New(
		viewport.WithWidth(max(mainWidth-2, 1)),
		viewport.WithHeight(max(m.bodyHeight()-3, 1)),
	)
	m.preview.MouseWheelEnabled = true
	m.refreshPreview()

	return tea.Batch(cmds...)
}

func (m *Model) sidebarWidth() int {
	if m.width < 80 {
		return 28
	}
	if m.width < 120 {
		return 34
	}
	return 42
}

func (m *Model) bodyHeight() int {
	return max(m.height-headerHeight-statusHeight, 4)
}

// View renders the entire TUI
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.dialogs.IsOpen() {
		if v := m.dialogs.View(); v != "" {
			return v
		}
	}
	if m.loading != nil {
		return m.loading.View()
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSearch(m.sidebarWidth()),
		m.renderSidebar(m.sidebarWidth(), m.bodyHeight()-searchHeight),
	)

	mainWidth := m.width - m.sidebarWidth()
	var right string
	if m.showPreview {
		right = m.renderPreview(mainWidth, m.bodyHeight())
	} else {
		right = m.renderForm(mainWidth, m.bodyHeight())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.status.View(),
	)
}

// panel frames body in a rounded border of outer size w×h, clipping each
// line to the inner width.
func panel(title, body string, w, h int, focused bool) string {
	s := styles.CurrentTheme().S()
	style := s.Panel
	if focused {
		style = s.PanelFocused
	}

	innerW, innerH := max(w-2, 0), max(h-2, 0)
	var lines []string
	if title != "" {
		lines = append(lines, s.PanelTitle.Render(ansi.Truncate(title, innerW, "…")))
	}
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, ansi.Truncate(line, innerW, "…"))
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	return style.Width(innerW).Height(innerH).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHeader() string {
	s := styles.CurrentTheme().S()

	var tabs []string
	for i, loc := range launchd.Locations {
		label := fmt.Sprintf("%d %s (%d)", i+1, loc.DisplayName(), len(m.agents[loc]))
		if loc == m.location {
			tabs = append(tabs, s.TabActive.Render(label))
		} else {
			tabs = append(tabs, s.Tab.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	if m.doc != nil {
		name := m.agent.Filename
		if m.dirty {
			name = s.Warning.Render(styles.DirtyIcon+" ") + name
		}
		gap := m.width - lipgloss.Width(bar) - lipgloss.Width(name) - 1
		if gap > 0 {
			bar += strings.Repeat(" ", gap) + name
		}
	}
	return ansi.Truncate(bar, m.width, "")
}

func (m *Model) renderSearch(w int) string {
	s := styles.CurrentTheme().S()
	focused := m.focus == FocusSearch && !m.session.Editing()

	text := m.query
	switch {
	case focused:
		text += "▏"
	case text == "":
		text = s.Subtle.Render("/ to search")
	}
	return panel("", styles.SearchIcon+" "+text, w, searchHeight, focused)
}

func (m *Model) renderSidebar(w, h int) string {
	s := styles.CurrentTheme().S()
	focused := m.focus == FocusSidebar && !m.session.Editing()
	title := fmt.Sprintf("%s %s agents", styles.ListIcon, m.location.DisplayName())
	if m.query != "" {
		title += fmt.Sprintf(" (%d/%d)", len(m.visible), len(m.agents[m.location]))
	}

	legend := s.Running.Render(launchd.StatusRunning.Icon()) + s.Subtle.Render(" Running ") +
		s.Stopped.Render(launchd.StatusStopped.Icon()) + s.Subtle.Render(" Stopped ") +
		s.Enabled.Render(styles.EnabledIcon) + s.Subtle.Render(" Enabled")

	rows := max(h-4, 1)
	var lines []string
	switch {
	case len(m.visible) == 0 && m.query != "":
		lines = append(lines, s.Muted.Render(fmt.Sprintf("No matches for %q", m.query)))
	case len(m.visible) == 0:
		lines = append(lines, s.Muted.Render("No agents found"))
	default:
		start := scrollStart(m.cursor, m.cursor, len(m.visible), rows)
		for i := start; i < min(start+rows, len(m.visible)); i++ {
			lines = append(lines, m.agentLine(m.visible[i], i == m.cursor, w-2))
		}
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	lines = append(lines, legend)

	return panel(title, strings.Join(lines, "\n"), w, h, focused)
}

func (m *Model) agentLine(a launchd.Agent, selected bool, width int) string {
	s := styles.CurrentTheme().S()

	icon := a.Status.Icon()
	switch a.Status {
	case launchd.StatusRunning:
		icon = s.Running.Render(icon)
	case launchd.StatusStopped:
		icon = s.Stopped.Render(icon)
	case launchd.StatusError:
		icon = s.Warning.Render(icon)
	default:
		icon = s.Subtle.Render(icon)
	}
	enabled := " "
	if a.Enabled {
		enabled = s.Enabled.Render(styles.EnabledIcon)
	}

	name := ansi.Truncate(a.Label, max(width-6, 1), "…")
	if selected {
		return s.ItemSelected.Render("▶ ") + icon + enabled + " " + s.ItemSelected.Render(name)
	}
	return "  " + icon + enabled + " " + s.Item.Render(name)
}

func (m *Model) renderForm(w, h int) string {
	s := styles.CurrentTheme().S()
	focused := m.focus == FocusForm || m.session.Editing()

	if m.doc == nil {
		body := s.Muted.Render("Select an agent and press Enter to load it.")
		return panel(styles.FormIcon+" Editor", body, w, h, focused)
	}

	title := fmt.Sprintf("%s %s", styles.FormIcon, m.doc.DisplayLabel(m.agent.Filename))
	if m.dirty {
		title += " " + styles.DirtyIcon
	}
	if m.agent.Location.ReadOnly() {
		title += " (read-only)"
	}

	valueWidth := max(w-2-2-labelWidth, 8)
	catalog := m.session.Catalog()
	var lines []string
	focusStart, focusEnd := 0, 0
	for i, field := range catalog.Fields() {
		selected := i == m.session.Cursor()
		if selected {
			focusStart = len(lines)
		}

		marker := "  "
		label := s.FieldLabel.Render(padRight(field.Label, labelWidth))
		if selected {
			marker = s.ItemSelected.Render("▶ ")
		}

		switch {
		case selected && m.session.Editing():
			lines = append(lines, marker+s.Editing.Render(styles.EditIcon+" "+field.Label))
			lines = append(lines, strings.Split(m.editor.View(), "\n")...)
		case field.IsSet(m.doc):
			value := strings.ReplaceAll(field.Seed(m.doc), "\n", ", ")
			lines = append(lines, marker+label+s.FieldValue.Render(ansi.Truncate(value, valueWidth, "…")))
		default:
			lines = append(lines, marker+label+s.FieldAbsent.Render("—"))
		}

		if selected {
			focusEnd = len(lines) - 1
		}
	}

	// Title, help line and path take three of the inner rows.
	rows := max(h-2-3, 1)
	start := scrollStart(focusStart, focusEnd, len(lines), rows)
	visible := lines[start:min(start+rows, len(lines))]
	for len(visible) < rows {
		visible = append(visible, "")
	}

	help := s.Subtle.Render(m.session.Selected().Help)
	path := s.Muted.Render(m.agent.Path)
	body := strings.Join(visible, "\n") + "\n" + help + "\n" + path
	return panel(title, body, w, h, focused)
}

func (m *Model) renderPreview(w, h int) string {
	title := "👁 Preview"
	if m.doc != nil {
		title += " · " + m.agent.Filename
	}
	return panel(title, m.preview.View(), w, h, m.focus == FocusForm)
}

// scrollStart returns the first row to show so that rows focusStart
// through focusEnd fit in a window of height rows.
func scrollStart(focusStart, focusEnd, total, rows int) int {
	if total <= rows {
		return 0
	}
	start := 0
	if focusEnd >= rows {
		start = focusEnd - rows + 1
	}
	if focusStart < start {
		start = focusStart
	}
	return min(start, total-rows)
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return ansi.Truncate(s, w, "")
}
