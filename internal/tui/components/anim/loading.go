// Package anim holds the animated pieces of the interface.
package anim

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/agentdeck/internal/tui/components/core"
	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

var brailleDots = spinner.Spinner{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	FPS:    time.Second / 12,
}

// Loading is the full-screen splash shown while agents are discovered.
type Loading struct {
	core.SizeableBase

	spinner spinner.Model
	title   string
	label   string
	done    int
	total   int
}

func NewLoading(title string) *Loading {
	s := spinner.New()
	s.Spinner = brailleDots
	s.Style = lipgloss.NewStyle().Foreground(styles.CurrentTheme().Primary)
	return &Loading{spinner: s, title: title}
}

func (l *Loading) Init() tea.Cmd {
	return l.spinner.Tick
}

// SetProgress records that done of total steps have finished.
func (l *Loading) SetProgress(done, total int) {
	l.done, l.total = done, total
}

func (l *Loading) SetLabel(label string) {
	l.label = label
}

// Fraction is the share of finished steps, 0 when nothing is known.
func (l *Loading) Fraction() float64 {
	if l.total <= 0 {
		return 0
	}
	return float64(l.done) / float64(l.total)
}

func (l *Loading) Update(msg tea.Msg) (*Loading, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return l, nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

func (l *Loading) View() string {
	s := styles.CurrentTheme().S()

	barWidth := 30
	if l.Width > 0 {
		barWidth = min(barWidth, max(l.Width-8, 4))
	}

	label := l.label
	if l.total > 0 {
		label = fmt.Sprintf("%s (%d/%d)", label, l.done, l.total)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.RenderThemeGradient(l.title, true),
		"",
		l.spinner.View()+" "+s.Muted.Render(label),
		"",
		styles.RenderGradientBar(barWidth, l.Fraction()),
	)

	if l.Width == 0 || l.Height == 0 {
		return body
	}
	return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, body)
}
