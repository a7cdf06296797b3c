// Package status renders the bottom bar: key hints for the focused panel,
// replaced by a transient message while one is live.
package status

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/billie-coop/agentdeck/internal/tui/components/core"
	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

// Kind selects the color of a message.
type Kind int

const (
	Info Kind = iota
	Success
	Warning
	Error
)

// DefaultTTL is how long a message stays up when no lifetime is configured.
const DefaultTTL = 3 * time.Second

// Message is a status line paired with the moment it stops being shown.
type Message struct {
	ID      int
	Text    string
	Kind    Kind
	Expires time.Time
}

// Expired reports whether the message should no longer be shown at now.
func (m Message) Expired(now time.Time) bool {
	return !now.Before(m.Expires)
}

// ExpireMsg is delivered when the message with ID reaches its expiry.
type ExpireMsg struct {
	ID int
}

// Component implements a status bar that shows temporary messages
type Component struct {
	core.SizeableBase

	message *Message
	hint    string
	ttl     time.Duration
	seq     int
	now     func() time.Time
}

// New creates a status bar whose messages live for ttl.
func New(ttl time.Duration) *Component {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Component{ttl: ttl, now: time.Now}
}

// Set replaces the current message and returns the tick that expires it.
func (c *Component) Set(text string, kind Kind) tea.Cmd {
	c.seq++
	msg := Message{
		ID:      c.seq,
		Text:    text,
		Kind:    kind,
		Expires: c.now().Add(c.ttl),
	}
	c.message = &msg

	id := msg.ID
	return tea.Tick(c.ttl, func(time.Time) tea.Msg {
		return ExpireMsg{ID: id}
	})
}

func (c *Component) Info(text string) tea.Cmd    { return c.Set(text, Info) }
func (c *Component) Success(text string) tea.Cmd { return c.Set(text, Success) }
func (c *Component) Warning(text string) tea.Cmd { return c.Set(text, Warning) }
func (c *Component) Error(text string) tea.Cmd   { return c.Set(text, Error) }

// Current returns the live message, if any.
func (c *Component) Current() (Message, bool) {
	if c.message == nil || c.message.Expired(c.now()) {
		return Message{}, false
	}
	return *c.message, true
}

// SetHint sets the text shown when no message is live.
func (c *Component) SetHint(hint string) {
	c.hint = hint
}

func (c *Component) Init() tea.Cmd {
	return nil
}

// Update clears the message its expiry tick was issued for. Ticks for
// messages that have since been replaced are ignored.
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	if msg, ok := msg.(ExpireMsg); ok {
		if c.message != nil && c.message.ID == msg.ID {
			c.message = nil
		}
	}
	return c, nil
}

func (c *Component) View() string {
	if c.Width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()
	s := theme.S()

	bar := lipgloss.NewStyle().
		Width(c.Width).
		MaxHeight(1).
		Background(theme.BgSubtle).
		Padding(0, 1)

	avail := max(c.Width-2, 0)
	text, style := c.hint, s.DescHint
	if m, ok := c.Current(); ok {
		text = m.Text
		switch m.Kind {
		case Success:
			style = s.Success
		case Warning:
			style = s.Warning
		case Error:
			style = s.Error
		default:
			style = s.Info
		}
	}

	return bar.Render(style.Background(theme.BgSubtle).Render(ansi.Truncate(text, avail, "…")))
}
