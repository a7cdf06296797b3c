package styles

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/charmbracelet/glamour/v2/ansi"
	"github.com/charmbracelet/lipgloss/v2"
)

// Semantic color names for consistency
type Theme struct {
	Name   string
	IsDark bool

	// Brand colors
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	// Background colors
	BgBase      color.Color
	BgSubtle    color.Color
	BgHighlight color.Color

	// Foreground colors
	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgInverted color.Color

	// Border colors
	Border      color.Color
	BorderFocus color.Color

	// Semantic colors
	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	// Syntax colors
	Tag       color.Color
	Attribute color.Color
	String    color.Color
	Number    color.Color

	styles *Styles
}

type Styles struct {
	Base   lipgloss.Style
	Title  lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style
	Bold   lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// Tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Lists and forms
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	FieldLabel   lipgloss.Style
	FieldValue   lipgloss.Style
	FieldAbsent  lipgloss.Style
	Editing      lipgloss.Style

	// Status
	Running  lipgloss.Style
	Stopped  lipgloss.Style
	Enabled  lipgloss.Style
	KeyHint  lipgloss.Style
	DescHint lipgloss.Style

	// Dialogs
	Dialog         lipgloss.Style
	DialogTitle    lipgloss.Style
	Button         lipgloss.Style
	ButtonSelected lipgloss.Style

	Markdown ansi.StyleConfig
}

func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().
		Foreground(t.FgBase)

	panel := base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	return &Styles{
		Base: base,

		Title: base.
			Foreground(t.Primary).
			Bold(true),

		Text: base,

		Muted: base.Foreground(t.FgMuted),

		Subtle: base.Foreground(t.FgSubtle),

		Bold: base.Bold(true),

		Success: base.Foreground(t.Success),

		Error: base.Foreground(t.Error),

		Warning: base.Foreground(t.Warning),

		Info: base.Foreground(t.Info),

		Panel: panel,

		PanelFocused: panel.BorderForeground(t.BorderFocus),

		PanelTitle: base.
			Foreground(t.Accent).
			Bold(true),

		Tab: base.
			Foreground(t.FgMuted).
			Padding(0, 2),

		TabActive: base.
			Foreground(t.FgInverted).
			Background(t.Primary).
			Bold(true).
			Padding(0, 2),

		Item: base,

		ItemSelected: base.
			Background(t.BgHighlight).
			Foreground(t.Primary).
			Bold(true),

		FieldLabel: base.
			Foreground(t.Primary).
			Bold(true),

		FieldValue: base,

		FieldAbsent: base.
			Foreground(t.FgSubtle).
			Italic(true),

		Editing: base.
			Foreground(t.Warning).
			Bold(true),

		Running: base.Foreground(t.Success),

		Stopped: base.Foreground(t.Error),

		Enabled: base.Foreground(t.Accent),

		KeyHint: base.
			Foreground(t.Primary).
			Bold(true),

		DescHint: base.Foreground(t.FgMuted),

		Dialog: base.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(t.Warning).
			Padding(1, 2),

		DialogTitle: base.
			Foreground(t.Warning).
			Bold(true).
			MarginBottom(1),

		Button: base.
			Background(t.BgSubtle).
			Foreground(t.FgBase).
			Padding(0, 3),

		ButtonSelected: base.
			Background(t.Primary).
			Foreground(t.FgInverted).
			Bold(true).
			Padding(0, 3),

		Markdown: t.buildMarkdownStyles(),
	}
}

// Manager handles theme switching and registration
type Manager struct {
	themes  map[string]*Theme
	current *Theme
}

// DefaultTheme is used when the configured theme is unknown.
const DefaultTheme = "onehalf-dark"

var defaultManager *Manager

func SetDefaultManager(m *Manager) {
	defaultManager = m
}

func DefaultManager() *Manager {
	if defaultManager == nil {
		defaultManager = NewManager(DefaultTheme)
	}
	return defaultManager
}

func CurrentTheme() *Theme {
	return DefaultManager().Current()
}

func NewManager(defaultTheme string) *Manager {
	m := &Manager{
		themes: make(map[string]*Theme),
	}

	m.Register(NewOneHalfDarkTheme())
	m.Register(NewOneHalfLightTheme())

	m.current = m.themes[defaultTheme]
	if m.current == nil {
		m.current = m.themes[DefaultTheme]
	}

	return m
}

func (m *Manager) Register(theme *Theme) {
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	if theme, ok := m.themes[name]; ok {
		m.current = theme
		return nil
	}
	return fmt.Errorf("theme %s not found", name)
}

// List returns the registered theme names, sorted.
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Color utility functions

// ParseHex converts hex string to color
func ParseHex(hex string) color.Color {
	var r, g, b uint8
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b) //nolint:errcheck
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Hex returns c as "#rrggbb".
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
