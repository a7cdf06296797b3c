package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Kind identifies the type of dialog
type Kind string

const (
	QuitKind  Kind = "quit"
	HelpKind  Kind = "help"
	ThemeKind Kind = "theme"
)

// Manager owns the dialogs and routes input to the one that is open.
type Manager struct {
	dialogs map[Kind]Dialog
	active  Kind
	width   int
	height  int
}

func NewManager() *Manager {
	return &Manager{
		dialogs: map[Kind]Dialog{
			QuitKind:  NewQuitDialog(),
			HelpKind:  NewHelpDialog(),
			ThemeKind: NewThemeSwitcher(),
		},
	}
}

// Update forwards msg to the active dialog and emits ClosedMsg once it
// closes.
func (m *Manager) Update(msg tea.Msg) (*Manager, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(wsm.Width, wsm.Height)
	}

	if m.active == "" {
		return m, nil
	}

	kind := m.active
	d, cmd := m.dialogs[kind].Update(msg)
	m.dialogs[kind] = d
	if d.IsOpen() {
		return m, cmd
	}

	m.active = ""
	closed := ClosedMsg{Kind: kind, Result: d.Result(), Cancelled: d.IsCancelled()}
	return m, tea.Batch(cmd, func() tea.Msg { return closed })
}

func (m *Manager) View() string {
	if m.active == "" {
		return ""
	}
	return m.dialogs[m.active].View()
}

func (m *Manager) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	var cmds []tea.Cmd
	for _, d := range m.dialogs {
		cmds = append(cmds, d.SetSize(width, height))
	}
	return tea.Batch(cmds...)
}

// Open shows the dialog of the given kind, replacing any open one.
func (m *Manager) Open(kind Kind) tea.Cmd {
	d, ok := m.dialogs[kind]
	if !ok {
		return nil
	}
	if m.active != "" && m.active != kind {
		m.dialogs[m.active].Close()
	}
	m.active = kind
	return d.Open()
}

func (m *Manager) CloseActive() tea.Cmd {
	if m.active == "" {
		return nil
	}
	d := m.dialogs[m.active]
	m.active = ""
	return d.Close()
}

func (m *Manager) IsOpen() bool {
	return m.active != ""
}

func (m *Manager) Active() Kind {
	return m.active
}

// Quit returns the quit dialog so the caller can set its dirty flag.
func (m *Manager) Quit() *QuitDialog {
	return m.dialogs[QuitKind].(*QuitDialog)
}
