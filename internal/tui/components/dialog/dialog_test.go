package dialog

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

func press(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// drain runs cmd and any batched commands, collecting their messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func closedIn(msgs []tea.Msg) (ClosedMsg, bool) {
	for _, m := range msgs {
		if c, ok := m.(ClosedMsg); ok {
			return c, true
		}
	}
	return ClosedMsg{}, false
}

func TestQuitDialog(t *testing.T) {
	tests := []struct {
		key       string
		cancelled bool
		confirmed bool
	}{
		{"y", false, true},
		{"Y", false, true},
		{"n", true, false},
		{"N", true, false},
		{"esc", true, false},
		{"enter", true, false}, // "No" is preselected
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d := NewQuitDialog()
			d.Open()
			d.Update(press(tt.key))

			if d.IsOpen() {
				t.Fatal("dialog still open")
			}
			if d.IsCancelled() != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", d.IsCancelled(), tt.cancelled)
			}
			if confirmed := d.Result() == true; confirmed != tt.confirmed {
				t.Errorf("confirmed = %v, want %v", confirmed, tt.confirmed)
			}
		})
	}
}

func TestQuitDialogToggle(t *testing.T) {
	d := NewQuitDialog()
	d.Open()
	d.Update(press("l"))
	d.Update(press("enter"))
	if d.Result() != true {
		t.Fatal("enter on Yes did not confirm")
	}
}

func TestQuitDialogView(t *testing.T) {
	d := NewQuitDialog()
	if d.View() != "" {
		t.Fatal("closed dialog rendered")
	}
	d.SetDirty(true)
	d.Open()
	view := d.View()
	for _, want := range []string{"Confirm Exit", "Quit LaunchAgent Manager?", "[Y]es", "[N]o", "Unsaved"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestManagerEmitsClosed(t *testing.T) {
	m := NewManager()
	m.SetSize(100, 40)

	m.Open(HelpKind)
	if !m.IsOpen() || m.Active() != HelpKind {
		t.Fatalf("active = %q", m.Active())
	}

	_, cmd := m.Update(press("esc"))
	if m.IsOpen() {
		t.Fatal("help still open")
	}
	closed, ok := closedIn(drain(cmd))
	if !ok || closed.Kind != HelpKind {
		t.Fatalf("closed = %+v, %v", closed, ok)
	}
}

func TestManagerIgnoresInputWhenClosed(t *testing.T) {
	m := NewManager()
	if _, cmd := m.Update(press("y")); cmd != nil {
		t.Fatal("closed manager produced a command")
	}
	if m.View() != "" {
		t.Fatal("closed manager rendered")
	}
}

func TestThemeSwitcher(t *testing.T) {
	styles.SetDefaultManager(styles.NewManager(styles.DefaultTheme))
	t.Cleanup(func() { styles.SetDefaultManager(nil) })

	m := NewManager()
	m.Open(ThemeKind)
	m.Update(press("down"))
	if got := styles.CurrentTheme().Name; got == styles.DefaultTheme {
		t.Fatal("moving did not preview another theme")
	}

	m.Update(press("esc"))
	if got := styles.CurrentTheme().Name; got != styles.DefaultTheme {
		t.Fatalf("esc left theme %q", got)
	}

	m.Open(ThemeKind)
	m.Update(press("down"))
	_, cmd := m.Update(press("enter"))
	closed, ok := closedIn(drain(cmd))
	if !ok || closed.Cancelled || closed.Result != styles.CurrentTheme().Name {
		t.Fatalf("closed = %+v", closed)
	}
}
