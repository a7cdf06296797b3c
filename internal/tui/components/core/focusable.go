package core

import tea "github.com/charmbracelet/bubbletea/v2"

// FocusableBase is embedded by panels that take keyboard focus in turn.
type FocusableBase struct {
	focused bool
}

func (f *FocusableBase) IsFocused() bool {
	return f.focused
}

func (f *FocusableBase) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *FocusableBase) Blur() tea.Cmd {
	f.focused = false
	return nil
}

// SetFocused focuses or blurs depending on on.
func (f *FocusableBase) SetFocused(on bool) tea.Cmd {
	if on {
		return f.Focus()
	}
	return f.Blur()
}
