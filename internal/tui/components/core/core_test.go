package core

import "testing"

func TestSizeableBase(t *testing.T) {
	var s SizeableBase
	s.SetSize(40, 10)
	if w, h := s.GetSize(); w != 40 || h != 10 {
		t.Fatalf("GetSize = %d,%d", w, h)
	}
}

func TestFocusableBase(t *testing.T) {
	var f FocusableBase
	var _ Focusable = &f
	if f.IsFocused() {
		t.Fatal("zero value focused")
	}
	f.Focus()
	if !f.IsFocused() {
		t.Fatal("Focus did not focus")
	}
	f.Blur()
	if f.IsFocused() {
		t.Fatal("Blur did not blur")
	}
}
