package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/billie-coop/agentdeck/internal/plist"
)

// Session states.
const (
	StateBrowsing = "browsing"
	StateEditing  = "editing"
)

// Session events.
const (
	EventBegin  = "begin"
	EventCommit = "commit"
	EventCancel = "cancel"
	EventReset  = "reset"
)

var (
	// ErrNoDocument is returned when an edit is started without a document.
	ErrNoDocument = errors.New("no document loaded")
	// ErrNotEditing is returned by Commit and Cancel outside an edit.
	ErrNotEditing = errors.New("not editing")
	// ErrAlreadyEditing is returned by Begin during an edit.
	ErrAlreadyEditing = errors.New("already editing")
)

// Session tracks the selected field, whether it is being edited and the
// live edit buffer. It is owned by a single control loop.
type Session struct {
	catalog *Catalog
	machine *fsm.FSM
	cursor  int
	editing Field
	buffer  string
}

// NewSession starts browsing at the first field of catalog.
func NewSession(catalog *Catalog) *Session {
	s := &Session{catalog: catalog}
	s.machine = fsm.NewFSM(
		StateBrowsing,
		fsm.Events{
			{Name: EventBegin, Src: []string{StateBrowsing}, Dst: StateEditing},
			{Name: EventCommit, Src: []string{StateEditing}, Dst: StateBrowsing},
			{Name: EventCancel, Src: []string{StateEditing}, Dst: StateBrowsing},
			{Name: EventReset, Src: []string{StateEditing}, Dst: StateBrowsing},
		},
		fsm.Callbacks{
			"leave_" + StateEditing: func(_ context.Context, _ *fsm.Event) {
				s.editing = Field{}
				s.buffer = ""
			},
		},
	)
	return s
}

// Catalog returns the catalog the session navigates.
func (s *Session) Catalog() *Catalog { return s.catalog }

// State returns StateBrowsing or StateEditing.
func (s *Session) State() string { return s.machine.Current() }

// Editing reports whether an edit is open.
func (s *Session) Editing() bool { return s.machine.Is(StateEditing) }

// Cursor returns the position of the selected field.
func (s *Session) Cursor() int { return s.cursor }

// Selected returns the field under the cursor.
func (s *Session) Selected() Field { return s.catalog.At(s.cursor) }

// EditingField returns the field being edited, if any.
func (s *Session) EditingField() (Field, bool) {
	if !s.Editing() {
		return Field{}, false
	}
	return s.editing, true
}

// Next moves the cursor forward, wrapping after the last field. It does
// nothing while editing and reports whether the cursor moved.
func (s *Session) Next() bool { return s.move(1) }

// Prev moves the cursor backward, wrapping before the first field.
func (s *Session) Prev() bool { return s.move(-1) }

// First selects the first field.
func (s *Session) First() bool { return s.moveTo(0) }

// Last selects the last field.
func (s *Session) Last() bool { return s.moveTo(s.catalog.Len() - 1) }

// Select moves the cursor to the field with the given ID.
func (s *Session) Select(id string) bool {
	_, i, ok := s.catalog.Lookup(id)
	if !ok {
		return false
	}
	return s.moveTo(i)
}

func (s *Session) move(delta int) bool {
	return s.moveTo(s.cursor + delta)
}

func (s *Session) moveTo(i int) bool {
	if s.Editing() || s.catalog.Len() == 0 {
		return false
	}
	s.cursor = s.catalog.wrap(i)
	return true
}

// Buffer returns the live edit text.
func (s *Session) Buffer() string { return s.buffer }

// SetBuffer replaces the edit text. It is ignored outside an edit.
func (s *Session) SetBuffer(text string) {
	if s.Editing() {
		s.buffer = text
	}
}

// Begin opens an edit of the selected field, seeding the buffer from doc.
func (s *Session) Begin(doc *plist.Document) error {
	if doc == nil {
		return ErrNoDocument
	}
	if s.Editing() {
		return ErrAlreadyEditing
	}
	if err := s.machine.Event(context.Background(), EventBegin); err != nil {
		return fmt.Errorf("begin edit: %w", err)
	}
	s.editing = s.Selected()
	s.buffer = s.editing.Seed(doc)
	return nil
}

// Commit writes the buffer into doc through the edited field and closes
// the edit. The text is coerced, never rejected.
func (s *Session) Commit(doc *plist.Document) (Field, error) {
	if !s.Editing() {
		return Field{}, ErrNotEditing
	}
	if doc == nil {
		return Field{}, ErrNoDocument
	}
	f := s.editing
	f.Commit(doc, s.buffer)
	if err := s.machine.Event(context.Background(), EventCommit); err != nil {
		return f, fmt.Errorf("commit edit: %w", err)
	}
	return f, nil
}

// Cancel discards the buffer and closes the edit.
func (s *Session) Cancel() error {
	if !s.Editing() {
		return ErrNotEditing
	}
	if err := s.machine.Event(context.Background(), EventCancel); err != nil {
		return fmt.Errorf("cancel edit: %w", err)
	}
	return nil
}

// Reset closes any open edit without touching a document. It is called
// when the document under the session is replaced. The cursor is kept.
func (s *Session) Reset() {
	if s.Editing() {
		_ = s.machine.Event(context.Background(), EventReset)
	}
	s.editing = Field{}
	s.buffer = ""
}
