// Package tui is the interactive front end: a location tab bar, a
// searchable list of agents, and a form editing the open descriptor.
package tui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/billie-coop/agentdeck/internal/form"
	"github.com/billie-coop/agentdeck/internal/history"
	"github.com/billie-coop/agentdeck/internal/launchd"
	"github.com/billie-coop/agentdeck/internal/plist"
	"github.com/billie-coop/agentdeck/internal/tui/components/anim"
	"github.com/billie-coop/agentdeck/internal/tui/components/dialog"
	"github.com/billie-coop/agentdeck/internal/tui/components/status"
	"github.com/billie-coop/agentdeck/internal/tui/events"
	"github.com/billie-coop/agentdeck/internal/tui/styles"
)

// Focus is the panel receiving keys.
type Focus int

const (
	FocusSearch Focus = iota
	FocusSidebar
	FocusForm
)

func (f Focus) next() Focus { return (f + 1) % 3 }

func (f Focus) String() string {
	switch f {
	case FocusSearch:
		return "search"
	case FocusSidebar:
		return "sidebar"
	case FocusForm:
		return "form"
	}
	return "unknown"
}

// Services are the collaborators the model drives. Prober, Saver and
// Events may be nil.
type Services struct {
	Dirs      launchd.Dirs
	Prober    *launchd.Prober
	Saver     *launchd.Saver
	Events    *events.Broker
	Log       *zap.SugaredLogger
	StatusTTL time.Duration

	// Copy puts text on the clipboard. Defaults to the system clipboard.
	Copy func(string) error
	// SaveTheme persists a theme picked in the theme dialog.
	SaveTheme func(name string) error
}

// Model is the root Bubble Tea model.
type Model struct {
	svc      Services
	log      *zap.SugaredLogger
	keys     KeyMap
	editKeys EditKeyMap

	width  int
	height int

	loading *anim.Loading
	pending int

	location launchd.Location
	agents   map[launchd.Location][]launchd.Agent
	visible  []launchd.Agent
	cursor   int
	query    string
	focus    Focus

	doc   *plist.Document
	agent launchd.Agent
	dirty bool

	session     *form.Session
	editor      textarea.Model
	preview     viewport.Model
	showPreview bool

	status   *status.Component
	dialogs  *dialog.Manager
	eventSub <-chan events.Event
}

func New(svc Services) *Model {
	if svc.Log == nil {
		svc.Log = zap.NewNop().Sugar()
	}
	if svc.Copy == nil {
		svc.Copy = clipboard.WriteAll
	}
	if svc.Dirs == nil {
		svc.Dirs = launchd.Dirs{}
	}

	loading := anim.NewLoading("🚀 Launch Agent Manager")
	loading.SetLabel("Scanning launch agents")
	loading.SetProgress(0, len(launchd.Locations))

	m := &Model{
		svc:      svc,
		log:      svc.Log.Named("tui"),
		keys:     DefaultKeyMap(),
		editKeys: DefaultEditKeyMap(),
		loading:  loading,
		pending:  len(launchd.Locations),
		location: launchd.User,
		agents:   make(map[launchd.Location][]launchd.Agent),
		focus:    FocusSidebar,
		session:  form.NewSession(form.LaunchAgentCatalog()),
		editor:   newEditor(),
		preview:  viewport.New(),
		status:   status.New(svc.StatusTTL),
		dialogs:  dialog.NewManager(),
	}
	if svc.Events != nil {
		m.eventSub = svc.Events.Subscribe(
			events.FilesChangedEvent,
			events.WatchErrorEvent,
			events.StatusMessageEvent,
		)
	}
	m.status.SetHint(m.hint())
	return m
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.Prompt = "┃ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.Blur()
	return ta
}

// Init starts discovery of every location.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loading.Init(), m.listenForEvents()}
	for _, loc := range launchd.Locations {
		cmds = append(cmds, scanCmd(loc, m.svc.Dirs, m.svc.Prober))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.status.SetHint(m.hint())
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.resize()

	case spinner.TickMsg:
		if m.loading == nil {
			return nil
		}
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return cmd

	case status.ExpireMsg:
		m.status, _ = m.status.Update(msg)
		return nil

	case dialog.ClosedMsg:
		return m.dialogClosed(msg)

	case events.Event:
		return m.handleEvent(msg)

	case scannedMsg:
		return m.handleScanned(msg)

	case loadedMsg:
		return m.handleLoaded(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case revertedMsg:
		return m.handleReverted(msg)

	case copiedMsg:
		if msg.err != nil {
			return m.status.Error("✗ Clipboard unavailable: " + msg.err.Error())
		}
		return m.status.Success("✓ Copied " + msg.filename + " to the clipboard")

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.session.Editing() {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.dialogs.IsOpen() {
		var cmd tea.Cmd
		m.dialogs, cmd = m.dialogs.Update(msg)
		return cmd
	}

	if m.loading != nil {
		if key.Matches(msg, m.keys.Quit) {
			return m.openQuit()
		}
		return nil
	}

	if m.session.Editing() {
		return m.handleEditKey(msg)
	}

	if m.focus == FocusSearch {
		if cmd, handled := m.handleSearchKey(msg); handled {
			return cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.openQuit()
	case key.Matches(msg, m.keys.Help):
		return m.dialogs.Open(dialog.HelpKind)
	case key.Matches(msg, m.keys.Theme):
		return m.dialogs.Open(dialog.ThemeKind)
	case key.Matches(msg, m.keys.Focus):
		m.focus = m.focus.next()
		return nil
	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		return nil
	case key.Matches(msg, m.keys.TabUser):
		m.switchLocation(launchd.User)
		return nil
	case key.Matches(msg, m.keys.TabGlob):
		m.switchLocation(launchd.Global)
		return nil
	case key.Matches(msg, m.keys.TabSys):
		m.switchLocation(launchd.Apple)
		return nil
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
		m.refreshPreview()
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyXML()
	case key.Matches(msg, m.keys.Rescan):
		return tea.Batch(m.status.Info("↻ Rescanning "+m.location.DisplayName()), m.rescan(m.location))
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown) && m.showPreview:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	}

	switch m.focus {
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	case FocusForm:
		return m.handleFormKey(msg)
	}
	return nil
}

// handleSearchKey edits the query. Keys it does not consume fall through
// to the global bindings.
func (m *Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.TabUser, m.keys.TabGlob, m.keys.TabSys, m.keys.Focus, m.keys.Save):
		return nil, false
	}

	switch msg.String() {
	case "ctrl+c":
		return nil, false
	case "enter":
		m.focus = FocusSidebar
	case "esc":
		if m.query != "" {
			m.setQuery("")
		} else {
			m.focus = FocusSidebar
		}
	case "backspace":
		if r := []rune(m.query); len(r) > 0 {
			m.setQuery(string(r[:len(r)-1]))
		}
	default:
		if msg.Text != "" {
			m.setQuery(m.query + msg.Text)
		}
	}
	return nil, true
}

func (m *Model) handleSidebarKey(msg tea.KeyPressMsg) tea.Cmd {
	n := len(m.visible)
	switch {
	case n == 0:
		return nil
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + n) % n
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % n
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = n - 1
	case key.Matches(msg, m.keys.Select):
		return loadCmd(m.visible[m.cursor], false)
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.session.Prev()
	case key.Matches(msg, m.keys.Down):
		m.session.Next()
	case key.Matches(msg, m.keys.Home):
		m.session.First()
	case key.Matches(msg, m.keys.End):
		m.session.Last()
	case key.Matches(msg, m.keys.PageUp):
		for range 5 {
			m.session.Prev()
		}
	case key.Matches(msg, m.keys.PageDown):
		for range 5 {
			m.session.Next()
		}
	case key.Matches(msg, m.keys.Select):
		return m.beginEdit()
	case key.Matches(msg, m.keys.Revert):
		return m.revert()
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyPressMsg) tea.Cmd {
	field, _ := m.session.EditingField()

	switch {
	case msg.String() == "ctrl+c":
		return m.openQuit()
	case key.Matches(msg, m.editKeys.Cancel):
		return m.cancelEdit()
	case key.Matches(msg, m.editKeys.Commit):
		return m.commitEdit()
	case !field.Kind.Multiline() && key.Matches(msg, m.editKeys.Apply):
		return m.commitEdit()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.session.SetBuffer(m.editor.Value())
	return cmd
}

func (m *Model) beginEdit() tea.Cmd {
	if m.doc == nil {
		return m.status.Error("✗ No agent selected")
	}
	if err := m.session.Begin(m.doc); err != nil {
		return m.status.Error("✗ " + err.Error())
	}

	field := m.session.Selected()
	m.configureEditor(field)
	m.editor.SetValue(m.session.Buffer())
	m.editor.CursorEnd()
	return tea.Batch(m.editor.Focus(), textarea.Blink)
}

func (m *Model) configureEditor(field form.Field) {
	multi := field.Kind.Multiline()
	m.editor.KeyMap.InsertNewline.SetEnabled(multi)
	if multi {
		m.editor.KeyMap.InsertNewline.SetKeys(m.editKeys.Newline.Keys()...)
		m.editor.SetHeight(editorLines)
	} else {
		m.editor.SetHeight(1)
	}
	m.editor.Placeholder = field.Help
}

func (m *Model) commitEdit() tea.Cmd {
	m.session.SetBuffer(m.editor.Value())
	buf := m.session.Buffer()
	before := m.doc.Clone()

	field, err := m.session.Commit(m.doc)
	m.closeEditor()
	if err != nil {
		return m.status.Error("✗ " + err.Error())
	}

	if !before.Equal(m.doc) {
		m.dirty = true
		m.refreshPreview()
	}
	m.log.Debugw("field committed", "field", field.ID, "dirty", m.dirty)

	if warn := field.Check(buf); warn != nil {
		return m.status.Warning(fmt.Sprintf("⚠ %s: %v", field.Label, warn))
	}
	return m.status.Success("✓ Updated " + field.Label)
}

func (m *Model) cancelEdit() tea.Cmd {
	if err := m.session.Cancel(); err != nil {
		return m.status.Error("✗ " + err.Error())
	}
	m.closeEditor()
	return m.status.Info("Edit cancelled")
}

func (m *Model) closeEditor() {
	m.editor.Blur()
	m.editor.Reset()
}

func (m *Model) openQuit() tea.Cmd {
	m.dialogs.Quit().SetDirty(m.dirty)
	return m.dialogs.Open(dialog.QuitKind)
}

func (m *Model) dialogClosed(msg dialog.ClosedMsg) tea.Cmd {
	if msg.Kind != dialog.ThemeKind || msg.Cancelled {
		return nil
	}
	name, _ := msg.Result.(string)
	m.refreshPreview()
	if m.svc.SaveTheme != nil {
		if err := m.svc.SaveTheme(name); err != nil {
			m.log.Warnw("persist theme", "theme", name, "error", err)
			return m.status.Warning("⚠ Theme applied but not saved: " + err.Error())
		}
	}
	return m.status.Success("🎨 Theme: " + name)
}

func (m *Model) switchLocation(loc launchd.Location) {
	if loc == m.location {
		return
	}
	m.location = loc
	m.visible = launchd.Filter(m.agents[loc], m.query)
	m.cursor = 0
}

func (m *Model) setQuery(q string) {
	m.query = q
	m.visible = launchd.Filter(m.agents[m.location], q)
	m.cursor = 0
}

// refilter recomputes the visible list, keeping the selected agent
// selected when it is still listed.
func (m *Model) refilter() {
	prev, had := m.selectedAgent()
	m.visible = launchd.Filter(m.agents[m.location], m.query)
	m.cursor = 0
	if !had {
		return
	}
	for i, a := range m.visible {
		if a.Path == prev.Path {
			m.cursor = i
			return
		}
	}
}

func (m *Model) selectedAgent() (launchd.Agent, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return launchd.Agent{}, false
	}
	return m.visible[m.cursor], true
}

// rescan discovers loc again with fresh launchctl results.
func (m *Model) rescan(loc launchd.Location) tea.Cmd {
	if m.svc.Prober != nil {
		for _, a := range m.agents[loc] {
			m.svc.Prober.Invalidate(a.Label)
		}
	}
	return scanCmd(loc, m.svc.Dirs, m.svc.Prober)
}

func (m *Model) handleScanned(msg scannedMsg) tea.Cmd {
	if m.loading != nil {
		m.pending--
		total := len(launchd.Locations)
		m.loading.SetProgress(total-m.pending, total)
		if m.pending <= 0 {
			m.loading = nil
		}
	}

	if msg.err != nil {
		m.log.Errorw("scan failed", "location", msg.loc.String(), "error", msg.err)
		return m.status.Error(fmt.Sprintf("✗ Failed to scan %s: %v", msg.loc.DisplayName(), msg.err))
	}

	m.log.Debugw("scanned", "location", msg.loc.String(), "agents", len(msg.agents))
	m.agents[msg.loc] = msg.agents
	if msg.loc == m.location {
		m.refilter()
	}
	return nil
}

func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	if msg.err != nil {
		if msg.quiet && errors.Is(msg.err, os.ErrNotExist) {
			return m.status.Warning("⚠ " + msg.agent.Filename + " was removed from disk; ctrl+s writes it back")
		}
		m.log.Errorw("load failed", "path", msg.agent.Path, "error", msg.err)
		return m.status.Error(fmt.Sprintf("✗ Failed to read %s: %v", msg.agent.Filename, msg.err))
	}

	if msg.quiet {
		// The document may have been edited while the file was read.
		if m.session.Editing() || m.dirty || msg.agent.Path != m.agent.Path || msg.doc.Equal(m.doc) {
			return nil
		}
		m.doc = msg.doc
		m.refreshPreview()
		return m.status.Info("↻ Reloaded " + msg.agent.Filename + " from disk")
	}

	discarded := m.dirty && msg.agent.Path != m.agent.Path
	prevName := m.agent.Filename

	m.doc = msg.doc
	m.agent = msg.agent
	m.dirty = false
	m.session.Reset()
	m.closeEditor()
	m.refreshPreview()
	m.focus = FocusForm
	m.log.Infow("loaded", "path", msg.agent.Path)

	if discarded {
		return m.status.Warning(fmt.Sprintf("Loaded %s (unsaved changes to %s discarded)", msg.agent.Filename, prevName))
	}
	return m.status.Info("Loaded " + msg.agent.Filename)
}

func (m *Model) save() tea.Cmd {
	if m.doc == nil {
		return m.status.Error("✗ No agent selected")
	}
	if m.agent.Location.ReadOnly() {
		return m.status.Error("✗ " + m.agent.Location.DisplayName() + " agents are read-only")
	}
	if m.svc.Saver == nil {
		return m.status.Error("✗ Saving is not available")
	}
	return saveCmd(m.svc.Saver, m.agent, m.doc.Clone())
}

func (m *Model) handleSaved(msg savedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Errorw("save failed", "path", msg.agent.Path, "error", msg.err)
		return m.status.Error(fmt.Sprintf("✗ Failed to save %s: %v", msg.agent.Filename, msg.err))
	}

	// Edits made while the save ran keep the document dirty.
	if msg.agent.Path == m.agent.Path && msg.doc.Equal(m.doc) {
		m.dirty = false
	}

	var note tea.Cmd
	if msg.result.ReloadErr != nil {
		m.log.Warnw("reload failed", "path", msg.agent.Path, "error", msg.result.ReloadErr)
		note = m.status.Warning(msg.result.Message())
	} else {
		note = m.status.Success(msg.result.Message())
	}
	return tea.Batch(note, m.rescan(msg.agent.Location))
}

func (m *Model) revert() tea.Cmd {
	if m.doc == nil {
		return m.status.Error("✗ No agent selected")
	}
	if m.svc.Saver == nil {
		return m.status.Error("✗ No save history available")
	}
	return revertCmd(m.svc.Saver, m.agent)
}

func (m *Model) handleReverted(msg revertedMsg) tea.Cmd {
	if msg.err != nil {
		if errors.Is(msg.err, history.ErrNotFound) {
			return m.status.Warning("No earlier version of " + msg.agent.Filename + " to restore")
		}
		m.log.Errorw("restore failed", "path", msg.agent.Path, "error", msg.err)
		return m.status.Error("✗ Failed to restore " + msg.agent.Filename + ": " + msg.err.Error())
	}
	if msg.agent.Path != m.agent.Path {
		return nil
	}
	if m.session.Editing() {
		return m.status.Warning("⚠ Finish editing before restoring")
	}

	m.doc = msg.doc
	m.dirty = true
	m.session.Reset()
	m.refreshPreview()
	when := msg.entry.SavedAt.Local().Format("2006-01-02 15:04:05")
	return m.status.Success(fmt.Sprintf("↶ Restored %s as it was before %s; ctrl+s to save", msg.agent.Filename, when))
}

func (m *Model) copyXML() tea.Cmd {
	if m.doc == nil {
		return m.status.Error("✗ No agent selected")
	}
	return copyCmd(m.svc.Copy, m.agent.Filename, plist.Encode(m.doc))
}

func (m *Model) refreshPreview() {
	if m.doc == nil {
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(styles.HighlightXML(plist.Encode(m.doc)))
}

// hint is the key reference for the current mode.
func (m *Model) hint() string {
	if field, ok := m.session.EditingField(); ok {
		if field.Kind.Multiline() {
			return "EDITING: " + field.Label + " | Ctrl+S=Save, Alt+Enter=New Line, Esc=Cancel"
		}
		return "EDITING: " + field.Label + " | Enter=Save, Esc=Cancel"
	}
	switch m.focus {
	case FocusSearch:
		return "Type to filter agents | Enter=Focus Sidebar, Tab=Next Panel, 1/2/3=Switch Tabs"
	case FocusSidebar:
		return "j/k=Navigate, Enter=Load, /=Search, 1/2/3=Switch Tabs, ?=Help"
	default:
		return "j/k=Navigate Fields, Enter=Edit, PgUp/PgDn=Scroll, Ctrl+S=Save | Tab=Switch Panel, 1/2/3=Switch Tabs"
	}
}

// Dirty reports whether the open document has unsaved changes.
func (m *Model) Dirty() bool { return m.dirty }

// Close releases the event subscription.
func (m *Model) Close() {
	if m.svc.Events != nil && m.eventSub != nil {
		m.svc.Events.Unsubscribe(m.eventSub)
		m.eventSub = nil
	}
}
