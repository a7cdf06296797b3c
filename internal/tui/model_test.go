package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/agentdeck/internal/history"
	"github.com/billie-coop/agentdeck/internal/launchd"
	"github.com/billie-coop/agentdeck/internal/plist"
	"github.com/billie-coop/agentdeck/internal/tui/components/dialog"
	"github.com/billie-coop/agentdeck/internal/tui/components/status"
	"github.com/billie-coop/agentdeck/internal/tui/events"
)

// okRunner answers every launchctl call with success and no output.
type okRunner struct{ calls []string }

func (r *okRunner) Run(_ context.Context, name string, args ...string) (launchd.Output, error) {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return launchd.Output{}, nil
}

const alphaXML = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>com.example.alpha</string>
	<key>StartInterval</key>
	<integer>600</integer>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`

type fixture struct {
	m      *Model
	dirs   launchd.Dirs
	runner *okRunner
	copied string
}

func press(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case "ctrl+z":
		return tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

func newFixture(t *testing.T, journal launchd.Journal) *fixture {
	t.Helper()
	root := t.TempDir()
	dirs := launchd.Dirs{
		launchd.User:   filepath.Join(root, "user"),
		launchd.Global: filepath.Join(root, "global"),
		launchd.Apple:  filepath.Join(root, "apple"),
	}
	if err := os.MkdirAll(dirs[launchd.User], 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(name, text string) {
		if err := os.WriteFile(filepath.Join(dirs[launchd.User], name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("com.example.alpha.plist", alphaXML)
	write("com.example.beta.plist", strings.ReplaceAll(alphaXML, "alpha", "beta"))
	write("org.other.gamma.plist", strings.ReplaceAll(alphaXML, "com.example.alpha", "org.other.gamma"))

	f := &fixture{dirs: dirs, runner: &okRunner{}}
	reloader := launchd.NewReloader("launchctl", f.runner, nil)
	f.m = New(Services{
		Dirs:  dirs,
		Saver: launchd.NewSaver(journal, reloader, 5, nil),
		Copy: func(s string) error {
			f.copied = s
			return nil
		},
	})
	f.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	for _, loc := range launchd.Locations {
		f.send(scanCmd(loc, dirs, nil)())
	}
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func (f *fixture) key(k string) tea.Cmd {
	return f.send(press(k))
}

// open loads the agent at the sidebar cursor.
func (f *fixture) open(t *testing.T) {
	t.Helper()
	cmd := f.key("enter")
	if cmd == nil {
		t.Fatal("enter on the sidebar produced no load")
	}
	f.send(cmd())
	if f.m.doc == nil {
		t.Fatal("document not loaded")
	}
}

func (f *fixture) statusText() string {
	msg, _ := f.m.status.Current()
	return msg.Text
}

func TestLoadingEndsAfterAllLocations(t *testing.T) {
	m := New(Services{})
	if m.loading == nil {
		t.Fatal("model starts without loading screen")
	}
	m.Update(scannedMsg{loc: launchd.User})
	m.Update(scannedMsg{loc: launchd.Global})
	if m.loading == nil {
		t.Fatal("loading ended early")
	}
	m.Update(scannedMsg{loc: launchd.Apple})
	if m.loading != nil {
		t.Fatal("loading still shown after every scan")
	}
}

func TestSidebarNavigationWraps(t *testing.T) {
	f := newFixture(t, nil)
	if got := len(f.m.visible); got != 3 {
		t.Fatalf("visible = %d", got)
	}

	f.key("k")
	if f.m.cursor != 2 {
		t.Fatalf("k from top: cursor = %d", f.m.cursor)
	}
	f.key("j")
	if f.m.cursor != 0 {
		t.Fatalf("j from bottom: cursor = %d", f.m.cursor)
	}
	f.key("G")
	if f.m.cursor != 2 {
		t.Fatalf("G: cursor = %d", f.m.cursor)
	}
	f.key("g")
	if f.m.cursor != 0 {
		t.Fatalf("g: cursor = %d", f.m.cursor)
	}
}

func TestSearchFilters(t *testing.T) {
	f := newFixture(t, nil)

	f.key("/")
	if f.m.focus != FocusSearch {
		t.Fatalf("focus = %v", f.m.focus)
	}
	for _, r := range "gam" {
		f.key(string(r))
	}
	if f.m.query != "gam" || len(f.m.visible) != 1 || f.m.visible[0].Label != "org.other.gamma" {
		t.Fatalf("query %q visible %+v", f.m.query, f.m.visible)
	}

	f.key("backspace")
	if f.m.query != "ga" {
		t.Fatalf("query after backspace = %q", f.m.query)
	}

	f.key("esc")
	if f.m.query != "" || len(f.m.visible) != 3 {
		t.Fatalf("esc did not clear: %q, %d", f.m.query, len(f.m.visible))
	}
	f.key("esc")
	if f.m.focus != FocusSidebar {
		t.Fatalf("second esc focus = %v", f.m.focus)
	}
}

func TestTabsSwitchLocation(t *testing.T) {
	f := newFixture(t, nil)
	f.key("2")
	if f.m.location != launchd.Global || len(f.m.visible) != 0 {
		t.Fatalf("location %v visible %d", f.m.location, len(f.m.visible))
	}
	if !strings.Contains(f.m.render(), "No agents found") {
		t.Fatal("empty location not reported")
	}
	f.key("1")
	if len(f.m.visible) != 3 {
		t.Fatalf("back on user: visible %d", len(f.m.visible))
	}
}

func TestLoadAndEditInteger(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)

	if f.m.focus != FocusForm {
		t.Fatalf("focus after load = %v", f.m.focus)
	}
	if !f.m.session.Select(plist.KeyStartInterval) {
		t.Fatal("StartInterval not in catalog")
	}

	f.key("enter")
	if !f.m.session.Editing() || f.m.editor.Value() != "600" {
		t.Fatalf("editing %v, seed %q", f.m.session.Editing(), f.m.editor.Value())
	}

	// Navigation is inert while editing.
	cursor := f.m.session.Cursor()
	f.key("j")
	if f.m.session.Cursor() != cursor {
		t.Fatal("j moved the cursor during an edit")
	}

	f.m.editor.SetValue("605")
	f.key("enter")
	if f.m.session.Editing() {
		t.Fatal("enter did not commit")
	}
	if f.m.doc.StartInterval == nil || *f.m.doc.StartInterval != 605 {
		t.Fatalf("StartInterval = %v", f.m.doc.StartInterval)
	}
	if !f.m.dirty {
		t.Fatal("document not marked dirty")
	}
}

func TestIntegerBadInputClearsWithWarning(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	f.m.session.Select(plist.KeyStartInterval)

	f.key("enter")
	f.m.editor.SetValue("abc")
	f.key("enter")

	if f.m.doc.StartInterval != nil {
		t.Fatalf("StartInterval = %v, want absent", *f.m.doc.StartInterval)
	}
	if got := f.statusText(); !strings.Contains(got, "Start Interval") {
		t.Fatalf("status = %q", got)
	}
}

func TestCancelLeavesDocument(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	f.m.session.Select(plist.KeyLabel)
	before := f.m.doc.Clone()

	f.key("enter")
	f.m.editor.SetValue("changed")
	f.key("esc")

	if f.m.session.Editing() {
		t.Fatal("esc did not cancel")
	}
	if !f.m.doc.Equal(before) || f.m.dirty {
		t.Fatal("cancel changed the document")
	}
}

func TestMultilineEditCommitsWithCtrlS(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	f.m.session.Select(plist.KeyProgramArguments)

	f.key("enter")
	f.m.editor.SetValue("/usr/bin/true\n--flag")
	f.key("enter")
	if !f.m.session.Editing() {
		t.Fatal("enter committed a multi-line field")
	}

	f.key("ctrl+s")
	if f.m.session.Editing() {
		t.Fatal("ctrl+s did not commit")
	}
	want := []string{"/usr/bin/true", "--flag"}
	if got := f.m.doc.ProgramArguments; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("ProgramArguments = %q", got)
	}
}

func TestSaveWithoutDocument(t *testing.T) {
	f := newFixture(t, nil)
	if cmd := f.key("ctrl+s"); cmd == nil {
		t.Fatal("no status command")
	}
	if got := f.statusText(); got != "✗ No agent selected" {
		t.Fatalf("status = %q", got)
	}
}

func TestSaveWritesAndReloads(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	f.m.session.Select(plist.KeyKeepAlive)
	f.key("enter")
	f.m.editor.SetValue("true")
	f.key("enter")

	cmd := f.key("ctrl+s")
	if cmd == nil {
		t.Fatal("ctrl+s produced no save")
	}
	f.send(cmd())

	data, err := os.ReadFile(f.m.agent.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != plist.Encode(f.m.doc) {
		t.Fatalf("file on disk:\n%s", data)
	}
	if f.m.dirty {
		t.Fatal("still dirty after save")
	}
	if got := f.statusText(); !strings.Contains(got, "Saved and reloaded") {
		t.Fatalf("status = %q", got)
	}
	if len(f.runner.calls) != 2 {
		t.Fatalf("launchctl calls = %q", f.runner.calls)
	}
}

func TestRevertRestoresBackup(t *testing.T) {
	store, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	f := newFixture(t, store)
	f.open(t)
	original := f.m.doc.Clone()

	f.m.session.Select(plist.KeyLabel)
	f.key("enter")
	f.m.editor.SetValue("com.example.renamed")
	f.key("enter")
	f.send(f.key("ctrl+s")())

	cmd := f.key("ctrl+z")
	if cmd == nil {
		t.Fatal("ctrl+z produced no restore")
	}
	f.send(cmd())

	if !f.m.doc.Equal(original) {
		t.Fatalf("restored label = %v", *f.m.doc.Label)
	}
	if !f.m.dirty {
		t.Fatal("restored document should need saving")
	}
}

func TestRevertWithoutHistory(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	f.send(f.key("ctrl+z")())
	if got := f.statusText(); !strings.Contains(got, "No earlier version") {
		t.Fatalf("status = %q", got)
	}
}

func TestReadOnlyLocationRefusesSave(t *testing.T) {
	f := newFixture(t, nil)
	f.m.doc = plist.Decode(alphaXML)
	f.m.agent = launchd.Agent{Filename: "x.plist", Path: "/nowhere/x.plist", Location: launchd.Apple}

	if cmd := f.key("ctrl+s"); cmd == nil {
		t.Fatal("no status command")
	}
	if got := f.statusText(); !strings.Contains(got, "read-only") {
		t.Fatalf("status = %q", got)
	}
}

func TestCopyXML(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	f.send(f.key("y")())
	if f.copied != plist.Encode(f.m.doc) {
		t.Fatalf("copied %q", f.copied)
	}
}

func TestPreviewToggle(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	f.key("p")
	if !f.m.showPreview {
		t.Fatal("p did not show the preview")
	}
	if view := f.m.render(); !strings.Contains(view, "Preview") {
		t.Fatal("preview panel not rendered")
	}
	f.key("p")
	if f.m.showPreview {
		t.Fatal("p did not hide the preview")
	}
}

func TestQuitOpensConfirmation(t *testing.T) {
	f := newFixture(t, nil)
	f.key("q")
	if f.m.dialogs.Active() != dialog.QuitKind {
		t.Fatalf("active dialog = %q", f.m.dialogs.Active())
	}
	if !strings.Contains(f.m.render(), "Quit LaunchAgent Manager?") {
		t.Fatal("quit dialog not rendered")
	}
	f.key("n")
	if f.m.dialogs.IsOpen() {
		t.Fatal("n did not close the dialog")
	}
}

func TestFilesChangedNeverTouchesOpenEdit(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	f.m.session.Select(plist.KeyLabel)
	f.key("enter")
	before := f.m.doc.Clone()

	f.send(events.Event{
		Type:    events.FilesChangedEvent,
		Payload: events.FilesChangedPayload{Paths: []string{f.m.agent.Path}},
	})

	if !f.m.session.Editing() || !f.m.doc.Equal(before) {
		t.Fatal("watcher event disturbed the edit")
	}
	if got := f.statusText(); !strings.Contains(got, "changed on disk") {
		t.Fatalf("status = %q", got)
	}
}

func TestSidebarStatusIcons(t *testing.T) {
	f := newFixture(t, nil)
	if len(f.m.visible) != 3 {
		t.Fatalf("visible = %d agents, want 3", len(f.m.visible))
	}
	f.m.visible[0].Status = launchd.StatusRunning
	f.m.visible[1].Status = launchd.StatusStopped
	f.m.visible[2].Status = launchd.StatusError

	sidebar := f.m.renderSidebar(f.m.sidebarWidth(), 20)
	for _, want := range []string{"●", "○", "✗", "Running", "Stopped"} {
		if !strings.Contains(sidebar, want) {
			t.Errorf("sidebar missing %q:\n%s", want, sidebar)
		}
	}
}

func TestStatusMessageEvent(t *testing.T) {
	tests := []struct {
		kind string
		want status.Kind
	}{
		{"warning", status.Warning},
		{"error", status.Error},
		{"success", status.Success},
		{"", status.Info},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			f := newFixture(t, nil)
			f.send(events.Event{
				Type:    events.StatusMessageEvent,
				Payload: events.StatusMessagePayload{Message: "History unavailable", Type: tt.kind},
			})

			msg, ok := f.m.status.Current()
			if !ok || msg.Text != "History unavailable" {
				t.Fatalf("status = %+v, %v", msg, ok)
			}
			if msg.Kind != tt.want {
				t.Errorf("kind = %v, want %v", msg.Kind, tt.want)
			}
		})
	}
}

func TestQuietReloadPicksUpExternalChange(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)

	changed := strings.ReplaceAll(alphaXML, "600", "900")
	if err := os.WriteFile(f.m.agent.Path, []byte(changed), 0o644); err != nil {
		t.Fatal(err)
	}
	f.send(loadCmd(f.m.agent, true)())

	if f.m.doc.StartInterval == nil || *f.m.doc.StartInterval != 900 {
		t.Fatalf("StartInterval = %v", f.m.doc.StartInterval)
	}
	if f.m.focus != FocusForm {
		t.Fatalf("focus = %v", f.m.focus)
	}
}

func TestQuietReloadOfRemovedFile(t *testing.T) {
	f := newFixture(t, nil)
	f.open(t)
	if err := os.Remove(f.m.agent.Path); err != nil {
		t.Fatal(err)
	}
	f.send(loadCmd(f.m.agent, true)())
	if f.m.doc == nil {
		t.Fatal("document dropped")
	}
	if got := f.statusText(); !strings.Contains(got, "removed") {
		t.Fatalf("status = %q", got)
	}
}

func TestScanErrorReported(t *testing.T) {
	f := newFixture(t, nil)
	f.send(scannedMsg{loc: launchd.Global, err: errors.New("permission denied")})
	if got := f.statusText(); !strings.Contains(got, "permission denied") {
		t.Fatalf("status = %q", got)
	}
}

func TestHintFollowsMode(t *testing.T) {
	f := newFixture(t, nil)
	if got := f.m.hint(); !strings.HasPrefix(got, "j/k=Navigate,") {
		t.Fatalf("sidebar hint = %q", got)
	}
	f.open(t)
	f.m.session.Select(plist.KeyRunAtLoad)
	f.key("enter")
	if got := f.m.hint(); got != "EDITING: Run At Load | Enter=Save, Esc=Cancel" {
		t.Fatalf("edit hint = %q", got)
	}
}
