package launchd

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleAgent = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>com.example.sample</string>
</dict>
</plist>
`

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.plist"), sampleAgent)
	writeFile(t, filepath.Join(dir, "a.nolabel.plist"), "<plist><dict></dict></plist>")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.plist"), 0o755); err != nil {
		t.Fatal(err)
	}

	agents, err := Discover(Global, dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	var got [][2]string
	for _, a := range agents {
		got = append(got, [2]string{a.Filename, a.Label})
		if a.Location != Global || a.Path != filepath.Join(dir, a.Filename) {
			t.Errorf("agent %s has location %v path %s", a.Filename, a.Location, a.Path)
		}
	}
	want := [][2]string{
		{"a.nolabel.plist", "a.nolabel"},
		{"b.plist", "com.example.sample"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	agents, err := Discover(User, filepath.Join(t.TempDir(), "nope"))
	if err != nil || len(agents) != 0 {
		t.Errorf("Discover(missing) = %v, %v; want no agents and no error", agents, err)
	}
}

func TestScanProbes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.plist"), sampleAgent)
	runner := newFakeRunner().
		on("launchctl print gui/501/com.example.sample", Output{Stdout: "state = running\npid = 7\n"}, nil).
		on("launchctl print-disabled gui/501", Output{Stdout: `"com.example.sample" => enabled`}, nil)
	prober := NewProber(ProberOptions{Runner: runner, UID: 501, PidAlive: func(int32) (bool, error) { return true, nil }})

	agents, err := Scan(context.Background(), User, Dirs{User: dir}, prober)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("Scan() found %d agents", len(agents))
	}
	a := agents[0]
	if a.Status != StatusRunning || a.PID != 7 || !a.Enabled {
		t.Errorf("agent = %+v", a)
	}
}

func TestFilter(t *testing.T) {
	agents := []Agent{
		{Filename: "com.apple.foo.plist", Label: "com.apple.foo"},
		{Filename: "homebrew.mxcl.redis.plist", Label: "homebrew.mxcl.redis"},
		{Filename: "x.plist", Label: "org.Example.Backup"},
	}
	names := func(as []Agent) []string {
		var out []string
		for _, a := range as {
			out = append(out, a.Filename)
		}
		return out
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"com.apple.foo.plist", "homebrew.mxcl.redis.plist", "x.plist"}},
		{"REDIS", []string{"homebrew.mxcl.redis.plist"}},
		{"backup", []string{"x.plist"}},
		{"hmbrw", []string{"homebrew.mxcl.redis.plist"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		if got := names(Filter(agents, tt.query)); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestDirs(t *testing.T) {
	dirs := DefaultDirs("/Users/me").WithOverrides(map[string]string{"global": "/opt/agents", "bogus": "/x", "apple": ""})
	if dirs[User] != "/Users/me/Library/LaunchAgents" || dirs[Global] != "/opt/agents" || dirs[Apple] != "/System/Library/LaunchAgents" {
		t.Errorf("dirs = %v", dirs)
	}
	if loc, ok := dirs.Locate("/opt/agents/a.plist"); !ok || loc != Global {
		t.Errorf("Locate() = %v, %v", loc, ok)
	}
	if _, err := ParseLocation("Apple"); err != nil {
		t.Errorf("ParseLocation(Apple) error = %v", err)
	}
}
