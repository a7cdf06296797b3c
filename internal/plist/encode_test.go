package plist

import (
	"strings"
	"testing"
)

func TestEncode_Empty(t *testing.T) {
	got := Encode(&Document{})
	if got != header+footer {
		t.Errorf("Encode(empty) = %q", got)
	}
	if Encode(nil) != header+footer {
		t.Error("Encode(nil) should produce an empty dict")
	}
}

func TestEncode_CanonicalOrder(t *testing.T) {
	doc := &Document{
		EnvironmentVariables:   map[string]string{"B": "2", "A": "1"},
		Program:                String("/bin/sh"),
		Label:                  String("com.example.order"),
		LimitLoadToSessionType: sessionPtr(SingleSession("Aqua")),
		RunAtLoad:              Bool(true),
		ProgramArguments:       []string{"sh", "-c", "true"},
	}
	out := Encode(doc)

	order := []string{
		"<key>Label</key>",
		"<key>ProgramArguments</key>",
		"<key>RunAtLoad</key>",
		"<key>Program</key>",
		"<key>LimitLoadToSessionType</key>",
		"<key>EnvironmentVariables</key>",
		"<key>A</key>",
		"<key>B</key>",
	}
	last := -1
	for _, want := range order {
		idx := strings.Index(out, want)
		if idx < 0 {
			t.Fatalf("output missing %s:\n%s", want, out)
		}
		if idx < last {
			t.Errorf("%s out of order:\n%s", want, out)
		}
		last = idx
	}
}

func TestEncode_Values(t *testing.T) {
	doc := &Document{
		StartInterval:          Int(600),
		KeepAlive:              Bool(false),
		LimitLoadToSessionType: sessionPtr(MultipleSessions("Aqua", "LoginWindow")),
		WorkingDirectory:       String("/tmp/a<b>&c"),
	}
	out := Encode(doc)

	for _, want := range []string{
		"\t<integer>600</integer>\n",
		"\t<false/>\n",
		"\t<array>\n\t\t<string>Aqua</string>\n\t\t<string>LoginWindow</string>\n\t</array>\n",
		"<string>/tmp/a&lt;b&gt;&amp;c</string>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML declaration")
	}
	if !strings.HasSuffix(out, "</plist>\n") {
		t.Error("missing plist footer")
	}
}
