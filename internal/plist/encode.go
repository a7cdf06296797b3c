package plist

import (
	"encoding/xml"
	"slices"
	"strconv"
	"strings"
)

const (
	header = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
`
	footer = "</dict>\n</plist>\n"
)

// Encode writes d as a property list. Keys appear in CanonicalKeys order and
// absent attributes are omitted. EnvironmentVariables entries are written in
// sorted key order.
func Encode(d *Document) string {
	e := &encoder{}
	e.b.WriteString(header)
	if d != nil {
		for _, key := range CanonicalKeys {
			e.field(d, key)
		}
	}
	e.b.WriteString(footer)
	return e.b.String()
}

type encoder struct {
	b strings.Builder
}

func (e *encoder) field(d *Document, key string) {
	switch keyKinds[key] {
	case kindString:
		if v := *d.stringSlot(key); v != nil {
			e.key(key)
			e.str(1, *v)
		}
	case kindInteger:
		if v := *d.intSlot(key); v != nil {
			e.key(key)
			e.line(1, "<integer>"+strconv.Itoa(*v)+"</integer>")
		}
	case kindBool:
		if v := *d.boolSlot(key); v != nil {
			e.key(key)
			if *v {
				e.line(1, "<true/>")
			} else {
				e.line(1, "<false/>")
			}
		}
	case kindStringArray:
		if v := *d.listSlot(key); v != nil {
			e.key(key)
			e.array(v)
		}
	case kindSession:
		st := d.LimitLoadToSessionType
		if st == nil {
			return
		}
		e.key(key)
		if st.IsMultiple() {
			e.array(st.Values())
		} else {
			v, _ := st.Single()
			e.str(1, v)
		}
	case kindStringDict:
		if d.EnvironmentVariables == nil {
			return
		}
		e.key(key)
		e.line(1, "<dict>")
		names := make([]string, 0, len(d.EnvironmentVariables))
		for name := range d.EnvironmentVariables {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			e.line(2, "<key>"+escape(name)+"</key>")
			e.str(2, d.EnvironmentVariables[name])
		}
		e.line(1, "</dict>")
	}
}

func (e *encoder) key(name string) {
	e.line(1, "<key>"+escape(name)+"</key>")
}

func (e *encoder) str(depth int, v string) {
	e.line(depth, "<string>"+escape(v)+"</string>")
}

func (e *encoder) array(items []string) {
	e.line(1, "<array>")
	for _, item := range items {
		e.str(2, item)
	}
	e.line(1, "</array>")
}

func (e *encoder) line(depth int, s string) {
	for range depth {
		e.b.WriteByte('\t')
	}
	e.b.WriteString(s)
	e.b.WriteByte('\n')
}

// escape uses the XML text escaping of encoding/xml; lex resolves every
// reference it produces, including the numeric ones for control characters.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
