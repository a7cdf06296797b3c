// Package form lays a service descriptor out as an ordered list of editable
// fields and runs the select/edit/commit cycle over them.
//
// Every field is edited as free text. Each Kind knows how to render its typed
// value as text and how to read text back. Reading back never fails: input
// that does not fit the kind is coerced (bad integers clear the attribute,
// anything but "true" is false).
package form

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/billie-coop/agentdeck/internal/plist"
)

// Kind is the value type of a field.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInteger
	KindStringList
	KindStringMap
	KindSessionType
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindStringList:
		return "list"
	case KindStringMap:
		return "map"
	case KindSessionType:
		return "session type"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Multiline reports whether the kind is edited one entry per line.
func (k Kind) Multiline() bool {
	return k == KindStringList || k == KindStringMap || k == KindSessionType
}

// codec converts one kind's typed value to edit text and back.
type codec[T any] struct {
	kind   Kind
	render func(T) string
	parse  func(string) T
	check  func(string) error
}

var (
	errNotInteger = errors.New("not an integer, the value will be cleared")
	errNotBool    = errors.New(`only "true" is true, the value will be false`)
	errNoSep      = errors.New("lines without '=' are dropped")
)

var stringCodec = codec[*string]{
	kind: KindString,
	render: func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	},
	parse: func(buf string) *string {
		if buf == "" {
			return nil
		}
		return plist.String(buf)
	},
}

var intCodec = codec[*int]{
	kind: KindInteger,
	render: func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	},
	parse: func(buf string) *int {
		n, err := strconv.ParseInt(buf, 10, 32)
		if err != nil {
			return nil
		}
		return plist.Int(int(n))
	},
	check: func(buf string) error {
		if buf == "" {
			return nil
		}
		if _, err := strconv.Atoi(buf); err != nil {
			return errNotInteger
		}
		return nil
	},
}

var boolCodec = codec[*bool]{
	kind: KindBool,
	render: func(v *bool) string {
		if v != nil && *v {
			return "true"
		}
		return "false"
	},
	parse: func(buf string) *bool {
		return plist.Bool(buf == "true")
	},
	check: func(buf string) error {
		if buf != "true" && buf != "false" {
			return errNotBool
		}
		return nil
	},
}

var listCodec = codec[[]string]{
	kind: KindStringList,
	render: func(v []string) string {
		return strings.Join(v, "\n")
	},
	parse: func(buf string) []string {
		lines := nonBlankLines(buf)
		if len(lines) == 0 {
			return nil
		}
		return lines
	},
}

var mapCodec = codec[map[string]string]{
	kind: KindStringMap,
	render: func(v map[string]string) string {
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, k+"="+v[k])
		}
		return strings.Join(lines, "\n")
	},
	parse: func(buf string) map[string]string {
		out := make(map[string]string)
		for _, line := range strings.Split(buf, "\n") {
			key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
			if !ok {
				continue
			}
			out[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		if len(out) == 0 {
			return nil
		}
		return out
	},
	check: func(buf string) error {
		for _, line := range nonBlankLines(buf) {
			if !strings.Contains(line, "=") {
				return errNoSep
			}
		}
		return nil
	},
}

var sessionCodec = codec[*plist.SessionType]{
	kind: KindSessionType,
	render: func(v *plist.SessionType) string {
		if v == nil {
			return ""
		}
		if s, ok := v.Single(); ok {
			return s
		}
		return strings.Join(v.Values(), "\n")
	},
	parse: func(buf string) *plist.SessionType {
		lines := nonBlankLines(buf)
		var st plist.SessionType
		switch len(lines) {
		case 0:
			return nil
		case 1:
			st = plist.SingleSession(lines[0])
		default:
			st = plist.MultipleSessions(lines...)
		}
		return &st
	},
}

// nonBlankLines returns the trimmed lines of buf that are not empty.
func nonBlankLines(buf string) []string {
	var out []string
	for _, line := range strings.Split(buf, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
