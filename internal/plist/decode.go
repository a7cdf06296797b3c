package plist

import (
	"strconv"
	"strings"
)

// Decode reads a service descriptor. It never fails: unknown keys, values of
// the wrong type, unparsable integers and malformed markup are left out of
// the result. When a key occurs more than once the last value wins.
func Decode(text string) *Document {
	d := &decoder{doc: &Document{}}
	for _, tok := range lex(text) {
		d.feed(tok)
	}
	return d.doc
}

// decoder is the state machine behind Decode. Its contexts nest as:
// top-level dict > (array | environment dict). Containers it has no use for
// are skipped whole by counting depth.
type decoder struct {
	doc *Document

	inDict bool
	done   bool
	key    string
	skip   int

	inArray    bool
	arrayOwner string
	items      []string

	inEnv      bool
	env        map[string]string
	envKey     string
	envPending bool
}

func (d *decoder) feed(tok token) {
	if d.done {
		return
	}
	if d.skip > 0 {
		switch {
		case tok.kind == tokOpen && isContainer(tok.name):
			d.skip++
		case tok.kind == tokClose && isContainer(tok.name):
			d.skip--
		}
		return
	}

	switch tok.kind {
	case tokOpen:
		d.open(tok.name)
	case tokClose:
		d.close(tok.name)
	case tokEmpty:
		d.empty(tok.name)
	case tokText:
		d.text(tok.name, tok.text)
	}
}

func isContainer(name string) bool {
	return name == "dict" || name == "array"
}

func (d *decoder) open(name string) {
	switch name {
	case "dict":
		switch {
		case !d.inDict:
			d.inDict = true
		case d.inArray || d.inEnv:
			d.skip = 1
			d.envPending = false
		case d.key == KeyEnvironmentVariables:
			d.inEnv = true
			d.env = make(map[string]string)
			d.envPending = false
		default:
			d.skip = 1
			d.key = ""
		}
	case "array":
		switch {
		case !d.inDict:
			d.skip = 1
		case d.inArray || d.inEnv:
			d.skip = 1
			d.envPending = false
		case d.key == KeyProgramArguments,
			d.key == KeyAssociatedBundleIdentifiers,
			d.key == KeyLimitLoadToSessionType:
			d.inArray = true
			d.arrayOwner = d.key
			d.items = []string{}
		default:
			d.skip = 1
			d.key = ""
		}
	}
}

func (d *decoder) close(name string) {
	switch name {
	case "dict":
		switch {
		case d.inEnv:
			d.doc.EnvironmentVariables = d.env
			d.inEnv = false
			d.env = nil
			d.key = ""
		case d.inDict:
			d.done = true
		}
	case "array":
		if !d.inArray {
			return
		}
		switch d.arrayOwner {
		case KeyLimitLoadToSessionType:
			st := MultipleSessions(d.items...)
			d.doc.LimitLoadToSessionType = &st
		default:
			*d.doc.listSlot(d.arrayOwner) = d.items
		}
		d.inArray = false
		d.items = nil
		d.key = ""
	}
}

func (d *decoder) empty(name string) {
	if !d.scalarContext() {
		d.envPending = false
		return
	}
	if name == "true" || name == "false" {
		if slot := d.doc.boolSlot(d.key); slot != nil {
			*slot = Bool(name == "true")
		}
	}
	d.key = ""
}

func (d *decoder) text(name, value string) {
	switch {
	case d.inEnv:
		switch name {
		case "key":
			d.envKey = value
			d.envPending = true
		case "string":
			if d.envPending {
				d.env[d.envKey] = value
			}
			d.envPending = false
		default:
			d.envPending = false
		}
		return
	case d.inArray:
		if name == "string" {
			d.items = append(d.items, value)
		}
		return
	case !d.inDict:
		return
	case name == "key":
		d.key = value
		return
	case d.key == "":
		return
	}

	switch name {
	case "string":
		if slot := d.doc.stringSlot(d.key); slot != nil {
			*slot = String(value)
		} else if d.key == KeyLimitLoadToSessionType {
			st := SingleSession(value)
			d.doc.LimitLoadToSessionType = &st
		}
	case "integer":
		if slot := d.doc.intSlot(d.key); slot != nil {
			if n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32); err == nil {
				*slot = Int(int(n))
			}
		}
	}
	d.key = ""
}

func (d *decoder) scalarContext() bool {
	return d.inDict && !d.inArray && !d.inEnv && d.key != ""
}
