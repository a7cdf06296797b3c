package plist

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokOpen  tokenKind = iota // <dict>, <array>
	tokClose                  // </dict>, </array>
	tokEmpty                  // <true/>, <false/>
	tokText                   // <key>..</key>, <string>..</string>, ...
)

type token struct {
	kind tokenKind
	name string
	text string
}

// leafElements carry character data between their open and close tags.
var leafElements = map[string]bool{
	"key":     true,
	"string":  true,
	"integer": true,
	"real":    true,
	"date":    true,
	"data":    true,
}

// lex splits text into element tokens. It accepts any amount of elements per
// line and drops anything it cannot make sense of: processing instructions,
// doctypes, comments, stray character data and unterminated tags.
func lex(text string) []token {
	var toks []token
	i := 0
	for i < len(text) {
		lt := strings.IndexByte(text[i:], '<')
		if lt < 0 {
			break
		}
		i += lt

		switch {
		case strings.HasPrefix(text[i:], "<!--"):
			end := strings.Index(text[i:], "-->")
			if end < 0 {
				return toks
			}
			i += end + len("-->")
			continue
		case strings.HasPrefix(text[i:], "<?"), strings.HasPrefix(text[i:], "<!"):
			end := strings.IndexByte(text[i:], '>')
			if end < 0 {
				return toks
			}
			i += end + 1
			continue
		}

		gt := strings.IndexByte(text[i:], '>')
		if gt < 0 {
			return toks
		}
		raw := text[i+1 : i+gt]
		i += gt + 1

		if strings.HasPrefix(raw, "/") {
			toks = append(toks, token{kind: tokClose, name: tagName(raw[1:])})
			continue
		}
		if strings.HasSuffix(raw, "/") {
			name := tagName(strings.TrimSuffix(raw, "/"))
			switch {
			case leafElements[name]:
				toks = append(toks, token{kind: tokText, name: name})
			case name == "dict" || name == "array":
				toks = append(toks,
					token{kind: tokOpen, name: name},
					token{kind: tokClose, name: name})
			default:
				toks = append(toks, token{kind: tokEmpty, name: name})
			}
			continue
		}

		name := tagName(raw)
		if !leafElements[name] {
			toks = append(toks, token{kind: tokOpen, name: name})
			continue
		}
		closing := "</" + name + ">"
		end := strings.Index(text[i:], closing)
		if end < 0 {
			// Unterminated value: skip the opening tag only.
			continue
		}
		toks = append(toks, token{kind: tokText, name: name, text: unescape(text[i : i+end])})
		i += end + len(closing)
	}
	return toks
}

// tagName strips attributes and surrounding space from the inside of a tag.
func tagName(raw string) string {
	raw = strings.TrimSpace(raw)
	if sp := strings.IndexAny(raw, " \t\r\n"); sp >= 0 {
		raw = raw[:sp]
	}
	return raw
}

var entities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"quot": `"`,
	"apos": "'",
}

// unescape resolves the predefined XML entities and numeric character
// references. Unknown references are kept verbatim.
func unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		amp := strings.IndexByte(s, '&')
		if amp < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:amp])
		s = s[amp:]
		semi := strings.IndexByte(s, ';')
		if semi < 0 {
			b.WriteString(s)
			return b.String()
		}
		if r, ok := resolveEntity(s[1:semi]); ok {
			b.WriteString(r)
		} else {
			b.WriteString(s[:semi+1])
		}
		s = s[semi+1:]
	}
}

func resolveEntity(name string) (string, bool) {
	if r, ok := entities[name]; ok {
		return r, true
	}
	if !strings.HasPrefix(name, "#") {
		return "", false
	}
	num, base := name[1:], 10
	if strings.HasPrefix(num, "x") || strings.HasPrefix(num, "X") {
		num, base = num[1:], 16
	}
	code, err := strconv.ParseUint(num, base, 32)
	if err != nil {
		return "", false
	}
	return string(rune(code)), true
}
