package styles

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
)

// GetChromaTheme maps the current theme onto chroma token types for XML.
func GetChromaTheme() chroma.StyleEntries {
	t := CurrentTheme()

	return chroma.StyleEntries{
		chroma.Text:           Hex(t.FgBase),
		chroma.Error:          Hex(t.Error),
		chroma.Comment:        Hex(t.FgMuted) + " italic",
		chroma.CommentPreproc: Hex(t.FgMuted),
		chroma.Keyword:        Hex(t.Secondary),
		chroma.Punctuation:    Hex(t.FgSubtle),
		chroma.Name:           Hex(t.FgBase),
		chroma.NameTag:        Hex(t.Tag),
		chroma.NameAttribute:  Hex(t.Attribute),
		chroma.NameEntity:     Hex(t.Accent),
		chroma.Literal:        Hex(t.String),
		chroma.LiteralString:  Hex(t.String),
		chroma.LiteralNumber:  Hex(t.Number),
	}
}

// HighlightXML colors an encoded descriptor for the terminal. On any
// lexer or formatter failure the source comes back unchanged.
func HighlightXML(src string) string {
	lexer := lexers.Get("xml")
	if lexer == nil {
		return src
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		return src
	}

	style, err := chroma.NewStyle(CurrentTheme().Name, GetChromaTheme())
	if err != nil {
		return src
	}

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, it); err != nil {
		return src
	}
	return b.String()
}
