//go:build !nosyntaxhighlight

package gui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/thiagokokada/tabfilter-go/internal/render"

	. "modernc.org/tk9.0"
)

// highlightJSON colours the JSON shown in text using the chroma style that
// matches the palette.
func (a *Controller) highlightJSON(text *TextWidget, src string) {
	if text == nil || src == "" {
		return
	}
	lexer := lexers.Get("json")
	if lexer == nil {
		return
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return
	}
	style := render.Style(a.theme.palette.isDark())
	tags := make(map[string]string)
	line, col := 1, 0
	for _, token := range iterator.Tokens() {
		if token.Value == "" {
			continue
		}
		if color := colorFromEntry(style.Get(token.Type)); color != "" {
			tag, ok := tags[color]
			if !ok {
				tag = fmt.Sprintf("syntax_%d", len(tags))
				text.TagConfigure(tag, Foreground(color))
				tags[color] = tag
			}
			endLine, endCol := advance(line, col, token.Value)
			text.TagAdd(tag, fmt.Sprintf("%d.%d", line, col), fmt.Sprintf("%d.%d", endLine, endCol))
		}
		line, col = advance(line, col, token.Value)
	}
}

// advance moves a Tk text index past s.
func advance(line, col int, s string) (int, int) {
	if n := strings.Count(s, "\n"); n > 0 {
		return line + n, utf8.RuneCountInString(s[strings.LastIndexByte(s, '\n')+1:])
	}
	return line, col + utf8.RuneCountInString(s)
}

func colorFromEntry(entry chroma.StyleEntry) string {
	if entry.Colour.IsSet() {
		col := entry.Colour.String()
		col = strings.TrimPrefix(strings.ToLower(col), "#")
		return "#" + col
	}
	return ""
}
