package render

import (
	"encoding/json"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

func Style(dark bool) *chroma.Style {
	name := "github"
	if dark {
		name = "github-dark"
	}
	if st := styles.Get(name); st != nil {
		return st
	}
	return styles.Fallback
}

// HighlightJSON writes src with 256-colour terminal escapes.
func HighlightJSON(w io.Writer, src string, dark bool) error {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return err
	}
	return formatter.Format(w, Style(dark), iterator)
}

type StateOptions struct {
	Color bool
	Dark  bool
}

// State dumps st as indented JSON.
func State(w io.Writer, st table.State, opts StateOptions) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if !opts.Color {
		_, err := w.Write(data)
		return err
	}
	return HighlightJSON(w, string(data), opts.Dark)
}
