//go:build !nosyntaxhighlight

package gui

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		line, col int
		s         string
		wantLine  int
		wantCol   int
	}{
		{name: "same line", line: 1, col: 2, s: `"ab"`, wantLine: 1, wantCol: 6},
		{name: "newline", line: 1, col: 5, s: "\n  ", wantLine: 2, wantCol: 2},
		{name: "several newlines", line: 3, col: 0, s: "x\n\nyz", wantLine: 5, wantCol: 2},
		{name: "multibyte", line: 1, col: 0, s: "çã", wantLine: 1, wantCol: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := advance(tt.line, tt.col, tt.s)
			if line != tt.wantLine || col != tt.wantCol {
				t.Fatalf("advance = %d.%d, want %d.%d", line, col, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestColorFromEntry(t *testing.T) {
	if got := colorFromEntry(chroma.StyleEntry{}); got != "" {
		t.Fatalf("unset colour = %q", got)
	}
	entry := chroma.StyleEntry{Colour: chroma.MustParseColour("#AABBCC")}
	if got := colorFromEntry(entry); got != "#aabbcc" {
		t.Fatalf("colour = %q", got)
	}
}
