package gui

import (
	"strings"
	"testing"
)

func TestFormatShortcutsHelpText(t *testing.T) {
	bindings := []shortcutBinding{
		{category: "Filters", display: "/", description: "Focus the search box"},
		{category: "Filters", display: "Ctrl+L", description: "Clear every filter"},
		{category: "", display: "x", description: "ignored (no category)"},
		{category: "Other", display: "", description: "ignored (no display)"},
		{category: "Rows", display: "j", description: "Move down"},
	}
	got := formatShortcutsHelpText(bindings)

	want := strings.Join([]string{
		"Filters",
		"  /                      Focus the search box",
		"  Ctrl+L                 Clear every filter",
		"",
		"Rows",
		"  j                      Move down",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected help text:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "ignored") {
		t.Fatalf("expected ignored bindings to be absent, got %q", got)
	}
}

func TestShortcutBindingsAreComplete(t *testing.T) {
	a := &Controller{}
	seen := map[string]bool{}
	for _, sc := range a.shortcutBindings() {
		if sc.handler == nil || len(sc.sequences) == 0 {
			t.Fatalf("binding %q has no handler or sequence", sc.display)
		}
		for _, seq := range sc.sequences {
			if seen[seq] {
				t.Fatalf("sequence %s bound twice", seq)
			}
			seen[seq] = true
		}
	}
}
