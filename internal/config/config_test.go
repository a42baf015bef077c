package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

const layout = `
delay: 500ms
global: ann
columns:
  - id: age
    header: Years
    kind: number
  - id: name
    group: Person
    hidden: true
  - id: missing
    header: Nope
order: [age, name]
sort:
  - id: age
    desc: true
`

func TestDecodeAndApply(t *testing.T) {
	cfg, err := Decode(strings.NewReader(layout))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Delay != 500*time.Millisecond {
		t.Fatalf("unexpected delay %s", cfg.Delay)
	}
	if cfg.Global != "ann" {
		t.Fatalf("unexpected global %q", cfg.Global)
	}
	base := []table.Column{
		{ID: "name", Header: "name"},
		{ID: "age", Header: "age"},
	}
	got := cfg.Apply(base)
	want := []table.Column{
		{ID: "name", Header: "name", Group: "Person", Hidden: true},
		{ID: "age", Header: "Years", Kind: table.KindNumber},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if base[0].Hidden {
		t.Fatal("Apply must not modify its input")
	}
	if diff := cmp.Diff([]table.Sort{{ID: "age", Desc: true}}, cfg.Sorting()); diff != "" {
		t.Fatalf("sorting mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"age", "name"}, cfg.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDefaults(t *testing.T) {
	for _, input := range []string{"", "columns: []\n"} {
		cfg, err := Decode(strings.NewReader(input))
		if err != nil {
			t.Fatalf("decode %q: %v", input, err)
		}
		if cfg.Delay != DefaultDelay {
			t.Fatalf("expected default delay, got %s", cfg.Delay)
		}
		if cfg.Sorting() != nil {
			t.Fatalf("expected no sorting, got %v", cfg.Sorting())
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "bad kind", input: "columns:\n  - id: a\n    kind: date\n"},
		{name: "missing id", input: "columns:\n  - header: A\n"},
		{name: "negative delay", input: "delay: -1s\n"},
		{name: "bad duration", input: "delay: soon\n"},
		{name: "not yaml", input: "columns: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	hidden := true
	cfg := &Config{
		Delay:   time.Second,
		Columns: []Column{{ID: "a", Kind: "fuzzy", Hidden: &hidden}},
		Order:   []string{"a"},
		Sort:    []Sort{{ID: "a"}},
	}
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	cfg, err := Load("")
	if err != nil || cfg.Delay != DefaultDelay {
		t.Fatalf("empty path should give defaults, got %+v %v", cfg, err)
	}
}

func TestFromTable(t *testing.T) {
	tbl := table.New([]table.Column{
		{ID: "name", Header: "Name", Group: "Person"},
		{ID: "age", Kind: table.KindNumber, Hidden: true},
	}, nil)
	tbl.SetColumnOrder([]string{"age", "name"})
	if err := tbl.SetSorting(table.Sort{ID: "name", Desc: true}); err != nil {
		t.Fatal(err)
	}
	tbl.SetGlobalFilter("bo")

	got := FromTable(tbl, time.Second)
	hidden, shown := true, false
	want := &Config{
		Delay: time.Second,
		Columns: []Column{
			{ID: "name", Header: "Name", Group: "Person", Kind: "text", Hidden: &shown},
			{ID: "age", Kind: "number", Hidden: &hidden},
		},
		Order:  []string{"age", "name"},
		Sort:   []Sort{{ID: "name", Desc: true}},
		Global: "bo",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FromTable mismatch (-want +got):\n%s", diff)
	}

	// The description must round trip into an equivalent table.
	cols := got.Apply([]table.Column{{ID: "name"}, {ID: "age"}})
	if diff := cmp.Diff(tbl.Columns(), cols); diff != "" {
		t.Fatalf("Apply(FromTable) mismatch (-want +got):\n%s", diff)
	}
}
