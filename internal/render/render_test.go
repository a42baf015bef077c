package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

func cityTable() *table.Table {
	return table.New([]table.Column{
		{ID: "name", Header: "Name", Group: "Person"},
		{ID: "age", Header: "Age", Group: "Person", Kind: table.KindNumber},
		{ID: "city", Header: "City"},
	}, []table.Row{
		{ID: "1", Cells: map[string]string{"name": "Ann", "age": "34", "city": "Lisbon"}},
		{ID: "2", Cells: map[string]string{"name": "Bob", "age": "9", "city": "Por\tto"}},
	})
}

func TestTable(t *testing.T) {
	tbl := cityTable()
	want := "" +
		"Person\n" +
		"Name  Age  City\n" +
		"Ann   34   Lisbon\n" +
		"Bob   9    Por to\n"
	if diff := cmp.Diff(want, TableString(tbl)); diff != "" {
		t.Fatalf("rendered table mismatch (-want +got):\n%s", diff)
	}

	if err := tbl.SetColumnFilter("age", table.RangeFilter(table.NewBound(10), table.Bound{})); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetColumnVisible("name", false); err != nil {
		t.Fatal(err)
	}
	want = "" +
		"Person\n" +
		"Age  City\n" +
		"34   Lisbon\n"
	if diff := cmp.Diff(want, TableString(tbl)); diff != "" {
		t.Fatalf("filtered table mismatch (-want +got):\n%s", diff)
	}
}

func TestTableSanitizesHeaders(t *testing.T) {
	tbl := table.New([]table.Column{
		{ID: "a", Header: "First\nname"},
		{ID: "b", Header: "x\ty"},
	}, []table.Row{{ID: "1", Cells: map[string]string{"a": "1", "b": "2"}}})
	want := "" +
		"First name  x y\n" +
		"1           2\n"
	if diff := cmp.Diff(want, TableString(tbl)); diff != "" {
		t.Fatalf("rendered table mismatch (-want +got):\n%s", diff)
	}
}

func TestTableNoVisibleColumns(t *testing.T) {
	tbl := table.New([]table.Column{{ID: "a", Hidden: true}}, nil)
	if got := TableString(tbl); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		shown, total int
		head         string
		want         string
	}{
		{shown: 3, total: 3, want: "3 rows"},
		{shown: 1, total: 3, head: "main", want: "1 of 3 rows (main)"},
	}
	for _, tt := range tests {
		if got := Status(tt.shown, tt.total, tt.head); got != tt.want {
			t.Errorf("Status(%d, %d, %q) = %q, want %q", tt.shown, tt.total, tt.head, got, tt.want)
		}
	}
}

func TestDiff(t *testing.T) {
	got, err := Diff("a\nb\nc\n", "a\nB\nc\n", "before", "after")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	for _, want := range []string{"--- before\n", "+++ after\n", "-b\n", "+B\n", " a\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("diff %q should contain %q", got, want)
		}
	}
	same, err := Diff("x\n", "x\n", "a", "b")
	if err != nil || same != "" {
		t.Fatalf("expected no diff for equal views, got %q %v", same, err)
	}
}

func TestStatePlainAndColored(t *testing.T) {
	tbl := cityTable()
	tbl.SetGlobalFilter("ann")
	st := tbl.State()

	var plain bytes.Buffer
	if err := State(&plain, st, StateOptions{}); err != nil {
		t.Fatalf("state: %v", err)
	}
	var decoded table.State
	if err := json.Unmarshal(plain.Bytes(), &decoded); err != nil {
		t.Fatalf("plain output should be valid JSON: %v", err)
	}
	if decoded.GlobalFilter != "ann" {
		t.Fatalf("unexpected global filter %q", decoded.GlobalFilter)
	}

	var colored bytes.Buffer
	if err := State(&colored, st, StateOptions{Color: true, Dark: true}); err != nil {
		t.Fatalf("state: %v", err)
	}
	out := colored.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatal("colored output should contain terminal escapes")
	}
	if !strings.Contains(out, "globalFilter") {
		t.Fatal("colored output should keep the JSON text")
	}
}

func TestThemeDark(t *testing.T) {
	orig := detectDarkMode
	t.Cleanup(func() { detectDarkMode = orig })

	detectDarkMode = func() (bool, error) { return true, nil }
	if !ThemeAuto.Dark() || ThemeLight.Dark() || !ThemeDark.Dark() {
		t.Fatal("unexpected theme resolution with dark desktop")
	}
	detectDarkMode = func() (bool, error) { return false, errors.New("no desktop") }
	if ThemeAuto.Dark() {
		t.Fatal("detection failure should fall back to light")
	}
	if ParseTheme(" Dark ") != ThemeDark || ParseTheme("nope") != ThemeAuto || ParseTheme("light") != ThemeLight {
		t.Fatal("unexpected ParseTheme result")
	}
	if Style(true) == nil || Style(false) == nil {
		t.Fatal("styles should never be nil")
	}
}
