package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s, path
}

func sampleState() table.State {
	return table.State{
		ColumnFilters: []table.ColumnFilterState{
			{ID: "age", Value: table.RangeFilter(table.NewBound(18), table.Bound{})},
			{ID: "name", Value: table.TextFilter("ann")},
		},
		GlobalFilter:     "smith",
		Sorting:          []table.Sort{{ID: "age", Desc: true}},
		ColumnVisibility: map[string]bool{"age": false, "name": true},
		ColumnOrder:      []string{"name", "age"},
	}
}

func TestSaveLoadSurvivesReopen(t *testing.T) {
	s, path := openTemp(t)
	want := sampleState()
	if err := s.Save("demo", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	got, err := s.Load("demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestTwoStoresShareOneFile(t *testing.T) {
	window, path := openTemp(t)
	t.Cleanup(func() { window.Close() })
	printer, err := Open(path)
	if err != nil {
		t.Fatalf("second open while the first is in use: %v", err)
	}
	t.Cleanup(func() { printer.Close() })

	want := sampleState()
	if err := window.Save("demo", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := printer.Load("demo")
	if err != nil {
		t.Fatalf("load from the other store: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if err := printer.Save("other", table.State{GlobalFilter: "x"}); err != nil {
		t.Fatalf("save from the other store: %v", err)
	}
	if _, err := window.Load("other"); err != nil {
		t.Fatalf("load back: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	s, _ := openTemp(t)
	t.Cleanup(func() { s.Close() })
	if _, err := s.Load("nothing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestKeysAndDelete(t *testing.T) {
	s, _ := openTemp(t)
	t.Cleanup(func() { s.Close() })
	for _, key := range []string{"git:/b", "demo", "file:/a.csv"} {
		if err := s.Save(key, table.State{}); err != nil {
			t.Fatalf("save %s: %v", key, err)
		}
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if diff := cmp.Diff([]string{"demo", "file:/a.csv", "git:/b"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if err := s.Delete("demo"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load("demo"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted key to be gone, got %v", err)
	}
}

func TestRestoreIntoTable(t *testing.T) {
	s, _ := openTemp(t)
	t.Cleanup(func() { s.Close() })
	if err := s.Save("people", sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	st, err := s.Load("people")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tbl := table.New([]table.Column{
		{ID: "name"},
		{ID: "age", Kind: table.KindNumber},
	}, []table.Row{
		{ID: "1", Cells: map[string]string{"name": "Ann Smith", "age": "40"}},
		{ID: "2", Cells: map[string]string{"name": "Annie Smith", "age": "12"}},
		{ID: "3", Cells: map[string]string{"name": "Bob", "age": "50"}},
	})
	tbl.Restore(st)
	rows := tbl.RowModel()
	if len(rows) != 1 || rows[0].ID != "1" {
		t.Fatalf("expected only row 1 after restore, got %+v", rows)
	}
	if tbl.ColumnVisible("age") {
		t.Fatal("age column should be hidden after restore")
	}
}
