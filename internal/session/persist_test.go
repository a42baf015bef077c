package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thiagokokada/tabfilter-go/internal/source"
	"github.com/thiagokokada/tabfilter-go/internal/store"
	"github.com/thiagokokada/tabfilter-go/internal/table"
)

type memStore struct {
	states map[string]table.State
	err    error
}

func (m *memStore) Save(key string, st table.State) error {
	if m.states == nil {
		m.states = make(map[string]table.State)
	}
	m.states[key] = st
	return nil
}

func (m *memStore) Load(key string) (table.State, error) {
	if m.err != nil {
		return table.State{}, m.err
	}
	st, ok := m.states[key]
	if !ok {
		return table.State{}, store.ErrNotFound
	}
	return st, nil
}

func TestSaveAndRestore(t *testing.T) {
	h := newHarness(t)
	h.s.Input(nameKey, "bo")
	h.clock.Step(delay)
	h.expectChange(t, nameKey)

	mem := &memStore{}
	if err := h.s.SaveTo(mem, "people"); err != nil {
		t.Fatalf("save: %v", err)
	}

	other := newHarness(t)
	ok, err := other.s.RestoreFrom(mem, "people")
	if err != nil || !ok {
		t.Fatalf("expected restore, got %v %v", ok, err)
	}
	if got := other.s.Value(nameKey); got != "bo" {
		t.Fatalf("restored input should show %q, got %q", "bo", got)
	}
	other.expectSilence(t)

	ok, err = other.s.RestoreFrom(mem, "unknown")
	if err != nil || ok {
		t.Fatalf("missing key should be skipped, got %v %v", ok, err)
	}
	mem.err = errors.New("disk on fire")
	if _, err := other.s.RestoreFrom(mem, "people"); err == nil {
		t.Fatal("expected store error")
	}
}

func TestReloadKeepsFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	write := func(content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("name,age\nAnn,34\nBob,50\n")
	l, err := source.Open(path, source.Options{})
	if err != nil {
		t.Fatal(err)
	}
	ds, err := l.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	s := New(context.Background(), table.New(ds.Columns, ds.Rows), Options{Delay: time.Millisecond})
	t.Cleanup(s.Close)
	if err := s.Table().SetColumnFilter("name", table.TextFilter("a")); err != nil {
		t.Fatal(err)
	}

	write("name,age\nAnn,34\nBob,50\nCara,20\n")
	if _, err := s.Reload(context.Background(), l); err != nil {
		t.Fatalf("reload: %v", err)
	}
	rows := s.Table().RowModel()
	if len(rows) != 2 {
		t.Fatalf("expected Ann and Cara after reload, got %+v", rows)
	}
}
