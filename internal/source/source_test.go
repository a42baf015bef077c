package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func load(t *testing.T, target string, opts Options) (Loader, *Dataset) {
	t.Helper()
	l, err := Open(target, opts)
	if err != nil {
		t.Fatalf("open %q: %v", target, err)
	}
	ds, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("load %q: %v", target, err)
	}
	return l, ds
}

func kinds(cols []table.Column) map[string]table.Kind {
	out := make(map[string]table.Kind, len(cols))
	for _, c := range cols {
		out[c.ID] = c.Kind
	}
	return out
}

func TestOpenCSV(t *testing.T) {
	path := writeFile(t, "people.csv", "name, age ,city\nAnn,34,Lisbon\nBob,,Porto\nCy,9\n")
	l, ds := load(t, path, Options{})

	if got := l.WatchPaths(); len(got) != 1 || got[0] != filepath.Dir(path) {
		t.Fatalf("unexpected watch paths %v", got)
	}
	if !l.Relevant(path) || l.Relevant(filepath.Join(filepath.Dir(path), "other.csv")) {
		t.Fatal("only the source file itself should be relevant")
	}
	if !strings.HasPrefix(l.Key(), "file:") {
		t.Fatalf("unexpected key %q", l.Key())
	}
	want := map[string]table.Kind{"name": table.KindText, "age": table.KindNumber, "city": table.KindText}
	if diff := cmp.Diff(want, kinds(ds.Columns)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(ds.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ds.Rows))
	}
	if got := ds.Rows[2].Value("city"); got != "" {
		t.Fatalf("short record should leave city empty, got %q", got)
	}
	if ds.Head != "people.csv" {
		t.Fatalf("unexpected head %q", ds.Head)
	}
}

func TestOpenCSVRepeatedHeaders(t *testing.T) {
	_, ds := load(t, writeFile(t, "names.csv", "name,name,,column3\nAnn,Smith,x,y\n"), Options{})
	var ids, headers []string
	for _, c := range ds.Columns {
		ids = append(ids, c.ID)
		headers = append(headers, c.Header)
	}
	if diff := cmp.Diff([]string{"name", "name_2", "column3", "column3_2"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "name", "column3", "column3"}, headers); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{"name": "Ann", "name_2": "Smith", "column3": "x", "column3_2": "y"}
	if diff := cmp.Diff(want, ds.Rows[0].Cells); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenCSVEmpty(t *testing.T) {
	_, ds := load(t, writeFile(t, "empty.csv", ""), Options{})
	if len(ds.Columns) != 0 || len(ds.Rows) != 0 {
		t.Fatalf("expected empty dataset, got %+v", ds)
	}
}

func TestOpenJSON(t *testing.T) {
	path := writeFile(t, "items.json", `[
		{"name": "widget", "price": 2.5, "tags": ["a"]},
		{"name": "gadget", "price": 10, "stock": true},
		{"name": "gizmo", "price": null}
	]`)
	_, ds := load(t, path, Options{})

	ids := make([]string, 0, len(ds.Columns))
	for _, c := range ds.Columns {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]string{"name", "price", "stock", "tags"}, ids); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if kinds(ds.Columns)["price"] != table.KindNumber {
		t.Fatal("price should be a number column")
	}
	if got := ds.Rows[0].Value("tags"); got != `["a"]` {
		t.Fatalf("nested value should be kept as JSON, got %q", got)
	}
	if got := ds.Rows[1].Value("stock"); got != "true" {
		t.Fatalf("unexpected bool cell %q", got)
	}
	if got := ds.Rows[2].Value("price"); got != "" {
		t.Fatalf("null should be blank, got %q", got)
	}
}

func TestOpenJSONInvalid(t *testing.T) {
	l, err := Open(writeFile(t, "bad.json", `{"not": "an array"}`), Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := l.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOpenDemo(t *testing.T) {
	l, first := load(t, "demo:25", Options{Seed: 7})
	if l.Key() != "demo" || l.WatchPaths() != nil {
		t.Fatalf("unexpected demo loader %q %v", l.Key(), l.WatchPaths())
	}
	if len(first.Rows) != 25 {
		t.Fatalf("expected 25 rows, got %d", len(first.Rows))
	}
	_, second := load(t, "demo:25", Options{Seed: 7})
	if diff := cmp.Diff(first.Rows, second.Rows); diff != "" {
		t.Fatalf("demo rows should be reproducible (-first +second):\n%s", diff)
	}
	groups := map[string]string{}
	for _, c := range first.Columns {
		groups[c.ID] = c.Group
	}
	if groups["firstName"] != "Name" || groups["age"] != "Info" {
		t.Fatalf("unexpected groups %v", groups)
	}

	_, def := load(t, "demo", Options{})
	if len(def.Rows) != defaultDemoRows {
		t.Fatalf("expected %d default rows, got %d", defaultDemoRows, len(def.Rows))
	}
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name string
		target string
	}{
		{name: "bad demo count", target: "demo:lots"},
		{name: "negative demo count", target: "demo:-1"},
		{name: "missing directory", target: filepath.Join(t.TempDir(), "missing")},
		{name: "unsupported file", target: writeFile(t, "notes.txt", "hi")},
		{name: "plain directory", target: t.TempDir()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(tt.target, Options{}); err == nil {
				t.Fatalf("expected error for %q", tt.target)
			}
		})
	}
}

func TestOpenGit(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitlib.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := wt.Add("a.txt"); err != nil {
		t.Fatalf("add: %v", err)
	}
	sig := &object.Signature{Name: "Bob", Email: "bob@example.com", When: time.Date(2024, 5, 2, 10, 30, 0, 0, time.Local)}
	hash, err := wt.Commit("add a\n\ndetails", &gitlib.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	l, ds := load(t, dir, Options{Limit: 10})
	if got := l.WatchPaths(); len(got) != 1 || filepath.Base(got[0]) != ".git" {
		t.Fatalf("unexpected watch paths %v", got)
	}
	if len(ds.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(ds.Rows))
	}
	want := map[string]string{
		"hash":    hash.String()[:7],
		"summary": "add a",
		"author":  "Bob",
		"email":   "bob@example.com",
		"date":    "2024-05-02 10:30",
	}
	if diff := cmp.Diff(want, ds.Rows[0].Cells); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if ds.Rows[0].ID != hash.String() {
		t.Fatalf("row id should be the full hash, got %q", ds.Rows[0].ID)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, target := range []string{"demo:1", writeFile(t, "x.csv", "a\n1\n")} {
		l, err := Open(target, Options{})
		if err != nil {
			t.Fatalf("open %q: %v", target, err)
		}
		if _, err := l.Load(ctx); err == nil {
			t.Fatalf("expected context error for %q", target)
		}
	}
}
