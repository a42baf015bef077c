// Package source loads table rows from git history, CSV or JSON files, or a
// generated demo set.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

// Dataset is what a loader produces: the columns it knows about and one
// snapshot of the rows.
type Dataset struct {
	Columns []table.Column
	Rows    []table.Row
	// Head describes where the rows came from, e.g. a branch name.
	Head string
}

type Loader interface {
	// Key identifies the source across runs.
	Key() string
	// WatchPaths lists paths whose changes call for a reload.
	WatchPaths() []string
	// Relevant reports whether a change to path inside WatchPaths affects
	// the rows.
	Relevant(path string) bool
	Load(ctx context.Context) (*Dataset, error)
}

type Options struct {
	// Limit caps the number of git commits read.
	Limit uint
	// Seed makes demo data reproducible.
	Seed uint64
}

const defaultDemoRows = 1000

// Open picks a loader for target: "demo" or "demo:N", a .csv or .json file,
// or a directory inside a git repository.
func Open(target string, opts Options) (Loader, error) {
	if target == "" {
		target = "."
	}
	if name, count, ok := strings.Cut(target, ":"); name == "demo" {
		n := defaultDemoRows
		if ok {
			parsed, err := strconv.Atoi(count)
			if err != nil || parsed < 0 {
				return nil, fmt.Errorf("invalid demo row count %q", count)
			}
			n = parsed
		}
		return &demoLoader{rows: n, seed: opts.Seed}, nil
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".csv":
		return &fileLoader{path: abs, decode: decodeCSV}, nil
	case ".json":
		return &fileLoader{path: abs, decode: decodeJSON}, nil
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("unsupported source file %s", abs)
	}
	return newGitLoader(abs, opts.Limit)
}

// inferKinds marks a column as number when every non-empty cell parses and
// at least one cell is present.
func inferKinds(cols []table.Column, rows []table.Row) {
	for i := range cols {
		seen := false
		numeric := true
		for _, row := range rows {
			v := strings.TrimSpace(row.Value(cols[i].ID))
			if v == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
				break
			}
		}
		if seen && numeric {
			cols[i].Kind = table.KindNumber
		}
	}
}
