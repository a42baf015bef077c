package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

type fileLoader struct {
	path   string
	decode func(io.Reader) (*Dataset, error)
}

func (l *fileLoader) Key() string { return "file:" + l.path }

// WatchPaths returns the parent directory: editors often replace files by
// rename, which a watch on the file itself would lose.
func (l *fileLoader) WatchPaths() []string {
	return []string{filepath.Dir(l.path)}
}

func (l *fileLoader) Relevant(path string) bool {
	return filepath.Base(path) == filepath.Base(l.path)
}

func (l *fileLoader) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer f.Close()
	ds, err := l.decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.path, err)
	}
	ds.Head = filepath.Base(l.path)
	return ds, nil
}

func decodeCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, err
	}
	cols := make([]table.Column, 0, len(header))
	taken := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "column" + strconv.Itoa(i+1)
		}
		id := uniqueID(name, taken)
		if id != name {
			slog.Warn("renamed repeated CSV column", slog.String("column", name), slog.String("id", id))
		}
		cols = append(cols, table.Column{ID: id, Header: name})
	}
	var rows []table.Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		cells := make(map[string]string, len(cols))
		for i, col := range cols {
			if i < len(record) {
				cells[col.ID] = record[i]
			}
		}
		rows = append(rows, table.Row{ID: strconv.Itoa(len(rows)), Cells: cells})
	}
	inferKinds(cols, rows)
	return &Dataset{Columns: cols, Rows: rows}, nil
}

// uniqueID returns name, or name_2, name_3... when name is already taken,
// and marks the result as taken.
func uniqueID(name string, taken map[string]bool) string {
	id := name
	for n := 2; taken[id]; n++ {
		id = name + "_" + strconv.Itoa(n)
	}
	taken[id] = true
	return id
}

// decodeJSON reads an array of flat objects. Nested values are kept as
// their JSON text.
func decodeJSON(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	keyOrder := jsonKeys(records)
	cols := make([]table.Column, 0, len(keyOrder))
	for _, key := range keyOrder {
		cols = append(cols, table.Column{ID: key, Header: key})
	}
	rows := make([]table.Row, 0, len(records))
	for i, rec := range records {
		cells := make(map[string]string, len(rec))
		for k, v := range rec {
			cells[k] = jsonCell(v)
		}
		rows = append(rows, table.Row{ID: strconv.Itoa(i), Cells: cells})
	}
	inferKinds(cols, rows)
	return &Dataset{Columns: cols, Rows: rows}, nil
}

// jsonKeys returns every key seen across records, sorted by name. The
// column order can be changed in the config file.
func jsonKeys(records []map[string]any) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	return keys
}

func jsonCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
