package cmd

import (
	"fmt"
	"strings"

	"github.com/thiagokokada/tabfilter-go/internal/session"
	"github.com/thiagokokada/tabfilter-go/internal/table"
)

type filterFlag struct {
	column string
	value  string
}

// filterFlags collects repeated -filter column=value flags.
type filterFlags []filterFlag

func (f *filterFlags) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, 0, len(*f))
	for _, ff := range *f {
		parts = append(parts, ff.column+"="+ff.value)
	}
	return strings.Join(parts, ",")
}

func (f *filterFlags) Set(raw string) error {
	column, value, ok := strings.Cut(raw, "=")
	column = strings.TrimSpace(column)
	if !ok || column == "" {
		return fmt.Errorf("want column=value, got %q", raw)
	}
	*f = append(*f, filterFlag{column: column, value: value})
	return nil
}

func parseSort(raw string) ([]table.Sort, error) {
	var sorts []table.Sort
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, dir, _ := strings.Cut(part, ":")
		s := table.Sort{ID: strings.TrimSpace(id)}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			s.Desc = true
		default:
			return nil, fmt.Errorf("sort %s: unknown direction %q", s.ID, dir)
		}
		sorts = append(sorts, s)
	}
	return sorts, nil
}

// buildInputs turns the filter flags into values for the session's input
// boxes. Number ranges are checked here so a typo fails fast instead of being
// ignored like an unparsable keystroke.
func buildInputs(tbl *table.Table, filters filterFlags, global string) ([]session.Input, error) {
	var inputs []session.Input
	for _, ff := range filters {
		col, ok := tbl.Column(ff.column)
		if !ok {
			return nil, fmt.Errorf("filter: unknown column %q", ff.column)
		}
		f, err := table.ParseFilter(col.Kind, ff.value)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", col.ID, err)
		}
		if col.Kind != table.KindNumber {
			inputs = append(inputs, session.Input{Key: session.Key{Column: col.ID}, Value: f.Text})
			continue
		}
		if f.Min.Set {
			inputs = append(inputs, session.Input{Key: session.Key{Column: col.ID, Part: session.PartMin}, Value: f.Min.String()})
		}
		if f.Max.Set {
			inputs = append(inputs, session.Input{Key: session.Key{Column: col.ID, Part: session.PartMax}, Value: f.Max.String()})
		}
	}
	if global != "" {
		inputs = append(inputs, session.Input{Key: session.GlobalKey, Value: global})
	}
	return inputs, nil
}
