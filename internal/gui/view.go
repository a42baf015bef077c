package gui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/thiagokokada/tabfilter-go/internal/gui/tkutil"
	"github.com/thiagokokada/tabfilter-go/internal/render"
	"github.com/thiagokokada/tabfilter-go/internal/table"
)

const maxTextHintValues = 4

// The treeview knows every column under a positional id; hidden columns are
// left out of -displaycolumns.
func treeColumnID(i int) string { return "c" + strconv.Itoa(i) }

func treeColumnList(n int) string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = treeColumnID(i)
	}
	return strings.Join(ids, " ")
}

func treeRowID(i int) string { return "r" + strconv.Itoa(i) }

func treeRowIndex(id string) (int, bool) {
	raw, ok := strings.CutPrefix(id, "r")
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func treeValues(cols []table.Column, row table.Row) []string {
	vals := make([]string, len(cols))
	for i, col := range cols {
		vals[i] = strings.NewReplacer("\r", "", "\n", " ").Replace(row.Value(col.ID))
	}
	return vals
}

// displayColumnsArg is the -displaycolumns value for the visible columns,
// in display order.
func displayColumnsArg(all, visible []table.Column) string {
	pos := make(map[string]int, len(all))
	for i, col := range all {
		pos[col.ID] = i
	}
	ids := make([]string, 0, len(visible))
	for _, col := range visible {
		if i, ok := pos[col.ID]; ok {
			ids = append(ids, treeColumnID(i))
		}
	}
	if len(ids) == 0 {
		return "{}"
	}
	return "{" + tkutil.List(ids...) + "}"
}

func headingLabel(col table.Column, sorts []table.Sort) string {
	label := col.Label()
	idx := slices.IndexFunc(sorts, func(s table.Sort) bool { return s.ID == col.ID })
	if idx < 0 {
		return label
	}
	arrow := "▲"
	if sorts[idx].Desc {
		arrow = "▼"
	}
	if len(sorts) > 1 {
		return fmt.Sprintf("%s %s%d", label, arrow, idx+1)
	}
	return label + " " + arrow
}

func columnMenuLabel(col table.Column, visible bool) string {
	mark := "[ ]"
	if visible {
		mark = "[x]"
	}
	return mark + " " + col.Label()
}

func sortMenuLabel(col table.Column, sorts []table.Sort) string {
	for _, s := range sorts {
		if s.ID != col.ID {
			continue
		}
		if s.Desc {
			return col.Label() + " (descending)"
		}
		return col.Label() + " (ascending)"
	}
	return col.Label()
}

func numberHint(lo, hi float64, ok bool) string {
	if !ok {
		return "no values"
	}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	if lo == hi {
		return format(lo)
	}
	return format(lo) + " to " + format(hi)
}

// textHint lists the distinct values when there are few, otherwise just
// their count.
func textHint(facets []table.Facet) string {
	switch n := len(facets); {
	case n == 0:
		return "no values"
	case n > maxTextHintValues:
		return fmt.Sprintf("%d values", n)
	}
	vals := make([]string, 0, len(facets))
	for _, f := range facets {
		v := f.Value
		if v == "" {
			v = "(empty)"
		}
		vals = append(vals, v)
	}
	return strings.Join(vals, ", ")
}

func activeFilterCount(st table.State) int {
	n := len(st.ColumnFilters)
	if strings.TrimSpace(st.GlobalFilter) != "" {
		n++
	}
	return n
}

func statusSummary(shown, total int, head string, filters int) string {
	base := render.Status(shown, total, head)
	switch filters {
	case 0:
		return base
	case 1:
		return base + ", 1 filter active"
	default:
		return fmt.Sprintf("%s, %d filters active", base, filters)
	}
}

func sourceLabel(key, head string) string {
	if head == "" || head == key {
		return "Source: " + key
	}
	return fmt.Sprintf("Source: %s (%s)", key, head)
}

// moveColumn shifts id by delta places within order, clamping at the ends.
func moveColumn(order []string, id string, delta int) []string {
	out := slices.Clone(order)
	from := slices.Index(out, id)
	if from < 0 || delta == 0 {
		return out
	}
	to := max(0, min(from+delta, len(out)-1))
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, id)
}
