package table

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
)

type Sort struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

// Table is safe for concurrent use; every accessor returns copies.
type Table struct {
	mu      sync.RWMutex
	columns []Column
	byID    map[string]int
	rows    []Row

	filters map[string]Filter
	global  string
	sorting []Sort
	hidden  map[string]bool
	order   []string
}

func New(columns []Column, rows []Row) *Table {
	t := &Table{
		columns: slices.Clone(columns),
		byID:    make(map[string]int, len(columns)),
		rows:    slices.Clone(rows),
		filters: make(map[string]Filter),
		hidden:  make(map[string]bool),
	}
	for i, col := range t.columns {
		t.byID[col.ID] = i
		t.order = append(t.order, col.ID)
		if col.Hidden {
			t.hidden[col.ID] = true
		}
	}
	return t
}

// Columns returns the column definitions in definition order.
func (t *Table) Columns() []Column {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.columns)
}

func (t *Table) Column(id string) (Column, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	i, ok := t.byID[id]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// SetRows replaces the data and keeps every piece of view state.
func (t *Table) SetRows(rows []Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = slices.Clone(rows)
}

func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.rows)
}

func (t *Table) ColumnFilter(id string) (Filter, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.filters[id]
	return f, ok
}

// SetColumnFilter stores f for the column; a zero filter removes it.
func (t *Table) SetColumnFilter(id string, f Filter) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return fmt.Errorf("unknown column %q", id)
	}
	if f.IsZero() {
		delete(t.filters, id)
		return nil
	}
	t.filters[id] = f
	return nil
}

// UpdateColumnFilter replaces the column's filter with update applied to
// it, under one lock so concurrent updates of the two bounds both land.
func (t *Table) UpdateColumnFilter(id string, update func(Filter) Filter) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return fmt.Errorf("unknown column %q", id)
	}
	f := update(t.filters[id])
	if f.IsZero() {
		delete(t.filters, id)
		return nil
	}
	t.filters[id] = f
	return nil
}

func (t *Table) ColumnFilters() map[string]Filter {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return maps.Clone(t.filters)
}

func (t *Table) ClearColumnFilters() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.filters)
}

func (t *Table) GlobalFilter() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.global
}

func (t *Table) SetGlobalFilter(query string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.global = query
}

func (t *Table) Sorting() []Sort {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.sorting)
}

// SetSorting replaces the sort order. Unknown columns are rejected.
func (t *Table) SetSorting(sorts ...Sort) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range sorts {
		if _, ok := t.byID[s.ID]; !ok {
			return fmt.Errorf("unknown column %q", s.ID)
		}
	}
	t.sorting = slices.Clone(sorts)
	return nil
}

// ToggleSorting cycles a column through ascending, descending and unsorted,
// making it the only sorted column.
func (t *Table) ToggleSorting(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return fmt.Errorf("unknown column %q", id)
	}
	var current *Sort
	for i := range t.sorting {
		if t.sorting[i].ID == id {
			current = &t.sorting[i]
			break
		}
	}
	switch {
	case current == nil:
		t.sorting = []Sort{{ID: id}}
	case !current.Desc:
		t.sorting = []Sort{{ID: id, Desc: true}}
	default:
		t.sorting = nil
	}
	return nil
}

func (t *Table) ColumnVisible(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byID[id]
	return ok && !t.hidden[id]
}

func (t *Table) SetColumnVisible(id string, visible bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return fmt.Errorf("unknown column %q", id)
	}
	if visible {
		delete(t.hidden, id)
	} else {
		t.hidden[id] = true
	}
	return nil
}

// ToggleColumnVisible flips a column and returns its new visibility.
func (t *Table) ToggleColumnVisible(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return false, fmt.Errorf("unknown column %q", id)
	}
	visible := t.hidden[id]
	if visible {
		delete(t.hidden, id)
	} else {
		t.hidden[id] = true
	}
	return visible, nil
}

func (t *Table) ColumnOrder() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.order)
}

// SetColumnOrder reorders columns. Unknown ids are ignored and columns not
// named keep their definition order after the named ones.
func (t *Table) SetColumnOrder(ids []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := make(map[string]bool, len(t.columns))
	order := make([]string, 0, len(t.columns))
	for _, id := range ids {
		if _, ok := t.byID[id]; !ok || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}
	for _, col := range t.columns {
		if !seen[col.ID] {
			order = append(order, col.ID)
		}
	}
	t.order = order
}

// VisibleColumns returns the visible columns in display order.
func (t *Table) VisibleColumns() []Column {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visibleColumnsLocked()
}

func (t *Table) visibleColumnsLocked() []Column {
	cols := make([]Column, 0, len(t.order))
	for _, id := range t.order {
		if t.hidden[id] {
			continue
		}
		cols = append(cols, t.columns[t.byID[id]])
	}
	return cols
}

// RowModel applies column filters, the global filter and sorting to the
// core rows.
func (t *Table) RowModel() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := t.filteredRowsLocked("")
	if q := strings.TrimSpace(t.global); q != "" {
		// Ranked best match first; an explicit sort below overrides it.
		rows = t.globalFilterLocked(rows, q)
	}
	if len(t.sorting) > 0 {
		t.sortRowsLocked(rows)
	}
	return rows
}

// filteredRowsLocked applies every column filter except the one of skip.
func (t *Table) filteredRowsLocked(skip string) []Row {
	keep := make([]bool, len(t.rows))
	for i := range keep {
		keep[i] = true
	}
	for _, id := range slices.Sorted(maps.Keys(t.filters)) {
		if id == skip {
			continue
		}
		f := t.filters[id]
		col := t.columns[t.byID[id]]
		switch col.Kind {
		case KindNumber:
			for i, row := range t.rows {
				if keep[i] && !inRange(row.Value(id), f) {
					keep[i] = false
				}
			}
		case KindFuzzy:
			if strings.TrimSpace(f.Text) == "" {
				continue
			}
			matched := make([]bool, len(t.rows))
			cells := make([]string, len(t.rows))
			for i, row := range t.rows {
				cells[i] = row.Value(id)
			}
			for _, m := range fuzzyMatches(f.Text, cells) {
				matched[m.Index] = true
			}
			for i := range keep {
				keep[i] = keep[i] && matched[i]
			}
		default:
			for i, row := range t.rows {
				if keep[i] && !includesText(row.Value(id), f.Text) {
					keep[i] = false
				}
			}
		}
	}
	rows := make([]Row, 0, len(t.rows))
	for i, row := range t.rows {
		if keep[i] {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *Table) globalFilterLocked(rows []Row, query string) []Row {
	cols := t.visibleColumnsLocked()
	candidates := make([]string, len(rows))
	for i, row := range rows {
		parts := make([]string, 0, len(cols))
		for _, col := range cols {
			parts = append(parts, row.Value(col.ID))
		}
		candidates[i] = strings.Join(parts, " ")
	}
	matches := fuzzyMatches(query, candidates)
	ranked := make([]Row, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, rows[m.Index])
	}
	return ranked
}

func (t *Table) sortRowsLocked(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		for _, s := range t.sorting {
			col := t.columns[t.byID[s.ID]]
			if c := compareCells(col.Kind, a.Value(s.ID), b.Value(s.ID), s.Desc); c != 0 {
				return c
			}
		}
		return 0
	})
}

// compareCells orders numbers numerically, keeping unparsable cells last in
// either direction, and everything else case-insensitively.
func compareCells(kind Kind, a, b string, desc bool) int {
	var c int
	if kind == KindNumber {
		av, aerr := strconv.ParseFloat(strings.TrimSpace(a), 64)
		bv, berr := strconv.ParseFloat(strings.TrimSpace(b), 64)
		switch {
		case aerr != nil && berr != nil:
			c = strings.Compare(a, b)
		case aerr != nil:
			return 1
		case berr != nil:
			return -1
		default:
			c = cmp.Compare(av, bv)
		}
	} else {
		c = strings.Compare(strings.ToLower(a), strings.ToLower(b))
		if c == 0 {
			c = strings.Compare(a, b)
		}
	}
	if desc {
		return -c
	}
	return c
}

type Facet struct {
	Value string
	Count int
}

// UniqueValues lists the distinct values of a column among the rows that
// pass every other column filter, sorted by value.
func (t *Table) UniqueValues(id string) []Facet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx, ok := t.byID[id]
	if !ok {
		return nil
	}
	kind := t.columns[idx].Kind
	counts := make(map[string]int)
	for _, row := range t.filteredRowsLocked(id) {
		counts[row.Value(id)]++
	}
	facets := make([]Facet, 0, len(counts))
	for v, n := range counts {
		facets = append(facets, Facet{Value: v, Count: n})
	}
	slices.SortFunc(facets, func(a, b Facet) int {
		return compareCells(kind, a.Value, b.Value, false)
	})
	return facets
}

// MinMax reports the numeric range of a column among the rows that pass
// every other column filter.
func (t *Table) MinMax(id string) (lo, hi float64, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, known := t.byID[id]; !known {
		return 0, 0, false
	}
	for _, row := range t.filteredRowsLocked(id) {
		v, err := strconv.ParseFloat(strings.TrimSpace(row.Value(id)), 64)
		if err != nil {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, ok
}
