package table

import (
	"log/slog"
	"maps"
	"slices"
)

type ColumnFilterState struct {
	ID    string `json:"id"`
	Value Filter `json:"value"`
}

// State is the serialisable view state of a table.
type State struct {
	ColumnFilters    []ColumnFilterState `json:"columnFilters"`
	GlobalFilter     string              `json:"globalFilter"`
	Sorting          []Sort              `json:"sorting"`
	ColumnVisibility map[string]bool     `json:"columnVisibility"`
	ColumnOrder      []string            `json:"columnOrder"`
}

func (t *Table) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st := State{
		ColumnFilters:    make([]ColumnFilterState, 0, len(t.filters)),
		GlobalFilter:     t.global,
		Sorting:          slices.Clone(t.sorting),
		ColumnVisibility: make(map[string]bool, len(t.columns)),
		ColumnOrder:      slices.Clone(t.order),
	}
	if st.Sorting == nil {
		st.Sorting = []Sort{}
	}
	for _, id := range slices.Sorted(maps.Keys(t.filters)) {
		st.ColumnFilters = append(st.ColumnFilters, ColumnFilterState{ID: id, Value: t.filters[id]})
	}
	for _, col := range t.columns {
		st.ColumnVisibility[col.ID] = !t.hidden[col.ID]
	}
	return st
}

// Restore applies a saved state. Entries naming columns the table does not
// have are dropped, so a state saved for another layout degrades quietly.
func (t *Table) Restore(st State) {
	t.ClearColumnFilters()
	for _, cf := range st.ColumnFilters {
		if err := t.SetColumnFilter(cf.ID, cf.Value); err != nil {
			slog.Debug("restore column filter", slog.Any("error", err))
		}
	}
	t.SetGlobalFilter(st.GlobalFilter)
	var sorts []Sort
	for _, s := range st.Sorting {
		if _, ok := t.Column(s.ID); ok {
			sorts = append(sorts, s)
		}
	}
	if err := t.SetSorting(sorts...); err != nil {
		slog.Debug("restore sorting", slog.Any("error", err))
	}
	for id, visible := range st.ColumnVisibility {
		if err := t.SetColumnVisible(id, visible); err != nil {
			slog.Debug("restore visibility", slog.Any("error", err))
		}
	}
	if len(st.ColumnOrder) > 0 {
		t.SetColumnOrder(st.ColumnOrder)
	}
}
