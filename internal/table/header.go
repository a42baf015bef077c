package table

type Header struct {
	// ColumnID is empty for group headers.
	ColumnID string
	Label    string
	ColSpan  int
	// Placeholder marks the group cell above an ungrouped column.
	Placeholder bool
}

type HeaderGroup struct {
	Depth   int
	Headers []Header
}

// HeaderGroups lays the visible columns out as header rows. When any
// visible column has a group, a row of group headers spanning adjacent
// columns of the same group precedes the leaf row.
func (t *Table) HeaderGroups() []HeaderGroup {
	cols := t.VisibleColumns()
	if len(cols) == 0 {
		return nil
	}
	leaves := make([]Header, 0, len(cols))
	grouped := false
	for _, col := range cols {
		leaves = append(leaves, Header{ColumnID: col.ID, Label: col.Label(), ColSpan: 1})
		if col.Group != "" {
			grouped = true
		}
	}
	if !grouped {
		return []HeaderGroup{{Depth: 0, Headers: leaves}}
	}
	var groups []Header
	for _, col := range cols {
		if n := len(groups); n > 0 && col.Group != "" && groups[n-1].Label == col.Group {
			groups[n-1].ColSpan++
			continue
		}
		groups = append(groups, Header{
			Label:       col.Group,
			ColSpan:     1,
			Placeholder: col.Group == "",
		})
	}
	return []HeaderGroup{
		{Depth: 0, Headers: groups},
		{Depth: 1, Headers: leaves},
	}
}
