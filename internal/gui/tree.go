package gui

import (
	"log/slog"
	"slices"

	"github.com/thiagokokada/tabfilter-go/internal/gui/tkutil"
	"github.com/thiagokokada/tabfilter-go/internal/table"

	. "modernc.org/tk9.0"
)

// refresh redraws the rows, headings, hints and status from the table.
func (a *Controller) refresh() {
	if a.ui.treeView == nil {
		return
	}
	tbl := a.sess.Table()
	selected := a.selectedRowID()
	rows := tbl.RowModel()
	cols := tbl.Columns()

	a.clearTreeRows()
	ids := make([]string, 0, len(rows))
	for i, row := range rows {
		vals := tkutil.List(treeValues(cols, row)...)
		if i%2 == 1 {
			a.ui.treeView.Insert("", "end", Id(treeRowID(i)), Values(vals), Tags(stripeTag))
		} else {
			a.ui.treeView.Insert("", "end", Id(treeRowID(i)), Values(vals))
		}
		ids = append(ids, row.ID)
	}
	a.state.tree.rowIDs = ids

	a.updateDisplayColumns()
	a.updateHeadings(cols, tbl.Sorting())
	a.updateHints()
	a.updateSortMenuLabels()
	if a.ui.sourceLabel != nil {
		a.ui.sourceLabel.Configure(Txt(sourceLabel(a.loader.Key(), a.data.head)))
	}
	a.setStatus(statusSummary(len(rows), len(tbl.Rows()), a.data.head, activeFilterCount(tbl.State())))

	if idx := slices.Index(ids, selected); idx >= 0 && selected != "" {
		a.selectTreeIndex(idx)
	}
}

func (a *Controller) clearTreeRows() {
	if _, err := tkutil.Eval("%s delete [%s children {}]", a.ui.treeView, a.ui.treeView); err != nil {
		slog.Error("clear tree", slog.Any("error", err))
	}
	a.state.tree.rowIDs = nil
}

func (a *Controller) updateHeadings(cols []table.Column, sorts []table.Sort) {
	for i, col := range cols {
		a.ui.treeView.Heading(treeColumnID(i), Txt(headingLabel(col, sorts)))
	}
}

// updateHints shows, under each filter, what the column holds among rows
// passing the other filters.
func (a *Controller) updateHints() {
	tbl := a.sess.Table()
	for id, hint := range a.state.filters.hints {
		col, ok := tbl.Column(id)
		if !ok {
			continue
		}
		var text string
		if col.Kind == table.KindNumber {
			text = numberHint(tbl.MinMax(id))
		} else {
			text = textHint(tbl.UniqueValues(id))
		}
		hint.Configure(Txt(text))
	}
}

func (a *Controller) selectedRowID() string {
	idx, ok := a.selectedIndex()
	if !ok {
		return ""
	}
	return a.state.tree.rowIDs[idx]
}

func (a *Controller) selectedIndex() (int, bool) {
	if a.ui.treeView == nil {
		return 0, false
	}
	sel := a.ui.treeView.Selection("")
	if len(sel) == 0 {
		return 0, false
	}
	idx, ok := treeRowIndex(sel[0])
	if !ok || idx >= len(a.state.tree.rowIDs) {
		return 0, false
	}
	return idx, true
}

func (a *Controller) selectTreeIndex(idx int) {
	if a.ui.treeView == nil || idx < 0 || idx >= len(a.state.tree.rowIDs) {
		return
	}
	id := treeRowID(idx)
	a.ui.treeView.Selection("set", id)
	a.ui.treeView.Focus(id)
	a.ui.treeView.See(id)
}

func (a *Controller) moveSelection(delta int) {
	n := len(a.state.tree.rowIDs)
	if n == 0 {
		return
	}
	idx, ok := a.selectedIndex()
	if !ok {
		a.selectTreeIndex(0)
		return
	}
	a.selectTreeIndex(max(0, min(idx+delta, n-1)))
}

func (a *Controller) selectFirst() {
	a.selectTreeIndex(0)
}

func (a *Controller) selectLast() {
	a.selectTreeIndex(len(a.state.tree.rowIDs) - 1)
}

func (a *Controller) scrollTreePages(delta int) {
	if a.ui.treeView == nil || delta == 0 {
		return
	}
	if _, err := tkutil.Eval("%s yview scroll %d pages", a.ui.treeView, delta); err != nil {
		slog.Error("tree scroll", slog.Any("error", err))
	}
}
