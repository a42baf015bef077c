package gui

import (
	"log/slog"

	"github.com/thiagokokada/tabfilter-go/internal/gui/tkutil"
	"github.com/thiagokokada/tabfilter-go/internal/session"
	"github.com/thiagokokada/tabfilter-go/internal/table"

	. "modernc.org/tk9.0"
)

const stripeTag = "stripe"

func (a *Controller) buildUI() {
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 2, Weight(1))

	controls := App.TFrame(Padding("8p"))
	Grid(controls, Row(0), Column(0), Sticky(WE))
	GridColumnConfigure(controls.Window, 1, Weight(1))

	a.ui.sourceLabel = controls.TLabel(Txt(sourceLabel(a.loader.Key(), a.data.head)), Anchor(W))
	Grid(a.ui.sourceLabel, Row(0), Column(0), Columnspan(4), Sticky(W))

	Grid(controls.TLabel(Txt("Search:"), Anchor(E)), Row(1), Column(0), Sticky(E))
	a.ui.globalEntry = controls.TEntry(Width(40), Textvariable(a.sess.Value(session.GlobalKey)))
	Grid(a.ui.globalEntry, Row(1), Column(1), Sticky(WE), Padx("4p"))
	a.bindInput(a.ui.globalEntry, session.GlobalKey)

	clearBtn := controls.TButton(Txt("Clear"), Command(a.clearFilters))
	Grid(clearBtn, Row(1), Column(2), Sticky(E), Padx("4p"))
	a.state.watch.button = controls.TButton(Txt("Reload"), Command(a.onReloadButton))
	Grid(a.state.watch.button, Row(1), Column(3), Sticky(E))

	a.ui.filterHost = App.TFrame(Padding("8p 0 8p 4p"))
	Grid(a.ui.filterHost, Row(1), Column(0), Sticky(WE))

	listArea := App.TFrame()
	Grid(listArea, Row(2), Column(0), Sticky(NEWS), Padx("4p"), Pady("4p"))
	GridRowConfigure(listArea.Window, 0, Weight(1))
	GridColumnConfigure(listArea.Window, 0, Weight(1))

	cols := a.sess.Table().Columns()
	treeScroll := listArea.TScrollbar()
	a.ui.treeView = listArea.TTreeview(
		Show("headings"),
		Columns(treeColumnList(len(cols))),
		Selectmode("browse"),
		Height(20),
		Yscrollcommand(func(e *Event) { e.ScrollSet(treeScroll) }),
	)
	for i, col := range cols {
		id := treeColumnID(i)
		a.ui.treeView.Column(id, Anchor(columnAnchor(col)), Width(columnWidth(col)))
		a.ui.treeView.Heading(id, Txt(col.Label()), Command(func() { a.toggleSort(col.ID) }))
	}
	a.ui.treeView.TagConfigure(stripeTag, Background(a.theme.palette.StripeRow))
	Grid(a.ui.treeView, Row(0), Column(0), Sticky(NEWS))
	Grid(treeScroll, Row(0), Column(1), Sticky(NS))
	treeScroll.Configure(Command(func(e *Event) { e.Yview(a.ui.treeView) }))

	a.ui.status = App.TLabel(Anchor(W), Relief(SUNKEN), Padding("4p"))
	Grid(a.ui.status, Row(3), Column(0), Sticky(WE))

	a.rebuildFilterRow()
	a.initMenubar()
	a.bindShortcuts()
}

// rebuildFilterRow lays out group headers, column labels, filter entries and
// value hints for the visible columns, one grid column per table column.
func (a *Controller) rebuildFilterRow() {
	if a.ui.filterHost == nil {
		return
	}
	if a.ui.filterFrame != nil {
		Destroy(a.ui.filterFrame.Window)
	}
	a.state.filters = newFilterInputs()
	frame := a.ui.filterHost.TFrame()
	Grid(frame, Row(0), Column(0), Sticky(WE))
	a.ui.filterFrame = frame

	tbl := a.sess.Table()
	groups := tbl.HeaderGroups()
	row := 0
	for _, group := range groups {
		col := 0
		for _, h := range group.Headers {
			if h.ColumnID == "" && !h.Placeholder {
				lbl := frame.TLabel(Txt(h.Label), Anchor("center"), Relief(SUNKEN))
				Grid(lbl, Row(row), Column(col), Columnspan(h.ColSpan), Sticky(WE), Padx("1p"))
			} else if h.ColumnID != "" {
				lbl := frame.TLabel(Txt(h.Label), Anchor(W))
				Grid(lbl, Row(row), Column(col), Sticky(W), Padx("2p"))
			}
			col += h.ColSpan
		}
		row++
	}
	for i, col := range tbl.VisibleColumns() {
		GridColumnConfigure(frame.Window, i, Weight(1))
		Grid(a.filterCell(frame, col), Row(row), Column(i), Sticky(WE), Padx("2p"))
		hint := frame.TLabel(Anchor(W), Foreground(a.theme.palette.HintFg))
		Grid(hint, Row(row+1), Column(i), Sticky(W), Padx("2p"))
		a.state.filters.hints[col.ID] = hint
	}
}

func (a *Controller) filterCell(parent *TFrameWidget, col table.Column) *TFrameWidget {
	cell := parent.TFrame()
	keys := session.KeysFor(col)
	width := 14
	if len(keys) > 1 {
		width = 6
	}
	for i, k := range keys {
		entry := cell.TEntry(Width(width), Textvariable(a.sess.Value(k)))
		Grid(entry, Row(0), Column(i), Sticky(WE))
		GridColumnConfigure(cell.Window, i, Weight(1))
		a.bindInput(entry, k)
		a.state.filters.entries[k] = entry
	}
	return cell
}

func (a *Controller) bindInput(entry *TEntryWidget, k session.Key) {
	Bind(entry, "<KeyRelease>", Command(func() {
		a.sess.Input(k, entry.Textvariable())
	}))
}

// syncEntries rewrites every entry from the session, after a reset that
// bypassed typing.
func (a *Controller) syncEntries() {
	if a.ui.globalEntry != nil {
		a.ui.globalEntry.Configure(Textvariable(a.sess.Value(session.GlobalKey)))
	}
	for k, entry := range a.state.filters.entries {
		entry.Configure(Textvariable(a.sess.Value(k)))
	}
}

func (a *Controller) entryHasFocus() bool {
	focused := tkutil.EvalOrEmpty("focus")
	if focused == "" {
		return false
	}
	if a.ui.globalEntry != nil && focused == a.ui.globalEntry.String() {
		return true
	}
	for _, entry := range a.state.filters.entries {
		if focused == entry.String() {
			return true
		}
	}
	return false
}

func (a *Controller) updateDisplayColumns() {
	tbl := a.sess.Table()
	arg := displayColumnsArg(tbl.Columns(), tbl.VisibleColumns())
	if _, err := tkutil.Eval("%s configure -displaycolumns %s", a.ui.treeView, arg); err != nil {
		slog.Error("tree display columns", slog.Any("error", err))
	}
}

func columnAnchor(col table.Column) string {
	if col.Kind == table.KindNumber {
		return "e"
	}
	return "w"
}

func columnWidth(col table.Column) int {
	switch col.Kind {
	case table.KindNumber:
		return 90
	case table.KindFuzzy:
		return 320
	default:
		return 180
	}
}
