package gui

import (
	"fmt"
	"log/slog"

	"github.com/thiagokokada/tabfilter-go/internal/buildinfo"
	"github.com/thiagokokada/tabfilter-go/internal/gui/tkutil"
	. "modernc.org/tk9.0"
)

func (a *Controller) initMenubar() {
	menubar := Menu(Tearoff(false))
	cols := a.sess.Table().Columns()

	fileMenu := menubar.Menu(Tearoff(false))
	fileMenu.AddCommand(Lbl("Reload"), Command(a.reloadAsync))
	fileMenu.AddCommand(Lbl("Save Filters"), Command(func() { a.saveFilters(true) }))
	fileMenu.AddCommand(Lbl("Show Filter State..."), Command(a.showStateDialog))
	fileMenu.AddSeparator()
	fileMenu.AddCommand(Lbl("Quit"), Command(func() { Destroy(App) }))
	menubar.AddCascade(Lbl("File"), Mnu(fileMenu))

	viewMenu := menubar.Menu(Tearoff(false))
	sortMenu := viewMenu.Menu(Tearoff(false))
	a.state.menus.sorts = make(map[string]menuItem, len(cols))
	for _, col := range cols {
		item := sortMenu.AddCommand(Lbl(col.Label()), Command(func() { a.toggleSort(col.ID) }))
		a.state.menus.sorts[col.ID] = menuItem{menu: sortMenu, item: item}
	}
	viewMenu.AddCascade(Lbl("Sort By"), Mnu(sortMenu))
	viewMenu.AddCommand(Lbl("Clear Sorting"), Command(a.clearSorting))
	viewMenu.AddCommand(Lbl("Clear Filters"), Command(a.clearFilters))
	viewMenu.AddSeparator()
	auto := viewMenu.AddCommand(Lbl("Auto Reload"), Command(a.onReloadButton))
	a.state.menus.auto = menuItem{menu: viewMenu, item: auto}
	menubar.AddCascade(Lbl("View"), Mnu(viewMenu))

	columnsMenu := menubar.Menu(Tearoff(false))
	a.state.menus.columns = make(map[string]menuItem, len(cols))
	for _, col := range cols {
		item := columnsMenu.AddCommand(Lbl(col.Label()), Command(func() { a.toggleColumn(col.ID) }))
		a.state.menus.columns[col.ID] = menuItem{menu: columnsMenu, item: item}
	}
	columnsMenu.AddSeparator()
	leftMenu := columnsMenu.Menu(Tearoff(false))
	rightMenu := columnsMenu.Menu(Tearoff(false))
	for _, col := range cols {
		leftMenu.AddCommand(Lbl(col.Label()), Command(func() { a.moveColumnBy(col.ID, -1) }))
		rightMenu.AddCommand(Lbl(col.Label()), Command(func() { a.moveColumnBy(col.ID, 1) }))
	}
	columnsMenu.AddCascade(Lbl("Move Left"), Mnu(leftMenu))
	columnsMenu.AddCascade(Lbl("Move Right"), Mnu(rightMenu))
	columnsMenu.AddCommand(Lbl("Show All"), Command(a.showAllColumns))
	columnsMenu.AddCommand(Lbl("Reset Order"), Command(a.resetColumnOrder))
	menubar.AddCascade(Lbl("Columns"), Mnu(columnsMenu))

	helpMenu := menubar.Menu(Tearoff(false))
	helpMenu.AddCommand(Lbl("Keyboard Shortcuts"), Command(a.showShortcutsDialog))
	helpMenu.AddCommand(Lbl("About "+appName), Command(a.showAboutDialog))
	menubar.AddCascade(Lbl("Help"), Mnu(helpMenu))

	App.Configure(Mnu(menubar))
	a.updateColumnMenuLabels()
	a.updateSortMenuLabels()
}

func (a *Controller) updateColumnMenuLabels() {
	tbl := a.sess.Table()
	for _, col := range tbl.Columns() {
		if m, ok := a.state.menus.columns[col.ID]; ok {
			configureMenuLabel(m, columnMenuLabel(col, tbl.ColumnVisible(col.ID)))
		}
	}
}

func (a *Controller) updateSortMenuLabels() {
	tbl := a.sess.Table()
	sorts := tbl.Sorting()
	for _, col := range tbl.Columns() {
		if m, ok := a.state.menus.sorts[col.ID]; ok {
			configureMenuLabel(m, sortMenuLabel(col, sorts))
		}
	}
}

func (a *Controller) showAboutDialog() {
	message := fmt.Sprintf("%s %s", appName, buildinfo.VersionWithTags())
	MessageBox(
		Parent(App),
		Title("About "+appName),
		Icon("info"),
		Msg(message),
		Type("ok"),
	)
}

func configureMenuLabel(m menuItem, text string) {
	if m.menu == nil || m.item == nil || text == "" {
		return
	}
	if _, err := tkutil.Eval("%s entryconfigure %s -label %s", m.menu, m.item, tkutil.Quote(text)); err != nil {
		slog.Error("menu label", slog.String("label", text), slog.Any("error", err))
	}
}
