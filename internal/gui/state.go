package gui

import (
	"github.com/thiagokokada/tabfilter-go/internal/session"
	"github.com/thiagokokada/tabfilter-go/internal/watch"

	. "modernc.org/tk9.0"
)

// filterInputs tracks the per-column widgets of the filter row. It is
// rebuilt whenever the visible columns change.
type filterInputs struct {
	entries map[session.Key]*TEntryWidget
	hints   map[string]*TLabelWidget
}

func newFilterInputs() filterInputs {
	return filterInputs{
		entries: make(map[session.Key]*TEntryWidget),
		hints:   make(map[string]*TLabelWidget),
	}
}

type menuItem struct {
	menu *MenuWidget
	item *MenuItem
}

type menuState struct {
	columns map[string]menuItem
	sorts   map[string]menuItem
	auto    menuItem
}

type autoReloadState struct {
	configured bool
	watcher    *watch.Watcher
	button     *TButtonWidget
}

// treeState maps treeview item ids back to the rows they show.
type treeState struct {
	rowIDs []string
}
