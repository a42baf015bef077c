package gui

import (
	. "modernc.org/tk9.0"
)

type appWidgets struct {
	status          *TLabelWidget
	sourceLabel     *TLabelWidget
	globalEntry     *TEntryWidget
	filterHost      *TFrameWidget
	filterFrame     *TFrameWidget
	treeView        *TTreeviewWidget
	shortcutsWindow *ToplevelWidget
	stateWindow     *ToplevelWidget
}
