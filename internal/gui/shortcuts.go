package gui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/thiagokokada/tabfilter-go/internal/gui/tkutil"

	. "modernc.org/tk9.0"
)

func (a *Controller) bindShortcuts() {
	if a.ui.treeView == nil {
		return
	}
	bindNav := func(sequence string, handler func()) {
		Bind(App, sequence, Command(func() {
			if a.entryHasFocus() {
				return
			}
			handler()
		}))
	}
	bindAny := func(sequence string, handler func()) {
		Bind(App, sequence, Command(handler))
	}
	for _, sc := range a.shortcutBindings() {
		if sc.handler == nil {
			continue
		}
		for _, seq := range sc.sequences {
			if seq == "" {
				continue
			}
			if sc.navigation {
				bindNav(seq, sc.handler)
			} else {
				bindAny(seq, sc.handler)
			}
		}
	}
}

type shortcutBinding struct {
	sequences   []string
	display     string
	description string
	category    string
	// navigation shortcuts are plain keys and are ignored while typing in
	// a filter.
	navigation bool
	handler    func()
}

func (a *Controller) shortcutBindings() []shortcutBinding {
	return []shortcutBinding{
		{
			category:    "Rows",
			display:     "k",
			description: "Move up one row",
			sequences:   []string{"<KeyPress-k>"},
			navigation:  true,
			handler:     func() { a.moveSelection(-1) },
		},
		{
			category:    "Rows",
			display:     "j",
			description: "Move down one row",
			sequences:   []string{"<KeyPress-j>"},
			navigation:  true,
			handler:     func() { a.moveSelection(1) },
		},
		{
			category:    "Rows",
			display:     "Home",
			description: "Jump to the first row",
			sequences:   []string{"<KeyPress-Home>"},
			navigation:  true,
			handler:     a.selectFirst,
		},
		{
			category:    "Rows",
			display:     "End",
			description: "Jump to the last row",
			sequences:   []string{"<KeyPress-End>"},
			navigation:  true,
			handler:     a.selectLast,
		},
		{
			category:    "Rows",
			display:     "Ctrl/Cmd + Page Up",
			description: "Scroll up a page",
			sequences:   []string{"<Control-Prior>", "<Command-Prior>"},
			navigation:  true,
			handler:     func() { a.scrollTreePages(-1) },
		},
		{
			category:    "Rows",
			display:     "Ctrl/Cmd + Page Down",
			description: "Scroll down a page",
			sequences:   []string{"<Control-Next>", "<Command-Next>"},
			navigation:  true,
			handler:     func() { a.scrollTreePages(1) },
		},
		{
			category:    "Filters",
			display:     "/",
			description: "Focus the search box",
			sequences:   []string{"<KeyPress-slash>"},
			navigation:  true,
			handler:     a.focusSearchEntry,
		},
		{
			category:    "Filters",
			display:     "Escape",
			description: "Leave the filter box",
			sequences:   []string{"<KeyPress-Escape>"},
			handler:     a.blurEntry,
		},
		{
			category:    "Filters",
			display:     "Ctrl+L",
			description: "Clear every filter",
			sequences:   []string{"<Control-KeyPress-l>"},
			handler:     a.clearFilters,
		},
		{
			category:    "General",
			display:     "F5",
			description: "Reload the source",
			sequences:   []string{"<F5>"},
			handler:     a.reloadAsync,
		},
		{
			category:    "General",
			display:     "Ctrl+S",
			description: "Save filters",
			sequences:   []string{"<Control-KeyPress-s>"},
			handler:     func() { a.saveFilters(true) },
		},
		{
			category:    "General",
			display:     "F1",
			description: "Show shortcut list",
			sequences:   []string{"<F1>"},
			handler:     a.showShortcutsDialog,
		},
		{
			category:    "General",
			display:     "Ctrl+Q",
			description: "Quit " + appName,
			sequences:   []string{"<Control-KeyPress-q>"},
			handler:     func() { Destroy(App) },
		},
	}
}

func (a *Controller) showShortcutsDialog() {
	if a.ui.shortcutsWindow != nil {
		Destroy(a.ui.shortcutsWindow.Window)
		a.ui.shortcutsWindow = nil
	}
	dialog := App.Toplevel()
	a.ui.shortcutsWindow = dialog
	dialog.Window.WmTitle("Keyboard Shortcuts")
	WmTransient(dialog.Window, App)
	WmAttributes(dialog.Window, "-topmost", 1)

	frame := dialog.TFrame(Padding("12p"))
	Grid(frame, Row(0), Column(0), Sticky(NEWS))
	GridColumnConfigure(frame.Window, 0, Weight(1))
	GridRowConfigure(frame.Window, 1, Weight(1))

	header := frame.TLabel(Txt("Keyboard Shortcuts"), Anchor(W))
	Grid(header, Row(0), Column(0), Sticky(W), Pady("0 8p"))

	text := frame.Text(Width(62), Height(18), Wrap(WORD), Exportselection(false))
	text.Insert("1.0", formatShortcutsHelpText(a.shortcutBindings()))
	text.Configure(State("disabled"))
	Grid(text, Row(1), Column(0), Sticky(NEWS))

	closeBtn := frame.TButton(Txt("Close"), Command(func() { Destroy(dialog.Window) }))
	Grid(closeBtn, Row(2), Column(0), Sticky(E), Pady("8p 0"))

	Bind(dialog.Window, "<Destroy>", Command(func() {
		if a.ui.shortcutsWindow == dialog {
			a.ui.shortcutsWindow = nil
		}
	}))
	dialog.Window.Center()
}

func (a *Controller) focusSearchEntry() {
	if a.ui.globalEntry == nil {
		return
	}
	for _, cmd := range []string{"focus %s", "%s selection range 0 end", "%s icursor end"} {
		if _, err := tkutil.Eval(cmd, a.ui.globalEntry); err != nil {
			slog.Error("focus search", slog.Any("error", err))
			return
		}
	}
}

func (a *Controller) blurEntry() {
	if !a.entryHasFocus() {
		return
	}
	target := App.String()
	if a.ui.treeView != nil {
		target = a.ui.treeView.String()
	}
	if target == "" {
		target = "."
	}
	if _, err := tkutil.Eval("focus %s", target); err != nil {
		slog.Error("blur filter", slog.Any("error", err))
	}
}

func formatShortcutsHelpText(bindings []shortcutBinding) string {
	var b strings.Builder
	currentCategory := ""
	for _, sc := range bindings {
		if sc.category == "" || sc.display == "" || sc.description == "" {
			continue
		}
		if sc.category != currentCategory {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			currentCategory = sc.category
			b.WriteString(currentCategory)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %-22s %s\n", sc.display, sc.description)
	}
	return strings.TrimRight(b.String(), "\n")
}
