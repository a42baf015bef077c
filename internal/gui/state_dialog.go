package gui

import (
	"bytes"
	"log/slog"

	"github.com/thiagokokada/tabfilter-go/internal/render"

	. "modernc.org/tk9.0"
)

// showStateDialog displays the current table state as it would be saved.
func (a *Controller) showStateDialog() {
	var buf bytes.Buffer
	if err := render.State(&buf, a.sess.Table().State(), render.StateOptions{}); err != nil {
		slog.Error("render state", slog.Any("error", err))
		return
	}
	if a.ui.stateWindow != nil {
		Destroy(a.ui.stateWindow.Window)
		a.ui.stateWindow = nil
	}
	dialog := App.Toplevel()
	a.ui.stateWindow = dialog
	dialog.Window.WmTitle("Filter State")
	WmTransient(dialog.Window, App)

	frame := dialog.TFrame(Padding("12p"))
	Grid(frame, Row(0), Column(0), Sticky(NEWS))
	GridColumnConfigure(dialog.Window, 0, Weight(1))
	GridRowConfigure(dialog.Window, 0, Weight(1))
	GridColumnConfigure(frame.Window, 0, Weight(1))
	GridRowConfigure(frame.Window, 0, Weight(1))

	text := frame.Text(Width(72), Height(24), Wrap(WORD), Exportselection(false))
	src := buf.String()
	text.Insert("1.0", src)
	if a.cfg.syntaxHighlight {
		a.highlightJSON(text, src)
	}
	text.Configure(State("disabled"))
	Grid(text, Row(0), Column(0), Sticky(NEWS))

	closeBtn := frame.TButton(Txt("Close"), Command(func() { Destroy(dialog.Window) }))
	Grid(closeBtn, Row(1), Column(0), Sticky(E), Pady("8p 0"))

	Bind(dialog.Window, "<Destroy>", Command(func() {
		if a.ui.stateWindow == dialog {
			a.ui.stateWindow = nil
		}
	}))
	dialog.Window.Center()
}
