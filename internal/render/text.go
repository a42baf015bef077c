// Package render formats a table view for terminals: aligned text, a
// highlighted JSON state dump and diffs between two views.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

// Table writes the header rows and the current row model of t, one line per
// row with cells aligned in columns.
func Table(w io.Writer, t *table.Table) error {
	cols := t.VisibleColumns()
	if len(cols) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, group := range t.HeaderGroups() {
		cells := make([]string, 0, len(cols))
		for _, h := range group.Headers {
			cells = append(cells, sanitize(h.Label))
			for range h.ColSpan - 1 {
				cells = append(cells, "")
			}
		}
		writeLine(tw, cells)
	}
	for _, row := range t.RowModel() {
		cells := make([]string, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, sanitize(row.Value(col.ID)))
		}
		writeLine(tw, cells)
	}
	return tw.Flush()
}

// TableString is Table into a string.
func TableString(t *table.Table) string {
	var b strings.Builder
	_ = Table(&b, t)
	return b.String()
}

func writeLine(w io.Writer, cells []string) {
	fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "\t"), "\t"))
}

// sanitize keeps a cell or header on one line and out of tabwriter's way.
func sanitize(cell string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", "").Replace(cell)
}

// Status is the one-line summary shown under the table.
func Status(shown, total int, head string) string {
	var b strings.Builder
	if shown == total {
		fmt.Fprintf(&b, "%d rows", total)
	} else {
		fmt.Fprintf(&b, "%d of %d rows", shown, total)
	}
	if head != "" {
		fmt.Fprintf(&b, " (%s)", head)
	}
	return b.String()
}
