// Package session binds filter inputs to a table: each input owns a
// debounce channel and settled values become table filters.
package session

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/thiagokokada/tabfilter-go/internal/debounce"
	"github.com/thiagokokada/tabfilter-go/internal/table"
)

type Part int

const (
	PartText Part = iota
	PartMin
	PartMax
)

func (p Part) String() string {
	switch p {
	case PartMin:
		return "min"
	case PartMax:
		return "max"
	default:
		return "text"
	}
}

// Key names one input box. The global filter has an empty Column.
type Key struct {
	Column string
	Part   Part
}

var GlobalKey = Key{}

func (k Key) String() string {
	if k == GlobalKey {
		return "global"
	}
	if k.Part == PartText {
		return k.Column
	}
	return k.Column + ":" + k.Part.String()
}

type Options struct {
	Delay time.Duration
	// Dispatch runs settled values on the owner's event loop.
	Dispatch  func(func())
	Scheduler debounce.Scheduler
	// OnChange runs after a settled input changed the table.
	OnChange func(Key)
}

type Session struct {
	tbl   *table.Table
	group *debounce.Group[Key, string]
	opts  Options
}

// New opens the global input and the inputs of every visible column.
func New(ctx context.Context, tbl *table.Table, opts Options) *Session {
	var chOpts []debounce.Option
	if opts.Dispatch != nil {
		chOpts = append(chOpts, debounce.WithDispatch(opts.Dispatch))
	}
	if opts.Scheduler != nil {
		chOpts = append(chOpts, debounce.WithScheduler(opts.Scheduler))
	}
	s := &Session{
		tbl:   tbl,
		group: debounce.NewGroup[Key, string](ctx, opts.Delay, chOpts...),
		opts:  opts,
	}
	s.open(GlobalKey)
	for _, col := range tbl.VisibleColumns() {
		s.openColumn(col)
	}
	return s
}

func (s *Session) Table() *table.Table { return s.tbl }

// KeysFor lists the inputs of a column: one text box, or min and max boxes
// for number columns.
func KeysFor(col table.Column) []Key {
	if col.Kind == table.KindNumber {
		return []Key{{Column: col.ID, Part: PartMin}, {Column: col.ID, Part: PartMax}}
	}
	return []Key{{Column: col.ID, Part: PartText}}
}

// Input feeds a keystroke's worth of text to the input. Inputs that are not
// open are ignored, as are keystrokes that leave the text unchanged, such as
// cursor movement.
func (s *Session) Input(k Key, raw string) {
	ch, ok := s.group.Get(k)
	if !ok {
		slog.Debug("input for closed filter", slog.String("key", k.String()))
		return
	}
	if raw == ch.Current() {
		return
	}
	ch.OnRawInput(raw)
}

// Input is one value typed into one box.
type Input struct {
	Key   Key
	Value string
}

// Feed types every input as if the user did. Inputs whose box is not open,
// such as those of hidden columns, are dropped with a warning.
func (s *Session) Feed(inputs []Input) {
	for _, in := range inputs {
		if !s.Open(in.Key) {
			slog.Warn("filter for hidden column ignored", slog.String("key", in.Key.String()))
			continue
		}
		s.Input(in.Key, in.Value)
	}
}

// Settling reports whether any of keys has a value waiting to settle.
func (s *Session) Settling(keys ...Key) bool {
	return slices.ContainsFunc(keys, s.Pending)
}

// Value is the text the input box should show.
func (s *Session) Value(k Key) string {
	if ch, ok := s.group.Get(k); ok {
		return ch.Current()
	}
	return s.tableValue(k)
}

func (s *Session) Pending(k Key) bool {
	ch, ok := s.group.Get(k)
	return ok && ch.State() == debounce.Pending
}

func (s *Session) Open(k Key) bool {
	_, ok := s.group.Get(k)
	return ok
}

// Clear drops every filter and resets every input without notifying.
func (s *Session) Clear() {
	s.tbl.ClearColumnFilters()
	s.tbl.SetGlobalFilter("")
	s.group.ResetAll(func(Key) string { return "" })
}

// SetColumnVisible shows or hides a column. Hidden columns lose their
// inputs; shown ones get fresh inputs seeded from the table's filters.
func (s *Session) SetColumnVisible(id string, visible bool) error {
	if err := s.tbl.SetColumnVisible(id, visible); err != nil {
		return err
	}
	s.syncInputs(id, visible)
	return nil
}

func (s *Session) ToggleColumnVisible(id string) (bool, error) {
	visible, err := s.tbl.ToggleColumnVisible(id)
	if err != nil {
		return false, err
	}
	s.syncInputs(id, visible)
	return visible, nil
}

// Restore applies a saved state and pushes it into the inputs as an
// external reset.
func (s *Session) Restore(st table.State) {
	s.tbl.Restore(st)
	for _, col := range s.tbl.Columns() {
		s.syncInputs(col.ID, s.tbl.ColumnVisible(col.ID))
	}
	s.group.ResetAll(s.tableValue)
}

func (s *Session) syncInputs(id string, visible bool) {
	col, ok := s.tbl.Column(id)
	if !ok {
		return
	}
	for _, k := range KeysFor(col) {
		switch {
		case visible && !s.Open(k):
			s.open(k)
		case !visible:
			s.group.Remove(k)
		}
	}
}

// SetRows replaces the data. Filters and inputs are kept.
func (s *Session) SetRows(rows []table.Row) {
	s.tbl.SetRows(rows)
}

func (s *Session) Close() {
	s.group.Close()
}

func (s *Session) openColumn(col table.Column) {
	for _, k := range KeysFor(col) {
		s.open(k)
	}
}

func (s *Session) open(k Key) {
	s.group.Open(k, s.tableValue(k), func(v string) { s.apply(k, v) }, debounce.WithName(k.String()))
}

func (s *Session) tableValue(k Key) string {
	if k == GlobalKey {
		return s.tbl.GlobalFilter()
	}
	f, _ := s.tbl.ColumnFilter(k.Column)
	switch k.Part {
	case PartMin:
		return f.Min.String()
	case PartMax:
		return f.Max.String()
	default:
		return f.Text
	}
}

func (s *Session) apply(k Key, v string) {
	if k == GlobalKey {
		s.tbl.SetGlobalFilter(v)
		s.changed(k)
		return
	}
	var update func(table.Filter) table.Filter
	switch k.Part {
	case PartText:
		update = func(table.Filter) table.Filter { return table.TextFilter(v) }
	case PartMin, PartMax:
		b, err := table.ParseBound(v)
		if err != nil {
			slog.Debug("ignoring numeric filter", slog.String("key", k.String()), slog.Any("error", err))
			return
		}
		update = func(f table.Filter) table.Filter {
			if k.Part == PartMin {
				f.Min = b
			} else {
				f.Max = b
			}
			return f
		}
	}
	if err := s.tbl.UpdateColumnFilter(k.Column, update); err != nil {
		slog.Error("apply filter", slog.String("key", k.String()), slog.Any("error", err))
		return
	}
	s.changed(k)
}

func (s *Session) changed(k Key) {
	slog.Debug("filter applied", slog.String("key", k.String()), slog.String("value", s.tableValue(k)))
	if s.opts.OnChange != nil {
		s.opts.OnChange(k)
	}
}
