package gui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thiagokokada/tabfilter-go/internal/render"
	"github.com/thiagokokada/tabfilter-go/internal/session"
	"github.com/thiagokokada/tabfilter-go/internal/source"
	"github.com/thiagokokada/tabfilter-go/internal/store"
	"github.com/thiagokokada/tabfilter-go/internal/table"

	. "modernc.org/tk9.0"
	_ "modernc.org/tk9.0/themes/azure" // load theme
)

const appName = "tabfilter"

// RunConfig describes the parameters that control the GUI runtime.
type RunConfig struct {
	Loader source.Loader
	// Table is already configured: columns, order, sorting and initial
	// filters.
	Table *table.Table
	Head  string
	// Store persists the table state per source. It may be nil.
	Store *store.Store
	// Inputs are typed into the filter boxes after any saved state is
	// restored.
	Inputs []session.Input
	// Sorting, when set, wins over the restored sorting.
	Sorting         []table.Sort
	Delay           time.Duration
	ThemePreference render.Theme
	AutoReload      bool
	SyntaxHighlight bool
}

func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Loader == nil || cfg.Table == nil {
		return errors.New("gui: loader and table are required")
	}
	if err := InitializeExtension("eval"); err != nil && err != AlreadyInitialized {
		return fmt.Errorf("init eval extension: %v", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	app := &Controller{
		ctx:    ctx,
		cancel: cancel,
		loader: cfg.Loader,
		store:  cfg.Store,
		cfg: controllerConfig{
			autoReloadRequested: cfg.AutoReload,
			syntaxHighlight:     cfg.SyntaxHighlight,
		},
		theme: controllerTheme{
			pref: cfg.ThemePreference,
		},
		data: controllerData{
			head: cfg.Head,
		},
	}
	app.sess = session.New(ctx, cfg.Table, session.Options{
		Delay:    cfg.Delay,
		Dispatch: func(f func()) { PostEvent(f, false) },
		OnChange: app.onFilterChanged,
	})
	if app.store != nil {
		ok, err := app.sess.RestoreFrom(app.store, app.loader.Key())
		if err != nil {
			slog.Error("restore filters", slog.String("source", app.loader.Key()), slog.Any("error", err))
		} else if ok {
			slog.Info("restored filters", slog.String("source", app.loader.Key()))
		}
	}
	if cfg.Sorting != nil {
		if err := app.sess.Table().SetSorting(cfg.Sorting...); err != nil {
			slog.Error("apply sorting", slog.Any("error", err))
		}
	}
	app.sess.Feed(cfg.Inputs)
	return app.run()
}

func (a *Controller) run() error {
	defer a.shutdown()
	a.theme.palette = paletteForPreference(a.theme.pref)
	if a.theme.palette.ThemeName != "" {
		err := ActivateTheme(a.theme.palette.ThemeName)
		if err != nil {
			slog.Error(
				"activate theme",
				slog.String("theme", a.theme.palette.ThemeName),
				slog.Any("error", err),
			)
		}
	}
	a.buildUI()
	a.initAutoReload(a.cfg.autoReloadRequested)
	a.refresh()
	App.WmTitle(fmt.Sprintf("%s: %s", appName, a.loader.Key()))
	App.SetResizable(true, true)
	App.Center().Wait()
	return nil
}

func (a *Controller) shutdown() {
	a.cancel()
	a.closeAutoReload()
	a.saveFilters(false)
	a.sess.Close()
}

func (a *Controller) onFilterChanged(k session.Key) {
	slog.Debug("filter changed", slog.String("key", k.String()))
	a.refresh()
}

func (a *Controller) reloadAsync() {
	if a.data.loading {
		return
	}
	a.data.loading = true
	a.setStatus("Loading...")
	slog.Debug("reload start", slog.String("source", a.loader.Key()))
	go func() {
		ds, err := a.sess.Reload(a.ctx, a.loader)
		PostEvent(func() {
			a.data.loading = false
			if err != nil {
				slog.Error("failed to reload", slog.String("source", a.loader.Key()), slog.Any("error", err))
				a.setStatus(fmt.Sprintf("Failed to reload: %v", err))
				return
			}
			a.data.head = ds.Head
			slog.Debug("reload done",
				slog.Int("rows", len(ds.Rows)),
				slog.String("head", ds.Head),
			)
			a.refresh()
		}, false)
	}()
}

// saveFilters writes the table state under the source key. report shows
// the outcome in the status bar.
func (a *Controller) saveFilters(report bool) {
	if a.store == nil {
		if report {
			a.setStatus("No state database configured.")
		}
		return
	}
	err := a.sess.SaveTo(a.store, a.loader.Key())
	if err != nil {
		slog.Error("save filters", slog.String("source", a.loader.Key()), slog.Any("error", err))
		if report {
			a.setStatus(fmt.Sprintf("Failed to save filters: %v", err))
		}
		return
	}
	if report {
		a.setStatus("Filters saved.")
	}
}

func (a *Controller) clearFilters() {
	a.sess.Clear()
	a.syncEntries()
	a.refresh()
}

func (a *Controller) toggleSort(id string) {
	if err := a.sess.Table().ToggleSorting(id); err != nil {
		slog.Error("toggle sort", slog.String("column", id), slog.Any("error", err))
		return
	}
	a.refresh()
}

func (a *Controller) clearSorting() {
	if err := a.sess.Table().SetSorting(); err != nil {
		slog.Error("clear sorting", slog.Any("error", err))
		return
	}
	a.refresh()
}

func (a *Controller) toggleColumn(id string) {
	if _, err := a.sess.ToggleColumnVisible(id); err != nil {
		slog.Error("toggle column", slog.String("column", id), slog.Any("error", err))
		return
	}
	a.columnsChanged()
}

func (a *Controller) showAllColumns() {
	for _, col := range a.sess.Table().Columns() {
		if err := a.sess.SetColumnVisible(col.ID, true); err != nil {
			slog.Error("show column", slog.String("column", col.ID), slog.Any("error", err))
		}
	}
	a.columnsChanged()
}

func (a *Controller) moveColumnBy(id string, delta int) {
	tbl := a.sess.Table()
	tbl.SetColumnOrder(moveColumn(tbl.ColumnOrder(), id, delta))
	a.columnsChanged()
}

func (a *Controller) resetColumnOrder() {
	a.sess.Table().SetColumnOrder(nil)
	a.columnsChanged()
}

func (a *Controller) columnsChanged() {
	a.rebuildFilterRow()
	a.updateColumnMenuLabels()
	a.refresh()
}

func (a *Controller) setStatus(msg string) {
	if a.ui.status == nil {
		return
	}
	a.ui.status.Configure(Txt(msg))
}
