package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/thiagokokada/tabfilter-go/internal/render"
	"github.com/thiagokokada/tabfilter-go/internal/session"
	"github.com/thiagokokada/tabfilter-go/internal/source"
	"github.com/thiagokokada/tabfilter-go/internal/table"
	"github.com/thiagokokada/tabfilter-go/internal/watch"
)

type headlessConfig struct {
	Loader source.Loader
	Table  *table.Table
	Head   string
	// Store is read, never written: printing must not change what the
	// window restores.
	Store  session.Persister
	Delay  time.Duration
	Inputs []session.Input
	// Sorting, when set, wins over the restored sorting.
	Sorting   []table.Sort
	ShowState bool
	Color     bool
	Dark      bool
	Follow    bool
	// WatchOptions tune the reload watcher in tests.
	WatchOptions []watch.Option
}

// runHeadless types the inputs into the same debounced boxes the window
// uses, waits for them to settle on a local event loop and prints the rows.
func runHeadless(ctx context.Context, out io.Writer, cfg headlessConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan func())
	sess := session.New(ctx, cfg.Table, session.Options{
		Delay: cfg.Delay,
		Dispatch: func(f func()) {
			select {
			case events <- f:
			case <-ctx.Done():
			}
		},
	})
	defer sess.Close()

	if cfg.Store != nil {
		ok, err := sess.RestoreFrom(cfg.Store, cfg.Loader.Key())
		if err != nil {
			return fmt.Errorf("restore filters: %w", err)
		}
		if ok {
			slog.Debug("restored filters", slog.String("source", cfg.Loader.Key()))
		}
	}
	if cfg.Sorting != nil {
		if err := sess.Table().SetSorting(cfg.Sorting...); err != nil {
			return fmt.Errorf("sort: %w", err)
		}
	}
	keys := make([]session.Key, 0, len(cfg.Inputs))
	for _, in := range cfg.Inputs {
		keys = append(keys, in.Key)
	}
	sess.Feed(cfg.Inputs)
	for sess.Settling(keys...) {
		select {
		case f := <-events:
			f()
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	tbl := sess.Table()
	if err := render.Table(out, tbl); err != nil {
		return err
	}
	slog.Info("rows", slog.String("status", render.Status(len(tbl.RowModel()), len(tbl.Rows()), cfg.Head)))
	if cfg.ShowState {
		if err := render.State(out, tbl.State(), render.StateOptions{Color: cfg.Color, Dark: cfg.Dark}); err != nil {
			return err
		}
	}
	if !cfg.Follow {
		return nil
	}
	return follow(ctx, out, sess, cfg)
}

// follow prints a unified diff of the rendered rows after every reload
// until ctx is done.
func follow(ctx context.Context, out io.Writer, sess *session.Session, cfg headlessConfig) error {
	paths := cfg.Loader.WatchPaths()
	if len(paths) == 0 {
		return errors.New("source cannot be watched")
	}
	reloads := make(chan struct{}, 1)
	opts := append([]watch.Option{watch.WithFilter(cfg.Loader.Relevant)}, cfg.WatchOptions...)
	w := watch.New(paths, func() {
		select {
		case reloads <- struct{}{}:
		default:
		}
	}, opts...)
	if err := w.Enable(); err != nil {
		return err
	}
	defer w.Close()
	slog.Info("watching for changes", slog.Any("paths", paths))

	head := cfg.Head
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reloads:
		}
		before := render.TableString(sess.Table())
		ds, err := sess.Reload(ctx, cfg.Loader)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Error("failed to reload", slog.String("source", cfg.Loader.Key()), slog.Any("error", err))
			continue
		}
		diff, err := render.Diff(before, render.TableString(sess.Table()), head, ds.Head)
		if err != nil {
			return err
		}
		head = ds.Head
		if diff == "" {
			slog.Debug("reload changed no visible row")
			continue
		}
		if _, err := io.WriteString(out, diff); err != nil {
			return err
		}
	}
}
