package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	bolt "go.etcd.io/bbolt"

	"github.com/thiagokokada/tabfilter-go/internal/buildinfo"
	"github.com/thiagokokada/tabfilter-go/internal/config"
	"github.com/thiagokokada/tabfilter-go/internal/git"
	"github.com/thiagokokada/tabfilter-go/internal/gui"
	"github.com/thiagokokada/tabfilter-go/internal/render"
	"github.com/thiagokokada/tabfilter-go/internal/source"
	"github.com/thiagokokada/tabfilter-go/internal/store"
	"github.com/thiagokokada/tabfilter-go/internal/table"
)

const appName = "tabfilter"

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

type options struct {
	configPath  string
	writeConfig string
	delay       time.Duration
	delaySet    bool
	limit       uint
	seed        uint64
	mode        string
	noWatch     bool
	noSyntax    bool
	stateDB     string
	print       bool
	follow      bool
	showState   bool
	filters     filterFlags
	global      string
	sort        string
	verbose     bool
	version     bool
	source      string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	defaultDB, err := store.DefaultPath()
	if err != nil {
		defaultDB = ""
	}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML file describing columns, order, sorting and delay")
	fs.StringVar(&o.writeConfig, "write-config", "", "write the effective layout as YAML to this file and exit")
	fs.DurationVar(&o.delay, "delay", config.DefaultDelay, "debounce delay of filter inputs")
	fs.UintVar(&o.limit, "limit", git.DefaultBatch, "number of commits to load from a repository")
	fs.Uint64Var(&o.seed, "seed", 1, "seed of the demo dataset")
	fs.StringVar(&o.mode, "mode", render.ThemeAuto.String(), "color mode: auto, light, or dark")
	fs.BoolVar(&o.noWatch, "nowatch", false, "disable automatic reload when the source changes")
	fs.BoolVar(&o.noSyntax, "nosyntax", false, "disable syntax highlighting of the filter state")
	fs.StringVar(&o.stateDB, "state-db", defaultDB, "database of saved filters; empty disables it")
	fs.BoolVar(&o.print, "print", false, "print the filtered rows instead of opening a window")
	fs.BoolVar(&o.follow, "follow", false, "with -print, keep watching and print a diff per reload")
	fs.BoolVar(&o.showState, "state", false, "with -print, also print the filter state as JSON")
	fs.Var(&o.filters, "filter", "column filter as column=value, min..max for numbers (repeatable)")
	fs.StringVar(&o.global, "global", "", "fuzzy filter over every visible column")
	fs.StringVar(&o.sort, "sort", "", "comma separated sort columns as column[:desc]")
	fs.BoolVar(&o.verbose, "verbose", false, "enable verbose logging")
	fs.BoolVar(&o.version, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "delay" {
			o.delaySet = true
		}
	})
	if o.delay < 0 {
		return nil, fmt.Errorf("negative delay %s", o.delay)
	}
	if o.follow && !o.print {
		return nil, errors.New("-follow needs -print")
	}
	o.source = "."
	if rest := fs.Args(); len(rest) > 0 {
		o.source = rest[len(rest)-1]
	}
	return &o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if o.version {
		fmt.Fprintln(stdout, buildinfo.VersionWithTags())
		return nil
	}
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	delay := cfg.Delay
	if o.delaySet {
		delay = o.delay
	}

	loader, err := source.Open(o.source, source.Options{Limit: o.limit, Seed: o.seed})
	if err != nil {
		return err
	}
	ds, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", loader.Key(), err)
	}
	slog.Debug("source loaded",
		slog.String("source", loader.Key()),
		slog.Int("columns", len(ds.Columns)),
		slog.Int("rows", len(ds.Rows)),
	)
	sorts, err := parseSort(o.sort)
	if err != nil {
		return err
	}
	tbl, err := buildTable(cfg, ds, sorts)
	if err != nil {
		return err
	}
	inputs, err := buildInputs(tbl, o.filters, o.global)
	if err != nil {
		return err
	}

	if o.writeConfig != "" {
		if err := config.FromTable(tbl, delay).Save(o.writeConfig); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		slog.Info("layout written", slog.String("path", o.writeConfig))
		return nil
	}

	st, err := openStore(o.stateDB)
	if err != nil {
		return err
	}
	if st != nil {
		defer func() {
			if err := st.Close(); err != nil {
				slog.Error("close store", slog.Any("error", err))
			}
		}()
	}
	theme := render.ParseTheme(o.mode)

	if o.print {
		hc := headlessConfig{
			Loader:    loader,
			Table:     tbl,
			Head:      ds.Head,
			Delay:     delay,
			Inputs:    inputs,
			Sorting:   sorts,
			ShowState: o.showState,
			Color:     !o.noSyntax && isTerminal(stdout),
			Follow:    o.follow && !o.noWatch,
		}
		if hc.Color {
			hc.Dark = theme.Dark()
		}
		if st != nil {
			hc.Store = st
		}
		return runHeadless(ctx, stdout, hc)
	}
	return gui.Run(ctx, gui.RunConfig{
		Loader:          loader,
		Table:           tbl,
		Head:            ds.Head,
		Store:           st,
		Inputs:          inputs,
		Sorting:         sorts,
		Delay:           delay,
		ThemePreference: theme,
		AutoReload:      !o.noWatch,
		SyntaxHighlight: !o.noSyntax,
	})
}

// buildTable lays the configured columns over the source's and applies the
// initial order, sorting and global filter. sorts, when given, replaces the
// configured sorting.
func buildTable(cfg *config.Config, ds *source.Dataset, sorts []table.Sort) (*table.Table, error) {
	tbl := table.New(cfg.Apply(ds.Columns), ds.Rows)
	tbl.SetColumnOrder(cfg.Order)
	if sorts == nil {
		sorts = cfg.Sorting()
	}
	if err := tbl.SetSorting(sorts...); err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}
	tbl.SetGlobalFilter(cfg.Global)
	return tbl, nil
}

func openStore(path string) (*store.Store, error) {
	if path == "" {
		slog.Debug("filter persistence disabled")
		return nil, nil
	}
	st, err := store.Open(path)
	if errors.Is(err, bolt.ErrTimeout) {
		slog.Warn("state database busy, filter persistence disabled", slog.String("path", path))
		return nil, nil
	}
	return st, err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
