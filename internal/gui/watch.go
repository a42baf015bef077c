package gui

import (
	"fmt"
	"log/slog"

	"github.com/thiagokokada/tabfilter-go/internal/watch"

	. "modernc.org/tk9.0"
)

func (a *Controller) initAutoReload(requested bool) {
	paths := a.loader.WatchPaths()
	a.state.watch.configured = requested && len(paths) > 0
	if a.state.watch.configured {
		a.state.watch.watcher = watch.New(paths, func() {
			PostEvent(a.reloadAsync, false)
		}, watch.WithFilter(a.loader.Relevant))
		if err := a.state.watch.watcher.Enable(); err != nil {
			slog.Error("auto reload disabled", slog.Any("error", err))
			a.closeAutoReload()
			a.state.watch.configured = false
		}
	}
	a.updateReloadButtonLabel()
}

func (a *Controller) closeAutoReload() {
	if a.state.watch.watcher == nil {
		return
	}
	if err := a.state.watch.watcher.Close(); err != nil {
		slog.Error("watcher close", slog.Any("error", err))
	}
	a.state.watch.watcher = nil
}

func (a *Controller) autoReloadEnabled() bool {
	return a.state.watch.watcher != nil && a.state.watch.watcher.Enabled()
}

func (a *Controller) updateReloadButtonLabel() {
	label := "Reload"
	menuLabel := "Auto Reload (unavailable)"
	if a.state.watch.configured {
		state := "Off"
		if a.autoReloadEnabled() {
			state = "On"
		}
		label = fmt.Sprintf("Reload (Auto %s)", state)
		menuLabel = fmt.Sprintf("Auto Reload: %s", state)
	}
	if a.state.watch.button != nil {
		a.state.watch.button.Configure(Txt(label))
	}
	configureMenuLabel(a.state.menus.auto, menuLabel)
}

// onReloadButton reloads, and when watching is available also flips it on
// or off.
func (a *Controller) onReloadButton() {
	if !a.state.watch.configured {
		a.reloadAsync()
		return
	}
	enabled, err := a.state.watch.watcher.Toggle()
	if err != nil {
		slog.Error("auto reload toggle failed", slog.Any("error", err))
	}
	slog.Debug("auto reload toggled", slog.Bool("enabled", enabled))
	a.updateReloadButtonLabel()
	a.reloadAsync()
}
