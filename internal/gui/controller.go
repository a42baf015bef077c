package gui

import (
	"context"

	"github.com/thiagokokada/tabfilter-go/internal/render"
	"github.com/thiagokokada/tabfilter-go/internal/session"
	"github.com/thiagokokada/tabfilter-go/internal/source"
	"github.com/thiagokokada/tabfilter-go/internal/store"
)

// Controller owns the window and everything shown in it. All of its
// methods run on the Tk event loop.
type Controller struct {
	ctx    context.Context
	cancel context.CancelFunc

	loader source.Loader
	store  *store.Store
	sess   *session.Session

	cfg   controllerConfig
	theme controllerTheme
	data  controllerData

	ui appWidgets

	state controllerState
}

type controllerConfig struct {
	autoReloadRequested bool
	syntaxHighlight     bool
}

type controllerTheme struct {
	pref    render.Theme
	palette colorPalette
}

type controllerData struct {
	head    string
	loading bool
}

type controllerState struct {
	filters filterInputs
	menus   menuState
	tree    treeState
	watch   autoReloadState
}
