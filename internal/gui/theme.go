package gui

import (
	"strings"

	"github.com/thiagokokada/tabfilter-go/internal/render"
)

type colorPalette struct {
	ThemeName string
	StripeRow string
	HintFg    string
}

var (
	lightPalette = colorPalette{
		ThemeName: "azure light",
		StripeRow: "#f3f6fa",
		HintFg:    "#6e7781",
	}
	darkPalette = colorPalette{
		ThemeName: "azure dark",
		StripeRow: "#262b33",
		HintFg:    "#8b949e",
	}
)

func paletteForPreference(pref render.Theme) colorPalette {
	if pref.Dark() {
		return darkPalette
	}
	return lightPalette
}

func (p colorPalette) isDark() bool {
	return strings.Contains(strings.ToLower(p.ThemeName), "dark")
}
