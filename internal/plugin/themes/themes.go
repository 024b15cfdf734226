// Package themes provides the built-in HTML themes.
package themes

import (
	"embed"
	"fmt"
	"io/fs"

	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// Built-in theme names.
const (
	Basic   = "basic"
	Astropy = "astropy"
)

//go:embed static
var staticFS embed.FS

// Theme is a theme backed by an embedded static directory.
type Theme struct {
	plugin.BasePlugin
	name        string
	description string
	stylesheets []string
}

var _ plugin.ThemePlugin = (*Theme)(nil)

// NewBasic returns the plain default theme.
func NewBasic() *Theme {
	return &Theme{
		name:        Basic,
		description: "Plain, dependency-free documentation theme",
		stylesheets: []string{"basic/basic.css"},
	}
}

// NewAstropy returns the Astropy theme. It builds on basic.css.
func NewAstropy() *Theme {
	return &Theme{
		name:        Astropy,
		description: "Astropy project theme with navbar and logo",
		stylesheets: []string{"basic/basic.css", "astropy/astropy.css"},
	}
}

// All returns every built-in theme.
func All() []plugin.Plugin {
	return []plugin.Plugin{NewBasic(), NewAstropy()}
}

func (t *Theme) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        "theme-" + t.name,
		Version:     "v1.0.0",
		Type:        plugin.PluginTypeTheme,
		Description: t.description,
	}
}

func (t *Theme) ThemeName() string { return t.name }

func (t *Theme) Stylesheets() []string { return t.stylesheets }

// Static holds the files of every built-in theme, one directory per theme,
// so a theme can link the stylesheets of the theme it builds on.
func (t *Theme) Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("theme %s: %v", t.name, err))
	}
	return sub
}
