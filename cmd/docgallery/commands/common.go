// Package commands implements the docgallery subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/gallery"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
	"git.home.luguber.info/inful/docgallery/internal/plugin/genconfig"
	"git.home.luguber.info/inful/docgallery/internal/plugin/intersphinx"
	"git.home.luguber.info/inful/docgallery/internal/plugin/staticcheck"
	"git.home.luguber.info/inful/docgallery/internal/plugin/themes"
)

// Global is shared state bound into every command's Run.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docgallery.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the documentation site"`
	Scan    ScanCmd    `cmd:"" help:"List the examples found in the sources without building"`
	Init    InitCmd    `cmd:"" help:"Write a starter configuration file"`
	Clean   CleanCmd   `cmd:"" help:"Remove the output and the generated gallery"`
	Watch   WatchCmd   `cmd:"" help:"Build, then rebuild whenever sources change"`
	Plugins PluginsCmd `cmd:"" help:"List the registered plugins and their hooks"`
}

// AfterApply installs a default logger once flags are parsed. Commands that
// load a configuration replace it with one honoring build.log_level.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig loads the configuration file, falling back to the defaults
// when the default file is absent, and sets up logging from it.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = newLogger(cfg, root.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.Build.LogLevel.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Build.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// DefaultPlugins returns a registry with every built-in plugin, in hook order.
func DefaultPlugins() *plugin.Registry {
	reg := plugin.NewRegistry().MustRegister(
		intersphinx.New(),
		gallery.New(),
		genconfig.New(),
		staticcheck.New(),
	)
	return reg.MustRegister(themes.All()...)
}
