package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/build"
	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/metrics"
)

// BuildFlags override configuration values for one invocation.
type BuildFlags struct {
	Source             string `short:"s" help:"Source directory (overrides source.dir)" type:"path"`
	Output             string `short:"o" help:"Output directory (overrides output.dir)" type:"path"`
	Format             string `short:"f" help:"Output format: html, text or dummy"`
	Workers            int    `short:"j" help:"Parallel read workers (0 = one per CPU)" default:"-1"`
	DisableIntersphinx bool   `name:"disable-intersphinx" help:"Leave name:path links unresolved"`
	NoGallery          bool   `name:"no-gallery" help:"Disable the example gallery"`
	MetricsFile        string `name:"metrics-file" help:"Write Prometheus metrics to this file after the build"`
}

// Apply writes the flags onto cfg and validates the result.
func (f *BuildFlags) Apply(cfg *config.Config) error {
	if f.Source != "" {
		cfg.Source.Dir = f.Source
	}
	if f.Output != "" {
		cfg.Output.Dir = f.Output
	}
	if f.Format != "" {
		format := config.NormalizeOutputFormat(f.Format)
		if format == "" {
			return errors.ValidationError(fmt.Sprintf("unknown output format %q", f.Format)).
				WithContext("flag", "format").Build()
		}
		cfg.Output.Format = format
	}
	if f.Workers >= 0 {
		cfg.Build.Workers = f.Workers
	}
	if f.DisableIntersphinx {
		cfg.Intersphinx.Disabled = true
	}
	if f.NoGallery {
		cfg.Gallery.Enabled = false
	}
	if f.MetricsFile != "" {
		cfg.Build.MetricsFile = f.MetricsFile
	}
	if err := config.NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		return err
	}
	return config.ValidateConfig(cfg)
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	BuildFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if err := b.Apply(cfg); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := RunBuild(ctx, g, cfg, afero.NewOsFs())
	if err != nil {
		return err
	}
	fmt.Printf("Built %d documents into %s in %s (%d warnings)\n",
		result.Documents, result.OutputPath, result.Duration.Round(1e6), len(result.Report.Warnings()))
	return nil
}

// RunBuild builds once with the default plugins. When build.metrics_file is
// set the build's metrics are written there, whether or not it succeeded.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, fsys afero.Fs) (*build.Result, error) {
	builder := build.NewBuilder(fsys, DefaultPlugins()).WithLogger(g.Logger)
	var reg *prometheus.Registry
	if cfg.Build.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		builder.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	result, err := builder.Run(ctx, build.Request{Config: cfg})
	if reg != nil {
		if werr := metrics.WriteTextfile(reg, cfg.Build.MetricsFile); werr != nil {
			g.Logger.Warn("Failed to write metrics file", logfields.Path(cfg.Build.MetricsFile), logfields.Error(werr))
		}
	}
	return result, err
}
