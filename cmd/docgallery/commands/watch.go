package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/build"
	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/metrics"
	"git.home.luguber.info/inful/docgallery/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags  `embed:""`
	Debounce    time.Duration `help:"Quiet period before a rebuild" default:"500ms"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address, e.g. :9090"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if err := w.Apply(cfg); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fsys := afero.NewOsFs()
	builder := build.NewBuilder(fsys, DefaultPlugins()).WithLogger(g.Logger)
	if w.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		builder.WithRecorder(metrics.NewPrometheusRecorder(reg))
		srv := &http.Server{Addr: w.MetricsAddr, Handler: metrics.HTTPHandler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				g.Logger.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
		g.Logger.Info("Serving metrics", slog.String("addr", w.MetricsAddr))
	}

	if _, err := builder.Run(ctx, build.Request{Config: cfg}); err != nil {
		g.Logger.Error("Initial build failed", logfields.Error(err))
	}

	snapshot := cfg.Snapshot()
	rebuild := func(ctx context.Context) error {
		next, err := config.LoadOrDefault(root.Config)
		if err != nil {
			g.Logger.Warn("Configuration reload failed, keeping the previous one", logfields.Error(err))
		} else if err := w.Apply(next); err != nil {
			g.Logger.Warn("Configuration reload failed, keeping the previous one", logfields.Error(err))
		} else {
			if s := next.Snapshot(); s != snapshot {
				g.Logger.Info("Configuration changed")
				snapshot = s
			}
			cfg = next
		}
		_, err = builder.Run(ctx, build.Request{Config: cfg})
		return err
	}

	watcher := &watch.Watcher{
		Root: cfg.Source.Dir,
		Ignore: []string{
			filepath.Join(cfg.Source.Dir, filepath.FromSlash(cfg.Gallery.Dir)),
			cfg.Output.Dir,
		},
		Debounce: w.Debounce,
		Rebuild:  rebuild,
		Logger:   g.Logger,
	}
	return watcher.Run(ctx)
}
