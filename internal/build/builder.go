package build

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/metrics"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// Builder is the standard implementation of Service.
type Builder struct {
	fs       afero.Fs
	plugins  *plugin.Registry
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

var _ Service = (*Builder)(nil)

// NewBuilder creates a builder reading and writing through fs and calling
// the hooks of plugins.
func NewBuilder(fs afero.Fs, plugins *plugin.Registry) *Builder {
	if plugins == nil {
		plugins = plugin.NewRegistry()
	}
	return &Builder{
		fs:       fs,
		plugins:  plugins,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// WithLogger sets the logger handed to stages and plugins.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithClock replaces the clock used for timestamps in the output.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Plugins returns the plugin registry.
func (b *Builder) Plugins() *plugin.Registry { return b.plugins }

// State is the mutable state of one build, shared by the stages.
type State struct {
	Config  *config.Config
	Plugins *plugin.Registry
	// Context is the plugin context handed to every hook.
	Context *plugin.PluginContext
	Logger  *slog.Logger
	Metrics metrics.Recorder
	Report  *Report

	// DocNames is the sorted list of discovered documents.
	DocNames []string
	// Docs holds the parsed documents by docname.
	Docs map[string]*doctree.Document

	builder *Builder
}

// Run executes the build pipeline.
func (b *Builder) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{StartTime: start, Status: StatusFailed}
	if req.Config == nil {
		result.EndTime = time.Now()
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return result, errors.ConfigError("config required").Build()
	}

	cfg := req.Config
	if req.Options.Workers > 0 {
		cfg.Build.Workers = req.Options.Workers
	}
	if cfg.Build.Workers <= 0 {
		cfg.Build.Workers = runtime.NumCPU()
	}
	if req.Options.Format != "" {
		cfg.Output.Format = req.Options.Format
	}
	result.OutputPath = cfg.Output.Dir

	buildID := uuid.NewString()
	logger := b.logger.With(logfields.BuildID(buildID))
	pc := plugin.NewPluginContext(ctx, logger, cfg, b.fs, buildID)
	pc.Metrics = b.recorder
	pc.Sources = &sourceLister{fs: b.fs, cfg: cfg}

	bs := &State{
		Config:  cfg,
		Plugins: b.plugins,
		Context: pc,
		Logger:  logger,
		Metrics: b.recorder,
		Report:  newReport(buildID, start),
		Docs:    map[string]*doctree.Document{},
		builder: b,
	}

	logger.Info("Starting build",
		logfields.Path(cfg.Source.Dir),
		logfields.Format(string(cfg.Output.Format)),
		slog.Int("workers", cfg.Build.Workers))

	stages := NewPipeline().
		Add(StageConfig, stageConfig).
		Add(StageInit, stageInit).
		Add(StageDiscover, stageDiscover).
		Add(StageRead, stageRead).
		Add(StageResolve, stageResolve).
		Add(StageWrite, stageWrite).
		Build()
	buildErr := runStages(ctx, bs, stages)

	t0 := time.Now()
	finishErr := runFinish(bs, buildErr)
	bs.recordStage(StageFinish, time.Since(t0), classifyStageError(StageFinish, finishErr))

	bs.Report.End = time.Now()
	result.Report = bs.Report
	result.Documents = len(bs.Docs)
	result.EndTime = bs.Report.End
	result.Duration = result.EndTime.Sub(start)
	b.recorder.ObserveBuildDuration(result.Duration)

	err := buildErr
	if err == nil {
		err = finishErr
	}
	switch {
	case err == nil:
		result.Status = StatusSuccess
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		logger.Info("Build succeeded",
			logfields.Count(result.Documents),
			logfields.DurationMS(float64(result.Duration.Microseconds())/1000),
			slog.Int("warnings", len(bs.Report.Warnings())))
	case stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded):
		result.Status = StatusCanceled
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		logger.Warn("Build canceled", logfields.Error(err))
	default:
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		logger.Error("Build failed", logfields.Error(err))
	}
	return result, err
}

// stageConfig lets plugins adjust the configuration.
func stageConfig(_ context.Context, bs *State) error {
	for _, h := range plugin.Implementing[plugin.ConfigHook](bs.Plugins) {
		if err := h.ConfigInited(bs.Config, bs.Logger); err != nil {
			return pluginFailure(h, plugin.OpConfigInited, err)
		}
	}
	return nil
}

// stageInit validates plugins against the final configuration and runs the
// builder-inited hooks.
func stageInit(_ context.Context, bs *State) error {
	for _, p := range bs.Plugins.List() {
		if err := p.Validate(bs.Config); err != nil {
			return pluginFailure(p, "validate", err)
		}
	}
	for _, h := range plugin.Implementing[plugin.InitHook](bs.Plugins) {
		if err := h.BuilderInited(bs.Context); err != nil {
			return pluginFailure(h, plugin.OpBuilderInited, err)
		}
	}
	return nil
}

// runFinish calls every finish hook, even after a failed build. Hook errors
// are collected; they only fail a build that otherwise succeeded.
func runFinish(bs *State, buildErr error) error {
	var result *multierror.Error
	for _, h := range plugin.Implementing[plugin.FinishHook](bs.Plugins) {
		if err := h.BuildFinished(bs.Context, buildErr); err != nil {
			result = multierror.Append(result, pluginFailure(h, plugin.OpBuildFinished, err))
		}
	}
	if buildErr != nil {
		if err := result.ErrorOrNil(); err != nil {
			bs.Logger.Error("Finish hooks failed after a failed build", logfields.Error(err))
		}
		return nil
	}
	return result.ErrorOrNil()
}

// pluginFailure attributes err to plugin p. Classified errors keep their
// category and gain the plugin name as context; the rest become a
// *plugin.PluginError.
func pluginFailure(p plugin.Plugin, op string, err error) error {
	name := p.Metadata().Name
	if ce, ok := err.(*errors.ClassifiedError); ok {
		return ce.WithContext("plugin", name).WithContext("operation", op)
	}
	return plugin.NewPluginError(name, op, err)
}
