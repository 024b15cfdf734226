package plugin

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/metrics"
)

// SourceLister enumerates source documents. It is re-evaluated on each call.
type SourceLister interface {
	SourceDocs() ([]string, error)
}

// PluginContext is the build context handed to every hook. It replaces any
// ambient build state: everything a plugin may touch is reachable from here.
type PluginContext struct {
	// Context is the standard Go context for cancellation.
	Context context.Context

	Logger *slog.Logger

	Config *config.Config

	// Fs is the filesystem sources are read from and output is written to.
	Fs afero.Fs

	Metrics metrics.Recorder

	// Sources lists the source documents on demand.
	Sources SourceLister

	// BuildID uniquely identifies this build.
	BuildID string
}

// NewPluginContext creates a new plugin context.
func NewPluginContext(ctx context.Context, logger *slog.Logger, cfg *config.Config, fsys afero.Fs, buildID string) *PluginContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &PluginContext{
		Context: ctx,
		Logger:  logger,
		Config:  cfg,
		Fs:      fsys,
		Metrics: metrics.NoopRecorder{},
		BuildID: buildID,
	}
}

// SourceDir returns the source directory.
func (pc *PluginContext) SourceDir() string {
	return pc.Config.Source.Dir
}

// OutputDir returns the output directory.
func (pc *PluginContext) OutputDir() string {
	return pc.Config.Output.Dir
}

// IsHTML reports whether the build writes HTML.
func (pc *PluginContext) IsHTML() bool {
	return pc.Config.Output.Format.IsHTML()
}

// SourcePath returns the filesystem path of a source document.
func (pc *PluginContext) SourcePath(docname string) string {
	return filepath.Join(pc.SourceDir(), filepath.FromSlash(docname)+pc.Config.Source.Suffix)
}

// OutputURI returns the slash path of docname's output file relative to
// the output directory.
func (pc *PluginContext) OutputURI(docname string) string {
	return path.Clean(docname) + pc.Config.Output.Format.Suffix()
}

// OutputPath returns the filesystem path of docname's output file.
func (pc *PluginContext) OutputPath(docname string) string {
	return filepath.Join(pc.OutputDir(), filepath.FromSlash(pc.OutputURI(docname)))
}
