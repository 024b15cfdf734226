package plugin

import (
	"io/fs"
	"log/slog"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
)

// Hook operation names, used in PluginError and capability listings.
const (
	OpConfigInited  = "config-inited"
	OpBuilderInited = "builder-inited"
	OpOrderDocs     = "order-docs"
	OpDirectives    = "directives"
	OpWorker        = "worker"
	OpMerge         = "merge"
	OpResolve       = "resolve"
	OpBuildFinished = "build-finished"
	OpTheme         = "theme"
)

// ConfigHook may adjust the configuration before anything else runs.
type ConfigHook interface {
	Plugin
	ConfigInited(cfg *config.Config, logger *slog.Logger) error
}

// InitHook runs once the build context exists, before source discovery.
type InitHook interface {
	Plugin
	BuilderInited(pc *PluginContext) error
}

// DocOrderer splits a batch of docnames into ordered waves. Every wave is
// read completely, and merged, before the next one starts.
type DocOrderer interface {
	Plugin
	OrderDocs(docnames []string) [][]string
}

// DirectiveProvider contributes stateless directives.
type DirectiveProvider interface {
	Plugin
	Directives(pc *PluginContext) directive.Set
}

// Worker is the per-goroutine state of a WorkerPlugin. A worker is only
// used by the goroutine that owns it.
type Worker interface {
	// Directives returns the directives bound to this worker's state.
	Directives() directive.Set
	// PurgeDoc drops state recorded for docname before it is read again.
	PurgeDoc(docname string)
}

// WorkerPlugin keeps state per read worker.
type WorkerPlugin interface {
	Plugin
	NewWorker(pc *PluginContext, id int) Worker
}

// MergeHook combines the workers of a finished read wave, in worker order.
type MergeHook interface {
	WorkerPlugin
	Merge(pc *PluginContext, workers []Worker) error
}

// ResolveHook edits a document after every document was read and merged.
type ResolveHook interface {
	Plugin
	ResolveDoc(pc *PluginContext, doc *doctree.Document) error
}

// FinishHook runs after the build, successful or not. buildErr is the
// error that stopped the build, or nil.
type FinishHook interface {
	Plugin
	BuildFinished(pc *PluginContext, buildErr error) error
}

// ThemePlugin provides stylesheets and static files for HTML output.
type ThemePlugin interface {
	Plugin
	ThemeName() string
	// Static holds files copied to the output's _static directory.
	Static() fs.FS
	// Stylesheets lists stylesheet paths relative to _static, in link order.
	Stylesheets() []string
}

// Capabilities lists the hook operations p implements.
func Capabilities(p Plugin) []string {
	var caps []string
	if _, ok := p.(ConfigHook); ok {
		caps = append(caps, OpConfigInited)
	}
	if _, ok := p.(InitHook); ok {
		caps = append(caps, OpBuilderInited)
	}
	if _, ok := p.(DocOrderer); ok {
		caps = append(caps, OpOrderDocs)
	}
	if _, ok := p.(DirectiveProvider); ok {
		caps = append(caps, OpDirectives)
	}
	if _, ok := p.(WorkerPlugin); ok {
		caps = append(caps, OpWorker)
	}
	if _, ok := p.(MergeHook); ok {
		caps = append(caps, OpMerge)
	}
	if _, ok := p.(ResolveHook); ok {
		caps = append(caps, OpResolve)
	}
	if _, ok := p.(FinishHook); ok {
		caps = append(caps, OpBuildFinished)
	}
	if _, ok := p.(ThemePlugin); ok {
		caps = append(caps, OpTheme)
	}
	return caps
}
