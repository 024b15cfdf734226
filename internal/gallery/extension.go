package gallery

import (
	"path"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// Extension wires the gallery into the build lifecycle: it generates the
// gallery pages at init, registers examples while documents are read,
// fills the example pages at resolve time and post-processes HTML output.
type Extension struct {
	plugin.BasePlugin

	enabled  bool
	dir      string
	registry *Registry
	pages    *Pages
}

var (
	_ plugin.InitHook          = (*Extension)(nil)
	_ plugin.DocOrderer        = (*Extension)(nil)
	_ plugin.DirectiveProvider = (*Extension)(nil)
	_ plugin.MergeHook         = (*Extension)(nil)
	_ plugin.ResolveHook       = (*Extension)(nil)
	_ plugin.FinishHook        = (*Extension)(nil)
)

// New creates the gallery extension.
func New() *Extension {
	return &Extension{registry: NewRegistry()}
}

func (x *Extension) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        "gallery",
		Version:     "v1.0.0",
		Type:        plugin.PluginTypeExtension,
		Description: "Example gallery generated from example directives",
	}
}

// Registry returns the merged registry of the current build.
func (x *Extension) Registry() *Registry { return x.registry }

// Pages returns the pages generated for the current build, or nil.
func (x *Extension) Pages() *Pages { return x.pages }

// BuilderInited resets the registry and, when the gallery is enabled,
// regenerates the gallery pages from a scan of the sources.
func (x *Extension) BuilderInited(pc *plugin.PluginContext) error {
	x.registry = NewRegistry()
	x.pages = nil
	x.enabled = pc.Config.Gallery.Enabled
	x.dir = path.Clean(pc.Config.Gallery.Dir)
	if !x.enabled {
		pc.Logger.Debug("Example gallery disabled")
		stale := filepath.Join(pc.SourceDir(), filepath.FromSlash(x.dir))
		if ok, _ := afero.DirExists(pc.Fs, stale); ok {
			pc.Logger.Info("Ignoring gallery pages left by an earlier build", logfields.Path(stale))
		}
		return nil
	}

	templateDir := pc.Config.Gallery.TemplateDir
	if templateDir != "" && !filepath.IsAbs(templateDir) {
		templateDir = filepath.Join(pc.SourceDir(), templateDir)
	}
	renderer, err := NewRenderer(TemplateOptions{
		Fs:        pc.Fs,
		Dir:       templateDir,
		Underline: pc.Config.Gallery.HeadingUnderline,
		Suffix:    pc.Config.Source.Suffix,
	})
	if err != nil {
		return errors.TemplateError("load gallery templates").WithCause(err).Fatal().Build()
	}

	docs, err := pc.Sources.SourceDocs()
	if err != nil {
		return errors.FileSystemError("list source documents").WithCause(err).Build()
	}
	gen := &Generator{
		Fs:        pc.Fs,
		SourceDir: pc.SourceDir(),
		Dir:       x.dir,
		Suffix:    pc.Config.Source.Suffix,
		Renderer:  renderer,
		Logger:    pc.Logger,
		Metrics:   pc.Metrics,
	}
	pages, err := gen.Generate(ScanDocuments(docs, x.dir, FileReader(pc.Fs, pc.SourcePath)))
	if err != nil {
		return errors.GalleryError("generate example gallery").WithCause(err).Fatal().Build()
	}
	x.pages = pages
	return nil
}

// OrderDocs reads ordinary documents before the generated gallery pages.
// With the gallery disabled, documents in the gallery directory are not
// read at all.
func (x *Extension) OrderDocs(docnames []string) [][]string {
	var sources, generated []string
	for _, doc := range docnames {
		if inDir(doc, x.dir) {
			if !x.enabled {
				continue
			}
			generated = append(generated, doc)
		} else {
			sources = append(sources, doc)
		}
	}
	var waves [][]string
	for _, wave := range [][]string{sources, generated} {
		if len(wave) > 0 {
			slices.Sort(wave)
			waves = append(waves, wave)
		}
	}
	return waves
}

func (x *Extension) Directives(*plugin.PluginContext) directive.Set {
	return directive.Set{ContentDirective: contentDirective}
}

// worker holds the examples registered by one read goroutine.
type worker struct {
	registry *Registry
	marker   *Marker
	// purged lists the documents this worker read, in order.
	purged []string
}

func (x *Extension) NewWorker(pc *plugin.PluginContext, id int) plugin.Worker {
	reg := NewRegistry()
	return &worker{
		registry: reg,
		marker: &Marker{
			Registry: reg,
			Enabled:  x.enabled,
			Logger:   pc.Logger.With(logfields.Worker(id)),
		},
	}
}

func (w *worker) Directives() directive.Set {
	return directive.Set{MarkerDirective: w.marker}
}

func (w *worker) PurgeDoc(docname string) {
	w.registry.Purge(docname)
	w.purged = append(w.purged, docname)
}

// Merge folds the worker registries into the build registry, dropping what
// was previously recorded for the documents the workers re-read.
func (x *Extension) Merge(pc *plugin.PluginContext, workers []plugin.Worker) error {
	for _, pw := range workers {
		w, ok := pw.(*worker)
		if !ok {
			continue
		}
		for _, doc := range w.purged {
			x.registry.Purge(doc)
		}
		before := x.registry.Len()
		if err := x.registry.Merge(w.registry); err != nil {
			return errors.GalleryError("merge example registries").WithCause(err).Fatal().Build()
		}
		pc.Metrics.AddExamplesRegistered(x.registry.Len() - before)
	}
	pc.Logger.Debug("Merged example registries", logfields.Count(x.registry.Len()))
	return nil
}

func (x *Extension) ResolveDoc(pc *plugin.PluginContext, doc *doctree.Document) error {
	for _, id := range ResolveContent(doc, x.registry, x.dir, pc.IsHTML()) {
		pc.Logger.Warn("Example not found", logfields.ExampleID(id), logfields.Doc(doc.Name))
	}
	return nil
}

// BuildFinished inserts example content into the standalone HTML pages.
// It does nothing after a failed build, for non-HTML output or when the
// gallery is disabled.
func (x *Extension) BuildFinished(pc *plugin.PluginContext, buildErr error) error {
	if buildErr != nil || !pc.IsHTML() || !x.enabled {
		return nil
	}
	pc.Logger.Debug("Post-processing example gallery pages", logfields.Count(x.registry.Len()))
	pp := &Postprocessor{
		Fs:         pc.Fs,
		OutputDir:  pc.OutputDir(),
		URI:        pc.OutputURI,
		GalleryDir: x.dir,
		Logger:     pc.Logger,
		Metrics:    pc.Metrics,
	}
	if err := pp.Run(x.registry.Entries()); err != nil {
		n := 1
		if merr, ok := err.(*multierror.Error); ok {
			n = len(merr.Errors)
		}
		pc.Logger.Warn("Example post-processing finished with issues", logfields.Count(n), logfields.Error(err))
	}
	return nil
}
