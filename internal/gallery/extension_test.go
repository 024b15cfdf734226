package gallery

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

type staticSources []string

func (s staticSources) SourceDocs() ([]string, error) { return s, nil }

func newTestContext(t *testing.T, fs afero.Fs, enabled bool, docs ...string) *plugin.PluginContext {
	t.Helper()
	cfg := config.Default()
	cfg.Gallery.Enabled = enabled
	pc := plugin.NewPluginContext(context.Background(), nil, cfg, fs, "test")
	pc.Sources = staticSources(docs)
	return pc
}

func readDoc(t *testing.T, pc *plugin.PluginContext, x *Extension, w plugin.Worker, doc, src string) *doctree.Document {
	t.Helper()
	set := directive.Set{}
	for name, d := range x.Directives(pc) {
		set[name] = d
	}
	for name, d := range w.Directives() {
		set[name] = d
	}
	w.PurgeDoc(doc)
	nodes, err := directive.NewParser(set, pc.Logger).Parse(doc, strings.Split(src, "\n"), 1)
	require.NoError(t, err)
	return &doctree.Document{Name: doc, Children: nodes}
}

func TestExtension_Metadata(t *testing.T) {
	x := New()
	require.NoError(t, x.Metadata().Validate())
	assert.ElementsMatch(t, []string{
		plugin.OpBuilderInited, plugin.OpOrderDocs, plugin.OpDirectives,
		plugin.OpWorker, plugin.OpMerge, plugin.OpResolve, plugin.OpBuildFinished,
	}, plugin.Capabilities(x))
}

func TestExtension_BuilderInitedGeneratesPages(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePage(t, fs, "docs/index.md", "# Home\n\n.. example:: Beta\n   :tags: io\n\n   b\n")
	writePage(t, fs, "docs/guide.md", "# Guide\n\n.. example:: Alpha\n\n   a\n")
	pc := newTestContext(t, fs, true, "guide", "index")

	x := New()
	require.NoError(t, x.BuilderInited(pc))
	require.NotNil(t, x.Pages())
	assert.Equal(t, []string{"Alpha", "Beta"}, titles(x.Pages().Examples))

	for _, f := range []string{"docs/examples/index.md", "docs/examples/alpha.md", "docs/examples/beta.md", "docs/examples/tags/io.md"} {
		exists, err := afero.Exists(fs, f)
		require.NoError(t, err)
		assert.True(t, exists, f)
	}
}

func TestExtension_DisabledGeneratesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePage(t, fs, "docs/index.md", ".. example:: Alpha\n\n   a\n")
	pc := newTestContext(t, fs, false, "index")

	x := New()
	require.NoError(t, x.BuilderInited(pc))
	assert.Nil(t, x.Pages())

	exists, err := afero.DirExists(fs, "docs/examples")
	require.NoError(t, err)
	assert.False(t, exists)

	w := x.NewWorker(pc, 0)
	readDoc(t, pc, x, w, "index", ".. example:: Alpha\n\n   a\n")
	require.NoError(t, x.Merge(pc, []plugin.Worker{w}))
	assert.Zero(t, x.Registry().Len())
}

func TestExtension_DuplicateAtGenerationFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePage(t, fs, "docs/a.md", ".. example:: Alpha\n\n   a\n")
	writePage(t, fs, "docs/b.md", ".. example:: alpha\n\n   b\n")
	pc := newTestContext(t, fs, true, "a", "b")

	err := New().BuilderInited(pc)
	require.ErrorIs(t, err, ErrDuplicateExample)
	assert.Contains(t, err.Error(), `"Alpha"`)
	assert.Contains(t, err.Error(), `"alpha"`)
}

func TestExtension_OrderDocs(t *testing.T) {
	x := New()
	x.dir = "examples"
	x.enabled = true
	waves := x.OrderDocs([]string{"examples/index", "z", "examples/alpha", "a"})
	assert.Equal(t, [][]string{{"a", "z"}, {"examples/alpha", "examples/index"}}, waves)

	assert.Equal(t, [][]string{{"a"}}, x.OrderDocs([]string{"a"}))
	assert.Empty(t, x.OrderDocs(nil))
}

func TestExtension_OrderDocsSkipsGalleryWhenDisabled(t *testing.T) {
	x := New()
	x.dir = "examples"
	waves := x.OrderDocs([]string{"examples/index", "z", "examples/alpha", "a"})
	assert.Equal(t, [][]string{{"a", "z"}}, waves)
}

func TestExtension_WorkersMergeAndResolve(t *testing.T) {
	fs := afero.NewMemMapFs()
	pc := newTestContext(t, fs, true)
	x := New()
	require.NoError(t, x.BuilderInited(pc))

	w0, w1 := x.NewWorker(pc, 0), x.NewWorker(pc, 1)
	readDoc(t, pc, x, w0, "a", ".. example:: Alpha\n\n   alpha body\n")
	readDoc(t, pc, x, w1, "b", ".. example:: Beta\n\n   beta body\n")
	require.NoError(t, x.Merge(pc, []plugin.Worker{w0, w1}))
	assert.Equal(t, []string{"alpha", "beta"}, x.Registry().IDs())

	page := readDoc(t, pc, x, x.NewWorker(pc, 0), "examples/alpha", ".. example-content:: alpha\n")
	require.NoError(t, x.ResolveDoc(pc, page))
	placeholder := page.Children[0].(*doctree.Container)
	assert.Equal(t, "alpha", placeholder.ID)
	assert.True(t, placeholder.HasClass(ContentClass))
}

func TestExtension_RereadReplacesExamples(t *testing.T) {
	fs := afero.NewMemMapFs()
	pc := newTestContext(t, fs, true)
	x := New()
	require.NoError(t, x.BuilderInited(pc))

	w := x.NewWorker(pc, 0)
	readDoc(t, pc, x, w, "a", ".. example:: Alpha\n\n   alpha body\n")
	require.NoError(t, x.Merge(pc, []plugin.Worker{w}))

	// the document now marks a different example at another line
	w = x.NewWorker(pc, 0)
	readDoc(t, pc, x, w, "a", "Moved.\n\n.. example:: Gamma\n\n   gamma body\n")
	require.NoError(t, x.Merge(pc, []plugin.Worker{w}))
	assert.Equal(t, []string{"gamma"}, x.Registry().IDs())
}

func TestExtension_DuplicateAcrossWorkersFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	pc := newTestContext(t, fs, true)
	x := New()
	require.NoError(t, x.BuilderInited(pc))

	w0, w1 := x.NewWorker(pc, 0), x.NewWorker(pc, 1)
	readDoc(t, pc, x, w0, "a", ".. example:: Alpha\n\n   one\n")
	readDoc(t, pc, x, w1, "b", ".. example:: ALPHA\n\n   two\n")
	err := x.Merge(pc, []plugin.Worker{w0, w1})
	require.ErrorIs(t, err, ErrDuplicateExample)
}

func TestExtension_BuildFinishedPostprocessesHTML(t *testing.T) {
	fs := afero.NewMemMapFs()
	pc := newTestContext(t, fs, true)
	pc.Config.Output.Dir = "out"
	x := New()
	require.NoError(t, x.BuilderInited(pc))

	w := x.NewWorker(pc, 0)
	readDoc(t, pc, x, w, "guide/intro", ".. example:: Alpha\n\n   a\n")
	require.NoError(t, x.Merge(pc, []plugin.Worker{w}))

	writePage(t, fs, "out/guide/intro.html", originPage)
	writePage(t, fs, "out/examples/alpha.html", examplePage)

	// a failed build leaves the page alone
	require.NoError(t, x.BuildFinished(pc, assert.AnError))
	b, err := afero.ReadFile(fs, "out/examples/alpha.html")
	require.NoError(t, err)
	assert.Equal(t, examplePage, string(b))

	require.NoError(t, x.BuildFinished(pc, nil))
	b, err = afero.ReadFile(fs, "out/examples/alpha.html")
	require.NoError(t, err)
	assert.Contains(t, string(b), `href="../guide/other.html#x"`)

	e, _ := x.Registry().Get("alpha")
	assert.Equal(t, "examples/alpha.html", e.PageHTML)
}
