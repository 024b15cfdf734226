package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docgallery/internal/build"
	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/gallery"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Source.Dir = "docs"
	cfg.Output.Dir = "out"
	return cfg
}

func TestBuildFlags_Apply(t *testing.T) {
	cfg := testConfig()
	flags := BuildFlags{
		Source:             "site",
		Output:             "public",
		Format:             "TXT",
		Workers:            3,
		DisableIntersphinx: true,
		NoGallery:          true,
	}
	require.NoError(t, flags.Apply(cfg))
	assert.Equal(t, "site", cfg.Source.Dir)
	assert.Equal(t, "public", cfg.Output.Dir)
	assert.Equal(t, config.FormatText, cfg.Output.Format)
	assert.Equal(t, 3, cfg.Build.Workers)
	assert.True(t, cfg.Intersphinx.Disabled)
	assert.False(t, cfg.Gallery.Enabled)
}

func TestBuildFlags_ApplyKeepsConfigWorkers(t *testing.T) {
	cfg := testConfig()
	cfg.Build.Workers = 2
	require.NoError(t, (&BuildFlags{Workers: -1}).Apply(cfg))
	assert.Equal(t, 2, cfg.Build.Workers)
}

func TestBuildFlags_RejectsUnknownFormat(t *testing.T) {
	err := (&BuildFlags{Workers: -1, Format: "pdf"}).Apply(testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}

func TestDefaultPlugins(t *testing.T) {
	reg := DefaultPlugins()
	for _, name := range []string{"gallery", "intersphinx", "genconfig", "staticcheck", "theme-basic", "theme-astropy"} {
		assert.True(t, reg.Has(name), name)
	}
	_, err := reg.Theme("astropy")
	require.NoError(t, err)
	assert.Len(t, plugin.Implementing[plugin.ThemePlugin](reg), 2)
}

func TestRunBuild_WritesMetricsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "docs/index.md", "# Home\n\n.. example:: Alpha\n   :tags: io\n\n   Body.\n")
	cfg := testConfig()
	cfg.Build.MetricsFile = filepath.Join(t.TempDir(), "docgallery.prom")

	g := &Global{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	result, err := RunBuild(context.Background(), g, cfg, fs)
	require.NoError(t, err)
	assert.Equal(t, build.StatusSuccess, result.Status)

	exists, err := afero.Exists(fs, "out/_static/basic/basic.css")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := afero.ReadFile(afero.NewOsFs(), cfg.Build.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "docgallery_gallery_examples_registered_total 1")
}

func TestScan(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "docs/index.md", ".. example:: Beta\n   :tags: io, fitting\n\n   b\n")
	writeFile(t, fs, "docs/guide.md", "# Guide\n\n.. example:: Alpha\n\n   a\n")
	writeFile(t, fs, "docs/examples/old.md", ".. example:: Stale\n\n   s\n")

	var out bytes.Buffer
	require.NoError(t, Scan(&out, fs, testConfig()))
	s := out.String()
	assert.Contains(t, s, "guide:3")
	assert.Contains(t, s, "fitting, io")
	assert.NotContains(t, s, "Stale")
	assert.Contains(t, s, "2 examples in 3 documents")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Alpha")), bytes.Index(out.Bytes(), []byte("Beta")))
}

func TestScan_Duplicate(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "docs/a.md", ".. example:: Same\n\n   one\n")
	writeFile(t, fs, "docs/b.md", ".. example:: Same\n\n   two\n")
	err := Scan(io.Discard, fs, testConfig())
	require.ErrorIs(t, err, gallery.ErrDuplicateExample)
}

func TestClean(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "out/index.html", "x")
	writeFile(t, fs, "docs/examples/index.md", "x")
	writeFile(t, fs, "docs/index.md", "x")

	removed, err := Clean(fs, testConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"out", filepath.Join("docs", "examples")}, removed)

	exists, err := afero.Exists(fs, "docs/index.md")
	require.NoError(t, err)
	assert.True(t, exists)

	removed, err = Clean(fs, testConfig())
	require.NoError(t, err)
	assert.Empty(t, removed)
}
