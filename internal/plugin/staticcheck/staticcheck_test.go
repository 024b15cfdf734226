package staticcheck

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

func TestMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("docs/_static", 0o755))

	require.NoError(t, Missing(fs, "docs", []string{"_static"}))

	err := Missing(fs, "docs", []string{"_static", "_images", "extra"})
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "docs/_images")
}

func TestCheck_BuildFinishedLogs(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := config.Default()
	cfg.Output.StaticPaths = []string{"_static"}

	var buf bytes.Buffer
	pc := plugin.NewPluginContext(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)), cfg, fs, "test")
	require.NoError(t, New().BuildFinished(pc, nil))
	assert.Contains(t, buf.String(), "Static directory not found")
	assert.Contains(t, buf.String(), "_static")
}
