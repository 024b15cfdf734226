package intersphinx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

func TestToggle(t *testing.T) {
	tests := []struct {
		name     string
		disabled bool
		want     int
		logged   bool
	}{
		{"enabled keeps mapping", false, 2, false},
		{"disabled clears mapping", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Intersphinx.Mapping = map[string]string{
				"python": "https://docs.python.org/3/",
				"numpy":  "https://numpy.org/doc/stable/",
			}
			cfg.Intersphinx.Disabled = tt.disabled

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			require.NoError(t, New().ConfigInited(cfg, logger))
			assert.Len(t, cfg.Intersphinx.Mapping, tt.want)
			assert.Equal(t, tt.logged, bytes.Contains(buf.Bytes(), []byte("disabling intersphinx")))
		})
	}
}

func TestToggle_Metadata(t *testing.T) {
	p := New()
	require.NoError(t, p.Metadata().Validate())
	assert.Equal(t, []string{plugin.OpConfigInited}, plugin.Capabilities(p))

	cfg := config.Default()
	cfg.Intersphinx.Mapping = map[string]string{"": "https://example.org/"}
	assert.Error(t, p.Validate(cfg))
}
