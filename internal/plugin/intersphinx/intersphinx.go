// Package intersphinx lets the intersphinx mapping be switched off without
// editing the configuration file.
package intersphinx

import (
	"log/slog"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// Toggle clears the intersphinx mapping when intersphinx.disabled is set,
// so "name:path" links are left as written.
type Toggle struct {
	plugin.BasePlugin
}

var _ plugin.ConfigHook = (*Toggle)(nil)

// New creates the intersphinx toggle plugin.
func New() *Toggle { return &Toggle{} }

func (*Toggle) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        "intersphinx",
		Version:     "v1.0.0",
		Type:        plugin.PluginTypeExtension,
		Description: "Disable intersphinx link resolution from the command line or environment",
	}
}

// Validate rejects mappings with an empty name.
func (*Toggle) Validate(cfg *config.Config) error {
	if _, ok := cfg.Intersphinx.Mapping[""]; ok {
		return errors.ValidationError("intersphinx mapping has an empty name").Build()
	}
	return nil
}

func (*Toggle) ConfigInited(cfg *config.Config, logger *slog.Logger) error {
	if !cfg.Intersphinx.Disabled {
		return nil
	}
	logger.Info("disabling intersphinx", slog.Int("mappings", len(cfg.Intersphinx.Mapping)))
	clear(cfg.Intersphinx.Mapping)
	return nil
}
