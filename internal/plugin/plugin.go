// Package plugin provides the extension system of the builder. A plugin
// declares metadata and implements any subset of the hook interfaces in
// hooks.go; the builder calls each hook at its point in the build lifecycle.
package plugin

import (
	"fmt"

	"git.home.luguber.info/inful/docgallery/internal/config"
)

// Plugin is the common interface of all plugins.
type Plugin interface {
	// Metadata returns the plugin's name, version and type.
	Metadata() PluginMetadata

	// Validate checks if the plugin can run with the given configuration.
	Validate(cfg *config.Config) error
}

// PluginMetadata describes a plugin's identity.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "gallery", "astropy").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	Type PluginType

	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}

// BasePlugin provides a default Validate. Plugins embed it when they accept
// any configuration.
type BasePlugin struct{}

// Validate accepts any configuration.
func (BasePlugin) Validate(*config.Config) error {
	return nil
}
