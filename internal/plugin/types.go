package plugin

import "fmt"

// PluginType identifies the category of plugin.
type PluginType string

const (
	// PluginTypeTheme provides stylesheets and static assets for HTML output.
	PluginTypeTheme PluginType = "theme"

	// PluginTypeDirective only contributes directives.
	PluginTypeDirective PluginType = "directive"

	// PluginTypeExtension hooks into the build lifecycle.
	PluginTypeExtension PluginType = "extension"
)

// IsValid returns true if the plugin type is recognized.
func (t PluginType) IsValid() bool {
	switch t {
	case PluginTypeTheme, PluginTypeDirective, PluginTypeExtension:
		return true
	default:
		return false
	}
}

// String returns the string representation of the plugin type.
func (t PluginType) String() string {
	return string(t)
}

// PluginError represents an error that occurred within a plugin hook.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation is the hook that failed.
	Operation string

	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
