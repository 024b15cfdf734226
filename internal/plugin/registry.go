package plugin

import (
	"fmt"
	"sync"
)

// Registry holds plugins in registration order. Hooks run in that order.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	byName  map[string]Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name already exists.
func (r *Registry) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := plugin.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.byName[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered as %s", metadata.Name, existing.Metadata())
	}
	r.byName[metadata.Name] = plugin
	r.plugins = append(r.plugins, plugin)
	return nil
}

// MustRegister registers plugins and panics on error. Meant for static wiring.
func (r *Registry) MustRegister(plugins ...Plugin) *Registry {
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugin, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	return plugin, nil
}

// Has checks if a plugin with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}

// List returns all registered plugins in registration order.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Plugin(nil), r.plugins...)
}

// ListByType returns all plugins of a specific type.
func (r *Registry) ListByType(pluginType PluginType) []Plugin {
	var result []Plugin
	for _, p := range r.List() {
		if p.Metadata().Type == pluginType {
			result = append(result, p)
		}
	}
	return result
}

// Unregister removes a plugin from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("plugin %s not found", name)
	}
	delete(r.byName, name)
	for i, p := range r.plugins {
		if p.Metadata().Name == name {
			r.plugins = append(r.plugins[:i:i], r.plugins[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}

// Implementing returns the registered plugins implementing T, in
// registration order.
func Implementing[T any](r *Registry) []T {
	var result []T
	for _, p := range r.List() {
		if hook, ok := p.(T); ok {
			result = append(result, hook)
		}
	}
	return result
}

// Theme returns the registered theme plugin named name.
func (r *Registry) Theme(name string) (ThemePlugin, error) {
	for _, t := range Implementing[ThemePlugin](r) {
		if t.ThemeName() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("theme %q is not registered", name)
}
