// Package staticcheck reports configured static directories that do not
// exist.
package staticcheck

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// Check logs a note for every output.static_paths entry missing from the
// source directory. A missing directory is usually an empty one that
// version control did not keep.
type Check struct {
	plugin.BasePlugin
}

var _ plugin.FinishHook = (*Check)(nil)

func New() *Check { return &Check{} }

func (*Check) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        "staticcheck",
		Version:     "v1.0.0",
		Type:        plugin.PluginTypeExtension,
		Description: "Warn about configured static directories that are missing",
	}
}

// Missing returns an error listing the static paths that do not exist, or nil.
func Missing(fsys afero.Fs, sourceDir string, paths []string) error {
	var result *multierror.Error
	for _, p := range paths {
		dir := p
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(sourceDir, p)
		}
		if ok, _ := afero.DirExists(fsys, dir); !ok {
			result = multierror.Append(result, fmt.Errorf("static directory %q was not found", dir))
		}
	}
	return result.ErrorOrNil()
}

// BuildFinished never fails the build.
func (*Check) BuildFinished(pc *plugin.PluginContext, _ error) error {
	err := Missing(pc.Fs, pc.SourceDir(), pc.Config.Output.StaticPaths)
	if err == nil {
		return nil
	}
	for _, e := range err.(*multierror.Error).Errors {
		pc.Logger.Info("Static directory not found; if it is empty and untracked, remove it from output.static_paths",
			logfields.Error(e))
	}
	return nil
}
