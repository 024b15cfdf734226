package build

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/logfields"
)

// StaticDir is the output subdirectory holding theme and project assets.
const StaticDir = "_static"

// copyStatic copies the theme's static files, then each existing
// output.static_paths entry, into the output's _static directory. Project
// files override theme files of the same name.
func copyStatic(bs *State) error {
	fsys := bs.Context.Fs
	dest := filepath.Join(bs.Context.OutputDir(), StaticDir)

	if theme, err := bs.Plugins.Theme(bs.Config.Project.Theme); err == nil && theme.Static() != nil {
		err := fs.WalkDir(theme.Static(), ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := fs.ReadFile(theme.Static(), p)
			if err != nil {
				return err
			}
			return writeStatic(fsys, filepath.Join(dest, filepath.FromSlash(p)), data)
		})
		if err != nil {
			return writeError("copy theme static files", dest, err)
		}
	}

	for _, sp := range bs.Config.Output.StaticPaths {
		src := filepath.Join(bs.Context.SourceDir(), sp)
		if ok, _ := afero.DirExists(fsys, src); !ok {
			bs.Logger.Debug("Static path not found, skipped", logfields.Path(src))
			continue
		}
		err := afero.Walk(fsys, src, func(p string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			rel, err := filepath.Rel(src, p)
			if err != nil {
				return err
			}
			data, err := afero.ReadFile(fsys, p)
			if err != nil {
				return err
			}
			return writeStatic(fsys, filepath.Join(dest, rel), data)
		})
		if err != nil {
			return writeError("copy static path", src, err)
		}
	}
	return nil
}

func writeStatic(fsys afero.Fs, target string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, target, data, 0o644)
}
