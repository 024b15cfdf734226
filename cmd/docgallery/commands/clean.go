package commands

import (
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	removed, err := Clean(afero.NewOsFs(), cfg)
	for _, dir := range removed {
		g.Logger.Info("Removed", logfields.Path(dir))
	}
	return err
}

// Clean removes the output directory and the generated gallery directory
// and returns the ones that existed.
func Clean(fsys afero.Fs, cfg *config.Config) ([]string, error) {
	var removed []string
	for _, dir := range []string{
		cfg.Output.Dir,
		filepath.Join(cfg.Source.Dir, filepath.FromSlash(cfg.Gallery.Dir)),
	} {
		ok, err := afero.DirExists(fsys, dir)
		if err != nil || !ok {
			continue
		}
		if err := fsys.RemoveAll(dir); err != nil {
			return removed, errors.FileSystemError("remove directory").WithContext("path", dir).WithCause(err).Build()
		}
		removed = append(removed, dir)
	}
	return removed, nil
}
