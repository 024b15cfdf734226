package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/build"
	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/gallery"
)

// ScanCmd implements the 'scan' command.
type ScanCmd struct {
	Source string `short:"s" help:"Source directory (overrides source.dir)" type:"path"`
}

func (s *ScanCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if s.Source != "" {
		cfg.Source.Dir = s.Source
	}
	return Scan(os.Stdout, afero.NewOsFs(), cfg)
}

// Scan prints a table of the examples in the sources, sorted by title, and
// fails when two examples share an identifier.
func Scan(w io.Writer, fsys afero.Fs, cfg *config.Config) error {
	docs, err := build.DiscoverDocs(fsys, cfg)
	if err != nil {
		return err
	}
	pathOf := func(doc string) string {
		return filepath.Join(cfg.Source.Dir, filepath.FromSlash(doc)+cfg.Source.Suffix)
	}
	reg := gallery.NewRegistry()
	for d, err := range gallery.ScanDocuments(docs, cfg.Gallery.Dir, gallery.FileReader(fsys, pathOf)) {
		if err != nil {
			return err
		}
		if _, err := reg.Register(&gallery.Entry{Descriptor: d}); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tID\tLOCATION\tTAGS")
	for _, e := range reg.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Title, e.ID, e.Location(), strings.Join(e.Tags, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d examples in %d documents\n", reg.Len(), len(docs))
	return err
}
