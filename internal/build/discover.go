package build

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
)

// sourceLister walks the source directory on every call, so plugins that
// list sources before discovery see the tree as it is at that moment.
type sourceLister struct {
	fs  afero.Fs
	cfg *config.Config
}

// SourceDocs returns the sorted docnames of all source documents.
func (s *sourceLister) SourceDocs() ([]string, error) {
	return DiscoverDocs(s.fs, s.cfg)
}

// DiscoverDocs walks cfg.Source.Dir for files with the source suffix and
// returns their docnames: slash paths relative to the source directory,
// without the suffix. Paths matching source.exclude and the output
// directory are skipped.
func DiscoverDocs(fsys afero.Fs, cfg *config.Config) ([]string, error) {
	root := filepath.Clean(cfg.Source.Dir)
	info, err := fsys.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "source directory not found").
				WithContext("path", root).WithCause(err).Build()
		}
		return nil, errors.FileSystemError("stat source directory").WithContext("path", root).WithCause(err).Build()
	}
	if !info.IsDir() {
		return nil, errors.ValidationError("source.dir is not a directory").WithContext("path", root).Build()
	}
	outDir := filepath.Clean(cfg.Output.Dir)

	var docs []string
	err = afero.Walk(fsys, root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if fi.IsDir() {
			if filepath.Clean(p) == outDir || excluded(rel, cfg.Source.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(rel, cfg.Source.Suffix) || excluded(rel, cfg.Source.Exclude) {
			return nil
		}
		docs = append(docs, strings.TrimSuffix(rel, cfg.Source.Suffix))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk %s: %w", ErrDiscovery, root, err)
	}
	slices.Sort(docs)
	return docs, nil
}

// excluded reports whether rel, or its base name, matches one of patterns.
func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

func stageDiscover(_ context.Context, bs *State) error {
	docs, err := bs.Context.Sources.SourceDocs()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		bs.Logger.Warn("No source documents found", logfields.Path(bs.Config.Source.Dir))
		bs.Report.Warn("no source documents found in " + bs.Config.Source.Dir)
	}
	bs.DocNames = docs
	bs.Report.Documents = len(docs)
	bs.Logger.Info("Discovered documents", logfields.Count(len(docs)))
	return nil
}
