package build

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
)

// pageWriter renders one resolved document in an output format.
type pageWriter interface {
	Render(doc *doctree.Document) ([]byte, error)
}

func newPageWriter(bs *State) (pageWriter, error) {
	switch bs.Config.Output.Format {
	case config.FormatHTML:
		return newHTMLWriter(bs)
	case config.FormatText:
		return &textWriter{docs: bs.Docs}, nil
	default:
		return nil, errors.ValidationError("unsupported output format").
			WithContext("format", string(bs.Config.Output.Format)).Build()
	}
}

// stageWrite renders every document into the output directory. The dummy
// format stops after resolving and writes nothing.
func stageWrite(ctx context.Context, bs *State) error {
	cfg := bs.Config
	if cfg.Output.Format == config.FormatDummy {
		bs.Logger.Info("Dummy output format, nothing written")
		return nil
	}
	w, err := newPageWriter(bs)
	if err != nil {
		return err
	}

	fsys := bs.Context.Fs
	out := bs.Context.OutputDir()
	if cfg.Output.Clean {
		if err := fsys.RemoveAll(out); err != nil {
			return writeError("clean output directory", out, err)
		}
	}
	if err := fsys.MkdirAll(out, 0o755); err != nil {
		return writeError("create output directory", out, err)
	}

	for _, name := range sortedDocNames(bs) {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := w.Render(bs.Docs[name])
		if err != nil {
			return errors.WrapError(err, errors.CategoryBuild, "render document").
				WithContext("doc", name).Build()
		}
		target := bs.Context.OutputPath(name)
		if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return writeError("create page directory", target, err)
		}
		if err := afero.WriteFile(fsys, target, content, 0o644); err != nil {
			return writeError("write page", target, err)
		}
		bs.Report.Written++
	}
	bs.Logger.Info("Wrote pages", logfields.Count(bs.Report.Written), logfields.Path(out))

	if cfg.Output.Format.IsHTML() {
		return copyStatic(bs)
	}
	return nil
}

func writeError(msg, path string, err error) error {
	return errors.FileSystemError(msg).WithContext("path", path).
		WithCause(fmt.Errorf("%w: %w", ErrWrite, err)).Build()
}
