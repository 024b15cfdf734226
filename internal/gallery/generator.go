package gallery

import (
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/frontmatter"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/metrics"
)

// Frontmatter keys written on generated pages.
const (
	FieldTitle     = "title"
	FieldGallery   = "gallery"
	FieldExampleID = "example_id"
	FieldOrigin    = "origin"
)

// Generator writes the gallery pages into the source tree.
type Generator struct {
	Fs afero.Fs
	// SourceDir is the documentation source directory.
	SourceDir string
	// Dir is the gallery directory relative to SourceDir, in slash form.
	Dir string
	// Suffix is the source file suffix, e.g. ".md".
	Suffix   string
	Renderer *Renderer
	Logger   *slog.Logger
	Metrics  metrics.Recorder
}

// Generate collects descs, clears the gallery directory and writes one page
// per example, one per tag and the landing page. Two examples with the same
// ID at different locations fail with a *DuplicateError, and an example
// whose ID is LandingName fails with ErrReservedExampleID, before anything
// is written.
func (g *Generator) Generate(descs iter.Seq2[Descriptor, error]) (*Pages, error) {
	seen := NewRegistry()
	for d, err := range descs {
		if err != nil {
			return nil, fmt.Errorf("scan sources: %w", err)
		}
		if d.ID == "" {
			return nil, fmt.Errorf("example title %q at %s yields an empty identifier", d.Title, d.Location())
		}
		if d.ID == LandingName {
			return nil, fmt.Errorf("%w: example %q at %s maps to %q, the gallery index page",
				ErrReservedExampleID, d.Title, d.Location(), d.ID)
		}
		if _, err := seen.Register(&Entry{Descriptor: d}); err != nil {
			return nil, err
		}
	}
	pages := NewPages(seen.Descriptors(), g.Dir)

	root := filepath.Join(g.SourceDir, filepath.FromSlash(g.Dir))
	if err := g.Fs.RemoveAll(root); err != nil {
		return nil, fmt.Errorf("clear gallery directory %s: %w", root, err)
	}
	if err := g.Fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create gallery directory %s: %w", root, err)
	}

	for _, page := range pages.All() {
		if err := g.write(page); err != nil {
			return nil, err
		}
		g.metrics().IncPagesGenerated(string(page.Kind()))
	}
	g.logger().Info("Generated example gallery",
		logfields.Path(root),
		slog.Int("examples", len(pages.Examples)),
		slog.Int("tags", len(pages.Tags)))
	return pages, nil
}

func (g *Generator) write(page Page) error {
	body, err := g.Renderer.Render(page)
	if err != nil {
		return err
	}
	fields := map[string]any{
		FieldTitle:   page.PageTitle(),
		FieldGallery: string(page.Kind()),
	}
	if ep, ok := page.(*ExamplePage); ok {
		fields[FieldExampleID] = ep.ID
		fields[FieldOrigin] = ep.OriginDoc()
	}
	content, err := frontmatter.Stamp(fields, body)
	if err != nil {
		return fmt.Errorf("frontmatter for %s: %w", page.DocName(), err)
	}

	file := filepath.Join(g.SourceDir, filepath.FromSlash(page.DocName())+g.Suffix)
	if err := g.Fs.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", file, err)
	}
	if err := afero.WriteFile(g.Fs, file, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	g.logger().Debug("Wrote gallery page", logfields.Page(page.DocName()), slog.String("kind", string(page.Kind())))
	return nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Generator) metrics() metrics.Recorder {
	if g.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return g.Metrics
}
