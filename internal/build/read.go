package build

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/foundation/errors"
	"git.home.luguber.info/inful/docgallery/internal/frontmatter"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// orderWaves applies every DocOrderer in registration order. Each orderer
// splits the waves produced so far, so wave boundaries only ever grow.
func orderWaves(reg *plugin.Registry, docnames []string) [][]string {
	waves := [][]string{docnames}
	for _, o := range plugin.Implementing[plugin.DocOrderer](reg) {
		var next [][]string
		for _, wave := range waves {
			next = append(next, o.OrderDocs(wave)...)
		}
		waves = next
	}
	return waves
}

func stageRead(ctx context.Context, bs *State) error {
	waves := orderWaves(bs.Plugins, bs.DocNames)
	for i, wave := range waves {
		if err := readWave(ctx, bs, wave); err != nil {
			return err
		}
		bs.Logger.Debug("Read wave complete", slog.Int("wave", i), logfields.Count(len(wave)))
	}
	bs.Metrics.AddDocumentsRead(len(bs.Docs))
	return nil
}

// readWave reads wave with up to build.workers goroutines, then merges the
// worker state of every MergeHook plugin in worker order.
func readWave(ctx context.Context, bs *State, wave []string) error {
	n := min(bs.Config.Build.Workers, len(wave))
	if n <= 0 {
		return nil
	}
	workerPlugins := plugin.Implementing[plugin.WorkerPlugin](bs.Plugins)
	base := baseDirectives(bs)

	// workers[g][p] is the worker of plugin p owned by goroutine g.
	workers := make([][]plugin.Worker, n)
	for g := range n {
		for _, wp := range workerPlugins {
			workers[g] = append(workers[g], wp.NewWorker(bs.Context, g))
		}
	}

	results := make([][]*doctree.Document, n)
	eg, egctx := errgroup.WithContext(ctx)
	for g := range n {
		eg.Go(func() error {
			set := maps.Clone(base)
			for _, w := range workers[g] {
				maps.Copy(set, w.Directives())
			}
			parser := directive.NewParser(set, bs.Logger.With(logfields.Worker(g)))
			for i := g; i < len(wave); i += n {
				if err := egctx.Err(); err != nil {
					return err
				}
				docname := wave[i]
				for _, w := range workers[g] {
					w.PurgeDoc(docname)
				}
				doc, err := readDocument(bs, parser, docname)
				if err != nil {
					return err
				}
				results[g] = append(results[g], doc)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, docs := range results {
		for _, doc := range docs {
			bs.Docs[doc.Name] = doc
		}
	}

	for p, wp := range workerPlugins {
		mh, ok := wp.(plugin.MergeHook)
		if !ok {
			continue
		}
		column := make([]plugin.Worker, n)
		for g := range n {
			column[g] = workers[g][p]
		}
		if err := mh.Merge(bs.Context, column); err != nil {
			return pluginFailure(mh, plugin.OpMerge, err)
		}
	}
	return nil
}

// baseDirectives are the built-in directives plus those of every
// DirectiveProvider. Later providers win on name clashes.
func baseDirectives(bs *State) directive.Set {
	set := directive.Set{TocTreeDirective: tocTreeDirective}
	for _, p := range plugin.Implementing[plugin.DirectiveProvider](bs.Plugins) {
		maps.Copy(set, p.Directives(bs.Context))
	}
	return set
}

// readDocument parses one source document into a tree.
func readDocument(bs *State, parser *directive.Parser, docname string) (*doctree.Document, error) {
	file := bs.Context.SourcePath(docname)
	content, err := afero.ReadFile(bs.Context.Fs, file)
	if err != nil {
		return nil, errors.FileSystemError("read source document").
			WithContext("path", file).WithCause(fmt.Errorf("%w: %w", ErrRead, err)).Build()
	}
	fm, err := frontmatter.Parse(content)
	if err != nil {
		return nil, errors.ValidationError("invalid frontmatter").
			WithContext("doc", docname).WithCause(err).Build()
	}

	body := strings.ReplaceAll(string(fm.Body), "\r\n", "\n")
	nodes, err := parser.Parse(docname, strings.Split(body, "\n"), fm.BodyLine)
	if err != nil {
		return nil, errors.DirectiveError("directive failed").
			WithContext("doc", docname).WithCause(err).Fatal().Build()
	}

	doc := &doctree.Document{Name: docname, Meta: fm.Fields, Children: nodes}
	if title, ok := fm.Fields["title"].(string); ok && title != "" {
		doc.Title = title
	} else {
		doc.Title = firstHeading(nodes)
	}
	if doc.Title == "" {
		doc.Title = path.Base(docname)
	}
	return doc, nil
}

var (
	atxHeading    = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)
	setextHeading = regexp.MustCompile(`(?m)^([^\s].*)\n=+[ \t]*$`)
)

// firstHeading returns the text of the first top-level heading in the
// document's Markdown runs.
func firstHeading(nodes []doctree.Node) string {
	doc := &doctree.Document{Children: nodes}
	for _, md := range doctree.Find(doc, func(*doctree.Markdown) bool { return true }) {
		best, title := -1, ""
		if m := atxHeading.FindStringSubmatchIndex(md.Source); m != nil {
			best, title = m[0], md.Source[m[2]:m[3]]
		}
		if m := setextHeading.FindStringSubmatchIndex(md.Source); m != nil && (best < 0 || m[0] < best) {
			title = md.Source[m[2]:m[3]]
			best = m[0]
		}
		if best >= 0 {
			return strings.TrimSpace(title)
		}
	}
	return ""
}
