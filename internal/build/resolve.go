package build

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/markdown"
	"git.home.luguber.info/inful/docgallery/internal/plugin"
)

// stageResolve runs the resolve hooks on every document, in docname order,
// then reports references to documents that do not exist.
func stageResolve(ctx context.Context, bs *State) error {
	hooks := plugin.Implementing[plugin.ResolveHook](bs.Plugins)
	for _, name := range sortedDocNames(bs) {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := bs.Docs[name]
		for _, h := range hooks {
			if err := h.ResolveDoc(bs.Context, doc); err != nil {
				return pluginFailure(h, plugin.OpResolve, err)
			}
		}
		checkReferences(bs, doc)
	}
	return nil
}

func sortedDocNames(bs *State) []string {
	names := make([]string, 0, len(bs.Docs))
	for name := range bs.Docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// checkReferences warns about toctree entries and relative Markdown links
// that point at unknown documents.
func checkReferences(bs *State, doc *doctree.Document) {
	warn := func(msg string) {
		bs.Logger.Warn(msg, logfields.Doc(doc.Name))
		bs.Report.Warn(doc.Name + ": " + msg)
	}
	for _, toc := range doctree.Find(doc, func(*doctree.TocTree) bool { return true }) {
		for _, e := range toc.Entries {
			if _, ok := bs.Docs[e.DocName]; !ok {
				warn(fmt.Sprintf("toctree contains reference to nonexisting document %q", e.DocName))
			}
		}
	}

	suffix := bs.Config.Source.Suffix
	for _, md := range doctree.Find(doc, func(*doctree.Markdown) bool { return true }) {
		for _, link := range markdown.ExtractLinks([]byte(md.Source)) {
			if !markdown.IsRelative(link.Destination) {
				continue
			}
			p, _ := markdown.SplitSuffix(link.Destination)
			if !strings.HasSuffix(p, suffix) {
				continue
			}
			target := path.Join(path.Dir(doc.Name), strings.TrimSuffix(p, suffix))
			if _, ok := bs.Docs[target]; !ok {
				warn(fmt.Sprintf("link to nonexisting document %q", link.Destination))
			}
		}
	}
}
