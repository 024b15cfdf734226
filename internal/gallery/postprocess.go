package gallery

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/metrics"
)

// Post-processing results recorded in metrics.
const (
	ResultInserted = "inserted"
	ResultFallback = "fallback"
	ResultSkipped  = "skipped"
)

// Postprocessor copies each example's rendered HTML from its origin page
// into the placeholder on its standalone page.
type Postprocessor struct {
	Fs afero.Fs
	// OutputDir is the directory page URIs are relative to.
	OutputDir string
	// URI maps a docname to its page path relative to OutputDir.
	URI func(docName string) string
	// GalleryDir is the gallery directory, as a docname prefix.
	GalleryDir string
	Logger     *slog.Logger
	Metrics    metrics.Recorder

	pages map[string]*html.Node
}

// Run processes entries in ID order. Problems with single examples are
// logged and collected; the returned error, if any, is a *multierror.Error
// and never means the output is unusable.
func (p *Postprocessor) Run(entries []*Entry) error {
	p.pages = map[string]*html.Node{}
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b *Entry) int { return strings.Compare(a.ID, b.ID) })

	var result *multierror.Error
	for _, e := range sorted {
		if err := p.process(e); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (p *Postprocessor) process(e *Entry) error {
	e.SourceHTML = p.URI(e.DocName)
	e.PageHTML = p.URI(e.PageDocName(p.GalleryDir))
	log := p.logger().With(logfields.ExampleID(e.ID))
	log.Debug("Post-processing example", slog.String("source", e.SourceHTML), slog.String("page", e.PageHTML))

	var issue error
	fragment, err := p.extract(e)
	if err != nil {
		log.Error("Could not extract example", logfields.Page(e.SourceHTML), logfields.Error(err))
		issue = err
		fragment = fallbackFragment(e.ID)
	}
	adaptURLs(fragment, e.SourceHTML, e.PageHTML)

	var buf bytes.Buffer
	for c := fragment.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return fmt.Errorf("example %s: render fragment: %w", e.ID, err)
		}
	}
	e.Fragment = buf.String()

	if err := p.insert(e, fragment); err != nil {
		log.Error("Could not insert example", logfields.Page(e.PageHTML), logfields.Error(err))
		p.metrics().IncPostprocessResult(ResultSkipped)
		return err
	}
	if issue != nil {
		p.metrics().IncPostprocessResult(ResultFallback)
		return issue
	}
	p.metrics().IncPostprocessResult(ResultInserted)
	return nil
}

// extract returns a copy of the example's marker container on its origin page.
func (p *Postprocessor) extract(e *Entry) (*html.Node, error) {
	doc, err := p.load(e.SourceHTML)
	if err != nil {
		return nil, fmt.Errorf("example %s: %w", e.ID, err)
	}
	div := findDiv(doc, e.SourceRefID(), SourceClass)
	if div == nil {
		return nil, fmt.Errorf("did not find source for example %s in %s", e.ID, e.SourceHTML)
	}
	return cloneTree(div), nil
}

// insert replaces the placeholder on the example page with the children of
// fragment and writes the page back.
func (p *Postprocessor) insert(e *Entry, fragment *html.Node) error {
	doc, err := p.load(e.PageHTML)
	if err != nil {
		return fmt.Errorf("could not find standalone page for example %s: %w", e.ID, err)
	}
	target := findDiv(doc, e.ID, ContentClass)
	if target == nil {
		return fmt.Errorf("page %s has no div.%s for example %s", e.PageHTML, ContentClass, e.ID)
	}

	parent := target.Parent
	for c := fragment.FirstChild; c != nil; {
		next := c.NextSibling
		fragment.RemoveChild(c)
		parent.InsertBefore(c, target)
		c = next
	}
	parent.RemoveChild(target)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return fmt.Errorf("render %s: %w", e.PageHTML, err)
	}
	if err := afero.WriteFile(p.Fs, p.path(e.PageHTML), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", e.PageHTML, err)
	}
	return nil
}

// load parses a page once per run; later loads see earlier edits.
func (p *Postprocessor) load(uri string) (*html.Node, error) {
	if doc, ok := p.pages[uri]; ok {
		return doc, nil
	}
	b, err := afero.ReadFile(p.Fs, p.path(uri))
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", uri, err)
	}
	p.pages[uri] = doc
	return doc, nil
}

func (p *Postprocessor) path(uri string) string {
	return filepath.Join(p.OutputDir, filepath.FromSlash(uri))
}

func (p *Postprocessor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Postprocessor) metrics() metrics.Recorder {
	if p.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return p.Metrics
}

// fallbackFragment stands in for an example whose source was not found.
func fallbackFragment(id string) *html.Node {
	div := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "id", Val: SourceRefID(id)},
			{Key: "class", Val: SourceClass},
		},
	}
	para := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	strong := &html.Node{Type: html.ElementNode, Data: "strong", DataAtom: atom.Strong}
	strong.AppendChild(&html.Node{Type: html.TextNode, Data: "Warning:"})
	para.AppendChild(strong)
	para.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprintf(" example %s was not found.", id)})
	div.AppendChild(para)
	return div
}

// adaptURLs rewrites relative a[href] and img[src] under n for a move from
// srcPage to destPage.
func adaptURLs(n *html.Node, srcPage, destPage string) {
	if n.Type == html.ElementNode {
		key := ""
		switch n.DataAtom {
		case atom.A:
			key = "href"
		case atom.Img:
			key = "src"
		}
		if key != "" {
			for i, a := range n.Attr {
				if a.Namespace == "" && a.Key == key {
					n.Attr[i].Val = RewriteURL(a.Val, srcPage, destPage)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		adaptURLs(c, srcPage, destPage)
	}
}

func findDiv(n *html.Node, id, class string) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Div && attr(n, "id") == id && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findDiv(c, id, class); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneTree(child))
	}
	return c
}
