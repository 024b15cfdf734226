package build

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"

	"git.home.luguber.info/inful/docgallery/internal/config"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
	"git.home.luguber.info/inful/docgallery/internal/markdown"
)

//go:embed templates/layout.html.tmpl
var layoutFS embed.FS

var layoutTemplate = template.Must(template.ParseFS(layoutFS, "templates/layout.html.tmpl"))

// layoutData is the data handed to the HTML page layout.
type layoutData struct {
	Title       string
	Project     string
	Root        string
	Stylesheets []string
	Logo        string
	Navbar      []config.NavLink
	LastUpdated string
	Body        template.HTML
}

type htmlWriter struct {
	bs          *State
	md          *markdown.Renderer
	stylesheets []string
	lastUpdated string
}

func newHTMLWriter(bs *State) (*htmlWriter, error) {
	cfg := bs.Config
	w := &htmlWriter{
		bs: bs,
		md: markdown.NewRenderer(markdown.Options{
			SourceSuffix: cfg.Source.Suffix,
			OutputSuffix: cfg.Output.Format.Suffix(),
			Intersphinx:  cfg.Intersphinx.Mapping,
		}),
	}
	if theme, err := bs.Plugins.Theme(cfg.Project.Theme); err == nil {
		w.stylesheets = theme.Stylesheets()
	} else {
		bs.Logger.Warn("Theme not available, pages are unstyled", logfields.Error(err))
	}
	if cfg.Project.LastUpdatedFormat != "" {
		w.lastUpdated = bs.builder.now().Format(cfg.Project.LastUpdatedFormat)
	}
	return w, nil
}

// Render lays out doc as a complete HTML page.
func (w *htmlWriter) Render(doc *doctree.Document) ([]byte, error) {
	var body strings.Builder
	if err := w.renderNodes(&body, doc, doc.Children); err != nil {
		return nil, err
	}
	root := markdown.RootPrefix(doc.Name)
	data := layoutData{
		Title:       doc.Title,
		Project:     w.bs.Config.Project.Title,
		Root:        root,
		Logo:        w.bs.Config.Project.Logo,
		Navbar:      w.bs.Config.Project.Navbar,
		LastUpdated: w.lastUpdated,
		Body:        template.HTML(body.String()), //nolint:gosec // assembled from escaped fragments
	}
	for _, css := range w.stylesheets {
		data.Stylesheets = append(data.Stylesheets, root+"_static/"+css)
	}
	var buf bytes.Buffer
	if err := layoutTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("layout %s: %w", doc.Name, err)
	}
	return buf.Bytes(), nil
}

func (w *htmlWriter) renderNodes(b *strings.Builder, doc *doctree.Document, nodes []doctree.Node) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *doctree.Markdown:
			out, err := w.md.Render([]byte(n.Source))
			if err != nil {
				return fmt.Errorf("markdown at line %d: %w", n.Line, err)
			}
			b.Write(out)
		case *doctree.Target:
			fmt.Fprintf(b, "<span id=\"%s\"></span>\n", template.HTMLEscapeString(n.ID))
		case *doctree.Container:
			b.WriteString("<div")
			if n.ID != "" {
				fmt.Fprintf(b, " id=\"%s\"", template.HTMLEscapeString(n.ID))
			}
			if len(n.Classes) > 0 {
				fmt.Fprintf(b, " class=\"%s\"", template.HTMLEscapeString(strings.Join(n.Classes, " ")))
			}
			b.WriteString(">\n")
			if err := w.renderNodes(b, doc, n.Children); err != nil {
				return err
			}
			b.WriteString("</div>\n")
		case *doctree.Text:
			fmt.Fprintf(b, "<div class=\"system-message %s\"><p>%s</p></div>\n",
				n.Level, template.HTMLEscapeString(n.Message))
		case *doctree.Raw:
			if n.Format == "html" {
				b.WriteString(n.Content)
			}
		case *doctree.TocTree:
			w.renderTocTree(b, doc, n)
		case *doctree.Pending:
			w.bs.Logger.Debug("Unresolved pending node", logfields.Doc(doc.Name), logfields.Directive(n.Name))
		}
	}
	return nil
}

func (w *htmlWriter) renderTocTree(b *strings.Builder, doc *doctree.Document, toc *doctree.TocTree) {
	b.WriteString("<nav class=\"toctree\"")
	if toc.Hidden {
		b.WriteString(" hidden")
	}
	b.WriteString(">\n")
	if toc.Caption != "" {
		fmt.Fprintf(b, "<p class=\"caption\">%s</p>\n", template.HTMLEscapeString(toc.Caption))
	}
	b.WriteString("<ul>\n")
	suffix := w.bs.Config.Output.Format.Suffix()
	for _, e := range toc.Entries {
		title := e.Title
		if title == "" {
			if target, ok := w.bs.Docs[e.DocName]; ok {
				title = target.Title
			} else {
				title = e.DocName
			}
		}
		href := markdown.RelPath(path.Dir(doc.Name), e.DocName) + suffix
		fmt.Fprintf(b, "<li><a href=\"%s\">%s</a></li>\n",
			template.HTMLEscapeString(href), template.HTMLEscapeString(title))
	}
	b.WriteString("</ul>\n</nav>\n")
}
