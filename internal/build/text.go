package build

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docgallery/internal/doctree"
)

// textWriter writes documents as plain text. Markdown runs are kept as
// written; directive output is flattened.
type textWriter struct {
	docs map[string]*doctree.Document
}

func (w *textWriter) Render(doc *doctree.Document) ([]byte, error) {
	var b strings.Builder
	w.renderNodes(&b, doc.Children)
	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

func (w *textWriter) renderNodes(b *strings.Builder, nodes []doctree.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *doctree.Markdown:
			b.WriteString(strings.TrimRight(n.Source, "\n"))
			b.WriteString("\n\n")
		case *doctree.Container:
			w.renderNodes(b, n.Children)
		case *doctree.Text:
			fmt.Fprintf(b, "[%s] %s\n\n", n.Level, n.Message)
		case *doctree.Raw:
			switch n.Format {
			case "text":
				b.WriteString(n.Content)
				b.WriteString("\n\n")
			case "html":
				if s := stripTags(n.Content); s != "" {
					b.WriteString(s)
					b.WriteString("\n\n")
				}
			}
		case *doctree.TocTree:
			if n.Hidden {
				continue
			}
			if n.Caption != "" {
				b.WriteString(n.Caption + "\n")
			}
			for _, e := range n.Entries {
				title := e.Title
				if title == "" {
					if d, ok := w.docs[e.DocName]; ok {
						title = d.Title
					} else {
						title = e.DocName
					}
				}
				fmt.Fprintf(b, "- %s\n", title)
			}
			b.WriteString("\n")
		}
	}
}

// stripTags returns the text content of an HTML fragment.
func stripTags(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return strings.TrimSpace(fragment)
			}
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
