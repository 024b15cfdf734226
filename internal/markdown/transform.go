package markdown

import (
	"net/url"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type linkTransformer struct {
	opts Options
}

func (t *linkTransformer) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Link:
			node.Destination = []byte(t.opts.RewriteDestination(string(node.Destination)))
		case *gmast.Image:
			node.Destination = []byte(t.opts.RewriteDestination(string(node.Destination)))
		}
		return gmast.WalkContinue, nil
	})
}

// RewriteDestination applies intersphinx resolution and source-to-output
// suffix rewriting to a single link destination.
func (o Options) RewriteDestination(dest string) string {
	if resolved, ok := o.resolveIntersphinx(dest); ok {
		return resolved
	}
	if o.OutputSuffix == "" || o.SourceSuffix == "" || !IsRelative(dest) {
		return dest
	}
	path, suffix := SplitSuffix(dest)
	if !strings.HasSuffix(path, o.SourceSuffix) {
		return dest
	}
	return strings.TrimSuffix(path, o.SourceSuffix) + o.OutputSuffix + suffix
}

func (o Options) resolveIntersphinx(dest string) (string, bool) {
	name, rest, ok := strings.Cut(dest, ":")
	if !ok || name == "" || strings.HasPrefix(rest, "//") {
		return "", false
	}
	base, known := o.Intersphinx[name]
	if !known {
		return "", false
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rest, "/"), true
}

// IsRelative reports whether dest is a document-relative reference: no
// scheme, no host, not rooted and not a bare fragment.
func IsRelative(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return false
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// SplitSuffix splits dest into its path and its "?query#fragment" suffix.
func SplitSuffix(dest string) (path, suffix string) {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		return dest[:i], dest[i:]
	}
	return dest, ""
}
