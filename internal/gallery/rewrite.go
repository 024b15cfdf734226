package gallery

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/docgallery/internal/markdown"
)

// RewriteURL adapts ref, a URL found on the page at srcPage, so that it
// points at the same target from destPage. Pages are slash paths relative
// to the site root. External URLs, rooted paths and bare fragments are
// returned unchanged. A ref starting with ".//" is relative to the site
// root.
func RewriteURL(ref, srcPage, destPage string) string {
	if !markdown.IsRelative(ref) {
		return ref
	}
	p, suffix := markdown.SplitSuffix(ref)

	var target string
	switch {
	case strings.HasPrefix(p, ".//"):
		target = path.Clean(p[3:])
	case p == "":
		target = path.Clean(srcPage)
	default:
		target = path.Join(path.Dir(srcPage), p)
	}

	out := markdown.RelPath(path.Dir(path.Clean(destPage)), target)
	if strings.HasSuffix(p, "/") && out != "." {
		out += "/"
	}
	return out + suffix
}
