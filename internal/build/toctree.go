package build

import (
	"path"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
)

// TocTreeDirective is the name of the built-in table-of-contents directive.
const TocTreeDirective = "toctree"

var tocEntryPattern = regexp.MustCompile(`^(.*?)\s*<([^<>]+)>$`)

// tocTreeDirective lists documents, one per content line, either as a bare
// docname or as "Title <docname>". Docnames are relative to the current
// document unless they start with "/".
var tocTreeDirective = directive.Func{
	S: directive.Spec{HasContent: true, Options: []string{"hidden", "caption", "maxdepth"}},
	Fn: func(ctx *directive.Context) ([]doctree.Node, error) {
		tree := &doctree.TocTree{}
		_, tree.Hidden = ctx.Option("hidden")
		tree.Caption, _ = ctx.Option("caption")
		for _, line := range ctx.Content {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			entry := doctree.TocEntry{DocName: line}
			if m := tocEntryPattern.FindStringSubmatch(line); m != nil {
				entry.Title, entry.DocName = m[1], m[2]
			}
			entry.DocName = resolveDocName(ctx.DocName, entry.DocName)
			tree.Entries = append(tree.Entries, entry)
		}
		return []doctree.Node{tree}, nil
	},
}

// resolveDocName resolves ref against the document from.
func resolveDocName(from, ref string) string {
	if strings.HasPrefix(ref, "/") {
		return path.Clean(strings.TrimPrefix(ref, "/"))
	}
	return path.Join(path.Dir(from), ref)
}
