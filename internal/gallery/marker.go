package gallery

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
)

// Marker implements the "example" directive:
//
//	.. example:: Title of the example
//	   :tags: fitting, tables
//
//	   Content of the example.
//
// The content stays on the page, wrapped in a container anchored at the
// example's source reference ID, and is registered under the example ID.
type Marker struct {
	Registry *Registry
	// Enabled false makes the directive a pass-through for its content.
	Enabled bool
	Logger  *slog.Logger
}

func (m *Marker) Spec() directive.Spec {
	return directive.Spec{
		RequiredArguments:       1,
		FinalArgumentWhitespace: true,
		HasContent:              true,
		Options:                 []string{"tags"},
	}
}

func (m *Marker) Run(ctx *directive.Context) ([]doctree.Node, error) {
	if !ctx.HasContent() {
		return nil, errors.New("an example must have content")
	}
	children, err := ctx.ParseContent()
	if err != nil {
		return nil, err
	}
	if !m.Enabled {
		return children, nil
	}

	tags, _ := ctx.Option("tags")
	desc := NewDescriptor(ctx.Argument(), ctx.DocName, ctx.Line, ParseTags(tags))
	if desc.ID == "" {
		return nil, fmt.Errorf("example title %q yields an empty identifier", desc.Title)
	}

	added, err := m.Registry.Register(&Entry{
		Descriptor: desc,
		Content:    doctree.Clone(children),
		RawContent: slices.Clone(ctx.Content),
	})
	if err != nil {
		return nil, err
	}
	if !added {
		m.logger().Debug("Example registered again from the same location",
			logfields.ExampleID(desc.ID), logfields.Doc(desc.DocName), logfields.Line(desc.Line))
	}

	return []doctree.Node{&doctree.Container{
		ID:       desc.SourceRefID(),
		Classes:  []string{SourceClass},
		Children: children,
	}}, nil
}

func (m *Marker) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

// contentDirective implements "example-content", which leaves a pending
// reference to be filled once every example is known.
var contentDirective = directive.Func{
	S: directive.Spec{RequiredArguments: 1},
	Fn: func(ctx *directive.Context) ([]doctree.Node, error) {
		return []doctree.Node{&doctree.Pending{
			Name: ContentDirective,
			Ref:  ctx.Argument(),
			Line: ctx.Line,
		}}, nil
	},
}

// ResolveContent replaces the pending example references in doc. On an
// example's own page in the gallery directory dir, HTML output keeps an
// empty placeholder for the post-processor; everywhere else the container
// holds a copy of the registered content. Unknown examples become a visible
// warning. It returns the IDs that could not be found.
func ResolveContent(doc *doctree.Document, reg *Registry, dir string, html bool) []string {
	var missing []string
	pending := doctree.Find(doc, func(p *doctree.Pending) bool { return p.Name == ContentDirective })
	for _, p := range pending {
		entry, ok := reg.Get(p.Ref)
		switch {
		case !ok:
			missing = append(missing, p.Ref)
			doc.Replace(p, &doctree.Text{
				Message: fmt.Sprintf("Example %s not found", p.Ref),
				Level:   doctree.LevelWarning,
			})
		case html && doc.Name == entry.PageDocName(dir):
			doc.Replace(p, &doctree.Container{ID: entry.ID, Classes: []string{ContentClass}})
		default:
			doc.Replace(p, &doctree.Container{
				ID:       entry.ID,
				Classes:  []string{ContentClass},
				Children: doctree.Clone(entry.Content),
			})
		}
	}
	return missing
}
