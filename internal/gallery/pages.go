package gallery

import (
	"cmp"
	"path"
	"slices"

	"git.home.luguber.info/inful/docgallery/internal/slug"
)

// PageKind distinguishes generated pages.
type PageKind string

const (
	KindExample PageKind = "example"
	KindTag     PageKind = "tag"
	KindLanding PageKind = "landing"
)

// Page is a generated gallery document.
type Page interface {
	Kind() PageKind
	// DocName is the page's docname, relative to the source directory.
	DocName() string
	PageTitle() string
}

// ExamplePage is the standalone page of one example.
type ExamplePage struct {
	Descriptor
	Dir string
	// TagPages holds the pages of the example's tags, sorted by tag name.
	TagPages []*TagPage
}

func (p *ExamplePage) Kind() PageKind    { return KindExample }
func (p *ExamplePage) DocName() string   { return exampleDocName(p.Dir, p.ID) }
func (p *ExamplePage) PageTitle() string { return p.Title }

// OriginDoc returns the docname of the document the example was marked in.
func (p *ExamplePage) OriginDoc() string { return p.Descriptor.DocName }

// OtherTags returns the example's tag pages except except.
func (p *ExamplePage) OtherTags(except *TagPage) []*TagPage {
	out := make([]*TagPage, 0, len(p.TagPages))
	for _, t := range p.TagPages {
		if t != except {
			out = append(out, t)
		}
	}
	return out
}

// TagPage lists the examples carrying one tag.
type TagPage struct {
	Name string
	ID   string
	Dir  string
	// Examples is sorted by title.
	Examples []*ExamplePage
}

func (p *TagPage) Kind() PageKind    { return KindTag }
func (p *TagPage) DocName() string   { return path.Join(p.Dir, "tags", p.ID) }
func (p *TagPage) PageTitle() string { return "Examples tagged " + p.Name }

// LandingPage is the gallery index.
type LandingPage struct {
	Dir      string
	Title    string
	Examples []*ExamplePage
	Tags     []*TagPage
}

func (p *LandingPage) Kind() PageKind    { return KindLanding }
func (p *LandingPage) DocName() string   { return path.Join(p.Dir, LandingName) }
func (p *LandingPage) PageTitle() string { return p.Title }

// Pages is the full set of generated pages with their cross references.
type Pages struct {
	Examples []*ExamplePage
	Tags     []*TagPage
	Landing  *LandingPage
}

// All returns every page: the landing page, then examples, then tags.
func (p *Pages) All() []Page {
	out := make([]Page, 0, 1+len(p.Examples)+len(p.Tags))
	out = append(out, p.Landing)
	for _, e := range p.Examples {
		out = append(out, e)
	}
	for _, t := range p.Tags {
		out = append(out, t)
	}
	return out
}

// LandingName is the base name of the gallery index page. No example may
// use it as its ID.
const LandingName = "index"

// LandingTitle is the title of the gallery index page.
const LandingTitle = "Example gallery"

// NewPages lays out the gallery for descs in dir. Examples are sorted by
// title and tags by name; the example and tag pages reference each other.
// Tags that map to the same identifier share one page, named after the
// first of them in sort order.
func NewPages(descs []Descriptor, dir string) *Pages {
	sorted := slices.Clone(descs)
	slices.SortFunc(sorted, func(a, b Descriptor) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	})

	pages := &Pages{Landing: &LandingPage{Dir: dir, Title: LandingTitle}}
	byID := map[string]*TagPage{}
	for _, d := range sorted {
		ep := &ExamplePage{Descriptor: d, Dir: dir}
		for _, name := range d.Tags {
			id := slug.Make(name)
			tp, ok := byID[id]
			if !ok {
				tp = &TagPage{Name: name, ID: id, Dir: dir}
				byID[id] = tp
				pages.Tags = append(pages.Tags, tp)
			} else if name < tp.Name {
				tp.Name = name
			}
			if slices.Contains(ep.TagPages, tp) {
				continue
			}
			tp.Examples = append(tp.Examples, ep)
			ep.TagPages = append(ep.TagPages, tp)
		}
		pages.Examples = append(pages.Examples, ep)
	}

	byName := func(a, b *TagPage) int { return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID)) }
	slices.SortFunc(pages.Tags, byName)
	for _, ep := range pages.Examples {
		slices.SortFunc(ep.TagPages, byName)
	}
	pages.Landing.Examples = pages.Examples
	pages.Landing.Tags = pages.Tags
	return pages
}

func exampleDocName(dir, id string) string {
	return path.Join(dir, id)
}
