// Package gallery collects examples marked in source documents and turns
// them into a browsable gallery: one page per example, one page per tag
// and a landing page listing everything.
//
// Examples are found twice. Before reading, a textual scan of the sources
// yields Descriptors used to generate the gallery pages. While reading,
// the "example" directive registers each example's parsed content in a
// Registry, which later fills the generated pages.
package gallery

import (
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docgallery/internal/slug"
)

const (
	// MarkerDirective is the directive that marks an example in a source document.
	MarkerDirective = "example"
	// ContentDirective is the directive that embeds an example's content on its page.
	ContentDirective = "example-content"

	// SourceRefPrefix prefixes an example ID to form the anchor of its
	// marker container on the origin page.
	SourceRefPrefix = "example-src-"
	// SourceClass marks the container wrapping an example on its origin page.
	SourceClass = "gallery-example-source"
	// ContentClass marks the placeholder filled with an example on its own page.
	ContentClass = "gallery-example-content"
)

// Location is a position in a source document.
type Location struct {
	DocName string
	Line    int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.DocName, l.Line)
}

// Descriptor identifies one example: its title, the document and line
// where it was marked, and its tags.
type Descriptor struct {
	Title   string
	ID      string
	DocName string
	Line    int
	// Tags is sorted and free of duplicates.
	Tags []string
}

// NewDescriptor builds a descriptor, deriving the ID from the title and
// normalizing tags.
func NewDescriptor(title, docName string, line int, tags []string) Descriptor {
	return Descriptor{
		Title:   title,
		ID:      slug.Make(title),
		DocName: docName,
		Line:    line,
		Tags:    normalizeTags(tags),
	}
}

// Location returns where the example was marked.
func (d Descriptor) Location() Location {
	return Location{DocName: d.DocName, Line: d.Line}
}

// SourceRefID returns the anchor of the example's marker container.
func (d Descriptor) SourceRefID() string {
	return SourceRefID(d.ID)
}

// HasTag reports whether the example carries tag.
func (d Descriptor) HasTag(tag string) bool {
	_, found := slices.BinarySearch(d.Tags, tag)
	return found
}

// SourceRefID returns the anchor of the marker container for example id.
func SourceRefID(id string) string {
	return SourceRefPrefix + id
}

// ParseTags splits a comma-separated tag list. Whitespace around tags is
// trimmed; empty tags and tags without any identifier characters are dropped.
func ParseTags(raw string) []string {
	return normalizeTags(strings.Split(raw, ","))
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slug.Make(t) == "" {
			continue
		}
		out = append(out, t)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
