package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(pages []*ExamplePage) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Title
	}
	return out
}

func tagNames(pages []*TagPage) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Name
	}
	return out
}

func TestNewPages_OrderAndCrossReferences(t *testing.T) {
	pages := NewPages([]Descriptor{
		NewDescriptor("Beta", "b", 1, []string{"b"}),
		NewDescriptor("Alpha", "a", 1, []string{"b", "a"}),
		NewDescriptor("Gamma", "c", 1, nil),
	}, "examples")

	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, titles(pages.Examples))
	assert.Equal(t, []string{"a", "b"}, tagNames(pages.Tags))

	alpha := pages.Examples[0]
	tagB := pages.Tags[1]
	assert.Equal(t, []string{"a", "b"}, tagNames(alpha.TagPages))
	assert.Equal(t, []string{"Alpha", "Beta"}, titles(tagB.Examples))
	assert.Equal(t, []string{"a"}, tagNames(alpha.OtherTags(tagB)))
	assert.Same(t, alpha, tagB.Examples[0])

	assert.Equal(t, "examples/alpha", alpha.DocName())
	assert.Equal(t, "a", alpha.OriginDoc())
	assert.Equal(t, "examples/tags/b", tagB.DocName())
	assert.Equal(t, "examples/index", pages.Landing.DocName())
	assert.Equal(t, titles(pages.Examples), titles(pages.Landing.Examples))
}

func TestNewPages_All(t *testing.T) {
	pages := NewPages([]Descriptor{NewDescriptor("Alpha", "a", 1, []string{"x"})}, "gallery")
	var kinds []PageKind
	var docs []string
	for _, p := range pages.All() {
		kinds = append(kinds, p.Kind())
		docs = append(docs, p.DocName())
	}
	assert.Equal(t, []PageKind{KindLanding, KindExample, KindTag}, kinds)
	assert.Equal(t, []string{"gallery/index", "gallery/alpha", "gallery/tags/x"}, docs)
}

func TestNewPages_TagsSharingAnIdentifier(t *testing.T) {
	pages := NewPages([]Descriptor{
		NewDescriptor("Alpha", "a", 1, []string{"fitting"}),
		NewDescriptor("Beta", "b", 1, []string{"Fitting"}),
	}, "examples")

	require.Len(t, pages.Tags, 1)
	assert.Equal(t, "Fitting", pages.Tags[0].Name)
	assert.Equal(t, "fitting", pages.Tags[0].ID)
	assert.Equal(t, []string{"Alpha", "Beta"}, titles(pages.Tags[0].Examples))
}

func TestNewPages_Empty(t *testing.T) {
	pages := NewPages(nil, "examples")
	assert.Empty(t, pages.Examples)
	assert.Empty(t, pages.Tags)
	assert.Len(t, pages.All(), 1)
}
