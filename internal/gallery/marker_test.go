package gallery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
)

func parseWith(t *testing.T, m *Marker, doc, src string) ([]doctree.Node, error) {
	t.Helper()
	p := directive.NewParser(directive.Set{MarkerDirective: m, ContentDirective: contentDirective}, nil)
	return p.Parse(doc, strings.Split(src, "\n"), 1)
}

const markerSource = `Intro.

.. example:: Alpha
   :tags: b, a

   Some *content*.

Outro.`

func TestMarker_RegistersAndWraps(t *testing.T) {
	reg := NewRegistry()
	nodes, err := parseWith(t, &Marker{Registry: reg, Enabled: true}, "guide/intro", markerSource)
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	box, ok := nodes[1].(*doctree.Container)
	require.True(t, ok)
	assert.Equal(t, "example-src-alpha", box.ID)
	assert.True(t, box.HasClass(SourceClass))
	require.Len(t, box.Children, 1)
	assert.Equal(t, "Some *content*.", box.Children[0].(*doctree.Markdown).Source)

	e, ok := reg.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "Alpha", e.Title)
	assert.Equal(t, "guide/intro", e.DocName)
	assert.Equal(t, 3, e.Line)
	assert.Equal(t, []string{"a", "b"}, e.Tags)
	assert.Equal(t, []string{"Some *content*."}, e.RawContent)
	require.Len(t, e.Content, 1)
	assert.NotSame(t, box.Children[0], e.Content[0])
}

func TestMarker_ReparseIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	m := &Marker{Registry: reg, Enabled: true}
	_, err := parseWith(t, m, "guide/intro", markerSource)
	require.NoError(t, err)
	_, err = parseWith(t, m, "guide/intro", markerSource)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestMarker_DuplicateTitleFails(t *testing.T) {
	m := &Marker{Registry: NewRegistry(), Enabled: true}
	_, err := parseWith(t, m, "guide/intro", markerSource)
	require.NoError(t, err)

	_, err = parseWith(t, m, "guide/other", ".. example:: ALPHA\n\n   Again.")
	require.ErrorIs(t, err, ErrDuplicateExample)
	assert.Contains(t, err.Error(), `"Alpha"`)
	assert.Contains(t, err.Error(), `"ALPHA"`)
}

func TestMarker_RequiresContent(t *testing.T) {
	_, err := parseWith(t, &Marker{Registry: NewRegistry(), Enabled: true}, "doc", ".. example:: Empty\n\nNext.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have content")
}

func TestMarker_RejectsEmptyIdentifier(t *testing.T) {
	_, err := parseWith(t, &Marker{Registry: NewRegistry(), Enabled: true}, "doc", ".. example:: ???\n\n   x")
	require.Error(t, err)
}

func TestMarker_DisabledPassesContentThrough(t *testing.T) {
	reg := NewRegistry()
	nodes, err := parseWith(t, &Marker{Registry: reg, Enabled: false}, "guide/intro", markerSource)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	md, ok := nodes[1].(*doctree.Markdown)
	require.True(t, ok)
	assert.Equal(t, "Some *content*.", md.Source)
	assert.Zero(t, reg.Len())
}

func resolveFixture(t *testing.T) (*Registry, *doctree.Document) {
	t.Helper()
	reg := NewRegistry()
	_, err := parseWith(t, &Marker{Registry: reg, Enabled: true}, "guide/intro", markerSource)
	require.NoError(t, err)

	nodes, err := parseWith(t, &Marker{Registry: NewRegistry()}, "examples/alpha",
		"# Alpha\n\n.. example-content:: alpha\n\n.. example-content:: missing\n")
	require.NoError(t, err)
	return reg, &doctree.Document{Name: "examples/alpha", Children: nodes}
}

func TestResolveContent_HTMLLeavesPlaceholder(t *testing.T) {
	reg, doc := resolveFixture(t)
	missing := ResolveContent(doc, reg, "examples", true)
	assert.Equal(t, []string{"missing"}, missing)

	require.Len(t, doc.Children, 3)
	placeholder := doc.Children[1].(*doctree.Container)
	assert.Equal(t, "alpha", placeholder.ID)
	assert.True(t, placeholder.HasClass(ContentClass))
	assert.Empty(t, placeholder.Children)

	warning := doc.Children[2].(*doctree.Text)
	assert.Equal(t, "Example missing not found", warning.Message)
	assert.Equal(t, doctree.LevelWarning, warning.Level)
}

func TestResolveContent_OtherFormatsCopyContent(t *testing.T) {
	reg, doc := resolveFixture(t)
	ResolveContent(doc, reg, "examples", false)

	box := doc.Children[1].(*doctree.Container)
	require.Len(t, box.Children, 1)
	assert.Equal(t, "Some *content*.", box.Children[0].(*doctree.Markdown).Source)

	e, _ := reg.Get("alpha")
	assert.NotSame(t, e.Content[0], box.Children[0])
}

func TestResolveContent_HTMLOutsideExamplePageCopiesContent(t *testing.T) {
	reg, doc := resolveFixture(t)
	doc.Name = "guide/reuse"
	missing := ResolveContent(doc, reg, "examples", true)
	assert.Equal(t, []string{"missing"}, missing)

	box := doc.Children[1].(*doctree.Container)
	assert.Equal(t, "alpha", box.ID)
	require.Len(t, box.Children, 1)
	assert.Equal(t, "Some *content*.", box.Children[0].(*doctree.Markdown).Source)
}
