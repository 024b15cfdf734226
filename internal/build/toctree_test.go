package build

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docgallery/internal/directive"
	"git.home.luguber.info/inful/docgallery/internal/doctree"
)

func TestTocTreeDirective(t *testing.T) {
	src := `.. toctree::
   :caption: Contents
   :hidden:

   units
   Coordinates <../coords/index>
   /index
`
	parser := directive.NewParser(directive.Set{TocTreeDirective: tocTreeDirective}, nil)
	nodes, err := parser.Parse("guide/intro", strings.Split(src, "\n"), 1)
	require.NoError(t, err)

	trees := doctree.Find(&doctree.Document{Children: nodes}, func(*doctree.TocTree) bool { return true })
	require.Len(t, trees, 1)
	toc := trees[0]
	assert.True(t, toc.Hidden)
	assert.Equal(t, "Contents", toc.Caption)
	assert.Equal(t, []doctree.TocEntry{
		{DocName: "guide/units"},
		{Title: "Coordinates", DocName: "coords/index"},
		{DocName: "index"},
	}, toc.Entries)
}

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"atx", "intro\n\n# Title #\n", "Title"},
		{"setext", "Title\n=====\n\ntext\n", "Title"},
		{"first wins", "Setext\n======\n\n# Atx\n", "Setext"},
		{"none", "just text\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstHeading([]doctree.Node{&doctree.Markdown{Source: tt.src}})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "bold and plain", stripTags("<p><strong>bold</strong> and plain</p>"))
	assert.Empty(t, stripTags("<br/>"))
}
