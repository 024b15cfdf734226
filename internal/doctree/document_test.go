package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() (*Document, *Container, *Markdown) {
	inner := &Markdown{Source: "inner", Line: 4}
	box := &Container{ID: "box", Classes: []string{"a"}, Children: []Node{inner}}
	doc := &Document{
		Name:     "index",
		Children: []Node{&Markdown{Source: "first", Line: 1}, box, &Target{ID: "end"}},
	}
	return doc, box, inner
}

func TestWalk_VisitsDepthFirstInOrder(t *testing.T) {
	doc, _, _ := sampleDoc()
	var kinds []Kind
	require.NoError(t, doc.Walk(func(n Node, _ Parent) error {
		kinds = append(kinds, n.Kind())
		return nil
	}))
	assert.Equal(t, []Kind{KindMarkdown, KindContainer, KindMarkdown, KindTarget}, kinds)
}

func TestWalk_SkipChildren(t *testing.T) {
	doc, _, _ := sampleDoc()
	count := 0
	require.NoError(t, doc.Walk(func(n Node, _ Parent) error {
		count++
		if n.Kind() == KindContainer {
			return SkipChildren
		}
		return nil
	}))
	assert.Equal(t, 3, count)
}

func TestReplace_NestedNode(t *testing.T) {
	doc, box, inner := sampleDoc()
	repl := &Text{Message: "gone", Level: LevelWarning}

	assert.True(t, doc.Replace(inner, repl))
	assert.Equal(t, []Node{repl}, box.Children)
	assert.False(t, doc.Replace(inner, repl), "node already replaced")
}

func TestInsertBeforeAndAfter(t *testing.T) {
	doc, box, _ := sampleDoc()
	before := &Target{ID: "before"}
	after := &Target{ID: "after"}

	require.True(t, doc.InsertBefore(box, before))
	require.True(t, doc.InsertAfter(box, after))

	ids := []string{}
	for _, n := range doc.Children {
		if tgt, ok := n.(*Target); ok {
			ids = append(ids, tgt.ID)
		}
	}
	assert.Equal(t, []string{"before", "after", "end"}, ids)
	assert.Same(t, box, doc.Children[2])
}

func TestFind_ByType(t *testing.T) {
	doc, box, _ := sampleDoc()
	found := Find(doc, func(c *Container) bool { return c.HasClass("a") })
	require.Len(t, found, 1)
	assert.Same(t, box, found[0])
}

func TestClone_IsDeep(t *testing.T) {
	doc, box, _ := sampleDoc()
	copied := Clone(doc.Children)

	copiedBox := copied[1].(*Container)
	copiedBox.Classes[0] = "changed"
	copiedBox.Children[0].(*Markdown).Source = "changed"

	assert.Equal(t, "a", box.Classes[0])
	assert.Equal(t, "inner", box.Children[0].(*Markdown).Source)
}
