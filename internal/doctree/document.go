package doctree

import "errors"

// Document is the root of a parsed source document.
type Document struct {
	Name     string // docname: slash-separated path without suffix
	Title    string
	Meta     map[string]any // frontmatter
	Children []Node
}

func (d *Document) ChildNodes() []Node            { return d.Children }
func (d *Document) SetChildNodes(children []Node) { d.Children = children }

// SkipChildren returned from a WalkFunc skips the children of the current node.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node with its direct parent.
type WalkFunc func(n Node, parent Parent) error

// Tree is the capability set plugins use to inspect and edit a document.
type Tree interface {
	Walk(fn WalkFunc) error
	Replace(old Node, with ...Node) bool
	InsertBefore(anchor Node, nodes ...Node) bool
	InsertAfter(anchor Node, nodes ...Node) bool
}

var _ Tree = (*Document)(nil)

// Walk visits nodes depth-first in document order.
func (d *Document) Walk(fn WalkFunc) error {
	return walk(d, fn)
}

func walk(p Parent, fn WalkFunc) error {
	// children may be replaced during the walk; iterate a snapshot
	children := append([]Node(nil), p.ChildNodes()...)
	for _, child := range children {
		err := fn(child, p)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if cp, ok := child.(Parent); ok {
			if err := walk(cp, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Replace substitutes old with the given nodes wherever it occurs first.
func (d *Document) Replace(old Node, with ...Node) bool {
	return edit(d, old, func(children []Node, i int) []Node {
		out := make([]Node, 0, len(children)-1+len(with))
		out = append(out, children[:i]...)
		out = append(out, with...)
		return append(out, children[i+1:]...)
	})
}

// Append adds nodes at the end of the document.
func (d *Document) Append(nodes ...Node) {
	d.Children = append(d.Children, nodes...)
}

// InsertBefore inserts nodes directly before anchor.
func (d *Document) InsertBefore(anchor Node, nodes ...Node) bool {
	return edit(d, anchor, func(children []Node, i int) []Node {
		return insertAt(children, i, nodes)
	})
}

// InsertAfter inserts nodes directly after anchor.
func (d *Document) InsertAfter(anchor Node, nodes ...Node) bool {
	return edit(d, anchor, func(children []Node, i int) []Node {
		return insertAt(children, i+1, nodes)
	})
}

func insertAt(children []Node, i int, nodes []Node) []Node {
	out := make([]Node, 0, len(children)+len(nodes))
	out = append(out, children[:i]...)
	out = append(out, nodes...)
	return append(out, children[i:]...)
}

func edit(p Parent, target Node, apply func(children []Node, i int) []Node) bool {
	children := p.ChildNodes()
	for i, child := range children {
		if child == target {
			p.SetChildNodes(apply(children, i))
			return true
		}
		if cp, ok := child.(Parent); ok && edit(cp, target, apply) {
			return true
		}
	}
	return false
}

// Find returns every node for which match is true, in document order.
func Find[T Node](t Tree, match func(T) bool) []T {
	var found []T
	_ = t.Walk(func(n Node, _ Parent) error {
		if typed, ok := n.(T); ok && (match == nil || match(typed)) {
			found = append(found, typed)
		}
		return nil
	})
	return found
}

// Clone returns a deep copy of nodes.
func Clone(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n Node) Node {
	switch v := n.(type) {
	case *Markdown:
		c := *v
		return &c
	case *Target:
		c := *v
		return &c
	case *Container:
		return &Container{
			ID:       v.ID,
			Classes:  append([]string(nil), v.Classes...),
			Children: Clone(v.Children),
		}
	case *Text:
		c := *v
		return &c
	case *Raw:
		c := *v
		return &c
	case *TocTree:
		c := *v
		c.Entries = append([]TocEntry(nil), v.Entries...)
		return &c
	case *Pending:
		c := *v
		return &c
	default:
		return n
	}
}
