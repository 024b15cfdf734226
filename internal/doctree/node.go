// Package doctree defines the document tree produced by parsing a source
// document and consumed by plugins and writers.
package doctree

import "slices"

// Kind identifies a node type.
type Kind int

const (
	KindMarkdown Kind = iota
	KindTarget
	KindContainer
	KindText
	KindRaw
	KindTocTree
	KindPending
)

// Node is an element of a document tree. Nodes are compared by identity.
type Node interface {
	Kind() Kind
}

// Parent is a node (or document) that owns an ordered list of children.
type Parent interface {
	ChildNodes() []Node
	SetChildNodes(children []Node)
}

// Markdown is a run of Markdown source rendered as-is by the writers.
type Markdown struct {
	Source string
	Line   int
}

func (*Markdown) Kind() Kind { return KindMarkdown }

// Target is an empty anchor that links can point at.
type Target struct {
	ID string
}

func (*Target) Kind() Kind { return KindTarget }

// Container groups children in a block element with an ID and classes.
type Container struct {
	ID       string
	Classes  []string
	Children []Node
}

func (*Container) Kind() Kind { return KindContainer }

func (c *Container) ChildNodes() []Node            { return c.Children }
func (c *Container) SetChildNodes(children []Node) { c.Children = children }

// HasClass reports whether the container carries class.
func (c *Container) HasClass(class string) bool {
	return slices.Contains(c.Classes, class)
}

// Level grades a Text node.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Text is plain text, usually a visible system message.
type Text struct {
	Message string
	Level   Level
}

func (*Text) Kind() Kind { return KindText }

// Raw carries pre-rendered output for a single format ("html", "text").
type Raw struct {
	Format  string
	Content string
}

func (*Raw) Kind() Kind { return KindRaw }

// TocEntry is one document reference in a TocTree.
type TocEntry struct {
	Title   string // empty means use the target document title
	DocName string
}

// TocTree lists documents for navigation.
type TocTree struct {
	Caption string
	Hidden  bool
	Entries []TocEntry
}

func (*TocTree) Kind() Kind { return KindTocTree }

// Pending is a placeholder resolved after all documents were read.
type Pending struct {
	Name string // resolver name, e.g. the directive that emitted it
	Ref  string
	Line int
}

func (*Pending) Kind() Kind { return KindPending }
