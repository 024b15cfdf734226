// Package directive parses reStructuredText-style directive blocks embedded
// in Markdown source and dispatches them to registered handlers.
//
// A directive block looks like:
//
//	.. name:: argument text
//	   :option: value
//
//	   Indented content, parsed again as nested source.
//
// The block ends at the first non-blank line without indentation.
package directive

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docgallery/internal/doctree"
)

// Spec declares what a directive accepts. The parser validates input against
// it before Run is called.
type Spec struct {
	RequiredArguments int
	OptionalArguments int
	// FinalArgumentWhitespace keeps the whole argument line as a single
	// argument when only one is expected.
	FinalArgumentWhitespace bool
	HasContent              bool
	Options                 []string
}

// Directive is a named block handler.
type Directive interface {
	Spec() Spec
	Run(ctx *Context) ([]doctree.Node, error)
}

// Func adapts a function and a Spec to the Directive interface.
type Func struct {
	S  Spec
	Fn func(ctx *Context) ([]doctree.Node, error)
}

func (f Func) Spec() Spec                               { return f.S }
func (f Func) Run(ctx *Context) ([]doctree.Node, error) { return f.Fn(ctx) }

// Set maps directive names to handlers.
type Set map[string]Directive

// Context is handed to a directive when its block is run.
type Context struct {
	Name      string
	Arguments []string
	Options   map[string]string
	Content   []string
	DocName   string
	// Line is the 1-based line of the directive marker in the source document.
	Line int
	// ContentLine is the 1-based line of the first content line.
	ContentLine int

	parser *Parser
}

// Argument returns the first argument or "".
func (c *Context) Argument() string {
	if len(c.Arguments) == 0 {
		return ""
	}
	return c.Arguments[0]
}

// Option returns the option value and whether it was given.
func (c *Context) Option(name string) (string, bool) {
	v, ok := c.Options[name]
	return v, ok
}

// HasContent reports whether the block has at least one non-blank content line.
func (c *Context) HasContent() bool {
	return slices.ContainsFunc(c.Content, func(l string) bool { return strings.TrimSpace(l) != "" })
}

// NestedParse parses lines as nested source with the same directive set.
func (c *Context) NestedParse(lines []string, firstLine int) ([]doctree.Node, error) {
	return c.parser.Parse(c.DocName, lines, firstLine)
}

// ParseContent parses the directive's own content.
func (c *Context) ParseContent() ([]doctree.Node, error) {
	return c.NestedParse(c.Content, c.ContentLine)
}

// Logger returns the parser's logger.
func (c *Context) Logger() *slog.Logger {
	return c.parser.logger
}

// Error locates a failed directive in its source document.
type Error struct {
	DocName   string
	Line      int
	Directive string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: directive %q: %v", e.DocName, e.Line, e.Directive, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
