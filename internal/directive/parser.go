package directive

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docgallery/internal/doctree"
	"git.home.luguber.info/inful/docgallery/internal/logfields"
)

var (
	markerPattern = regexp.MustCompile(`^\.\. ([A-Za-z0-9][A-Za-z0-9_-]*)::(?:[ \t]+(.*?))?[ \t]*$`)
	optionPattern = regexp.MustCompile(`^[ \t]+:([A-Za-z0-9_-]+):(?:[ \t]+(.*?))?[ \t]*$`)
)

// Parser splits source lines into Markdown runs and directive output.
type Parser struct {
	directives Set
	logger     *slog.Logger
}

// NewParser creates a parser dispatching to directives.
func NewParser(directives Set, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{directives: directives, logger: logger}
}

// Parse turns lines into nodes. firstLine is the 1-based source line of lines[0].
func (p *Parser) Parse(docName string, lines []string, firstLine int) ([]doctree.Node, error) {
	var (
		nodes   []doctree.Node
		pending []string
		start   int
		fence   Fence
	)
	flush := func() {
		if n := markdownNode(pending, firstLine+start); n != nil {
			nodes = append(nodes, n)
		}
		pending = nil
	}

	add := func(i int) {
		if len(pending) == 0 {
			start = i
		}
		pending = append(pending, lines[i])
	}

	for i := 0; i < len(lines); {
		line := lines[i]
		if fence.open {
			fence.Toggle(line)
			add(i)
			i++
			continue
		}
		if fence.Toggle(line) {
			add(i)
			i++
			continue
		}
		m := markerPattern.FindStringSubmatch(line)
		if m == nil {
			add(i)
			i++
			continue
		}
		flush()
		end := blockEnd(lines, i+1)
		out, err := p.runBlock(docName, m[1], m[2], lines[i+1:end], firstLine+i)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, out...)
		i = end
	}
	flush()
	return nodes, nil
}

func (p *Parser) runBlock(docName, name, arg string, block []string, line int) ([]doctree.Node, error) {
	d, ok := p.directives[name]
	if !ok {
		p.logger.Warn("Unknown directive type", logfields.Doc(docName), logfields.Line(line), logfields.Directive(name))
		return []doctree.Node{&doctree.Text{
			Message: fmt.Sprintf("Unknown directive type %q.", name),
			Level:   doctree.LevelWarning,
		}}, nil
	}

	ctx := &Context{
		Name:    name,
		DocName: docName,
		Line:    line,
		Options: map[string]string{},
		parser:  p,
	}
	fail := func(err error) ([]doctree.Node, error) {
		return nil, &Error{DocName: docName, Line: line, Directive: name, Err: err}
	}

	spec := d.Spec()
	args, err := splitArguments(spec, arg)
	if err != nil {
		return fail(err)
	}
	ctx.Arguments = args

	j := 0
	for ; j < len(block); j++ {
		om := optionPattern.FindStringSubmatch(block[j])
		if om == nil {
			break
		}
		if !slices.Contains(spec.Options, om[1]) {
			return fail(fmt.Errorf("unknown option: %q", om[1]))
		}
		if _, dup := ctx.Options[om[1]]; dup {
			return fail(fmt.Errorf("duplicate option: %q", om[1]))
		}
		ctx.Options[om[1]] = om[2]
	}
	for j < len(block) && strings.TrimSpace(block[j]) == "" {
		j++
	}
	ctx.ContentLine = line + 1 + j
	ctx.Content = dedent(trimTrailingBlank(block[j:]))
	if len(ctx.Content) > 0 && !spec.HasContent {
		return fail(errors.New("no content permitted"))
	}

	out, err := d.Run(ctx)
	if err != nil {
		var located *Error
		if errors.As(err, &located) {
			return nil, err
		}
		return fail(err)
	}
	return out, nil
}

func splitArguments(spec Spec, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	var args []string
	maxArgs := spec.RequiredArguments + spec.OptionalArguments
	switch {
	case raw == "":
	case spec.FinalArgumentWhitespace && maxArgs > 0:
		args = splitFinal(raw, maxArgs)
	default:
		args = strings.Fields(raw)
	}
	if len(args) < spec.RequiredArguments {
		return nil, fmt.Errorf("%d argument(s) required, %d supplied", spec.RequiredArguments, len(args))
	}
	if len(args) > maxArgs {
		return nil, fmt.Errorf("maximum %d argument(s) allowed, %d supplied", maxArgs, len(args))
	}
	return args, nil
}

// blockEnd returns the index of the first non-blank, unindented line at or after from.
func blockEnd(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		l := lines[i]
		if strings.TrimSpace(l) == "" {
			continue
		}
		if l[0] != ' ' && l[0] != '\t' {
			return i
		}
	}
	return len(lines)
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

func dedent(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if len(l) >= indent {
			out[i] = l[indent:]
		} else {
			out[i] = strings.TrimLeft(l, " \t")
		}
	}
	return out
}

func markdownNode(lines []string, line int) doctree.Node {
	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	lines = trimTrailingBlank(lines[first:])
	if len(lines) == 0 {
		return nil
	}
	return &doctree.Markdown{Source: strings.Join(lines, "\n"), Line: line + first}
}

// splitFinal splits raw into at most n whitespace-separated fields; the last
// field keeps its inner whitespace.
func splitFinal(raw string, n int) []string {
	var out []string
	rest := raw
	for len(out) < n-1 {
		rest = strings.TrimLeft(rest, " \t")
		idx := strings.IndexAny(rest, " \t")
		if idx < 0 {
			break
		}
		out = append(out, rest[:idx])
		rest = rest[idx:]
	}
	if rest = strings.TrimSpace(rest); rest != "" {
		out = append(out, rest)
	}
	return out
}

// Fence tracks fenced code blocks so directive markers inside them are
// left alone. The zero value is outside any fence.
type Fence struct {
	open   bool
	marker byte
	width  int
}

// Open reports whether the last line seen left a fence open.
func (f *Fence) Open() bool { return f.open }

// Toggle updates the state for line and reports whether line is a fence line.
func (f *Fence) Toggle(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return false
	}
	if !f.open {
		f.open, f.marker, f.width = true, c, n
		return true
	}
	if c == f.marker && n >= f.width && strings.TrimSpace(trimmed[n:]) == "" {
		f.open = false
		return true
	}
	return false
}
