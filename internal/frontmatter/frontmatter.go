// Package frontmatter reads and writes `---` delimited YAML frontmatter of
// source documents.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a source file split into frontmatter fields and body.
type Document struct {
	Fields map[string]any
	Body   []byte
	// BodyLine is the 1-based source line on which Body starts.
	BodyLine int
	// Had reports whether the source carried a frontmatter block.
	Had bool
}

// Split separates raw YAML frontmatter from the body.
//
// If the content does not start with a delimiter line, had is false and
// body is the full input. Both LF and CRLF line endings are accepted.
func Split(content []byte) (raw, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}
	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// a closing delimiter on the final line without a newline
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-len("---")], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes the frontmatter fields.
func Parse(content []byte) (*Document, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := yaml.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		if fields == nil {
			fields = map[string]any{}
		}
	}
	consumed := len(content) - len(body)
	return &Document{
		Fields:   fields,
		Body:     body,
		BodyLine: bytes.Count(content[:consumed], []byte("\n")) + 1,
		Had:      had,
	}, nil
}

// Compose writes fields as a frontmatter block followed by body. Empty
// fields produce the body alone.
func Compose(fields map[string]any, body []byte) ([]byte, error) {
	if len(fields) == 0 {
		return body, nil
	}
	raw, err := SerializeYAML(fields)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(raw)+len(body)+8)
	out = append(out, "---\n"...)
	out = append(out, raw...)
	out = append(out, "---\n"...)
	return append(out, body...), nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
