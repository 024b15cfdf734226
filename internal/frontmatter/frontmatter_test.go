package frontmatter

import (
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	raw, body, had, err := Split(input)
	require.NoError(t, err)
	assert.False(t, had)
	assert.Empty(t, raw)
	assert.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	raw, body, had, err := Split([]byte("---\nkey: value\n---\n# Title\n"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, []byte("key: value\n"), raw)
	assert.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_CRLF(t *testing.T) {
	raw, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, []byte("key: value\r\n"), raw)
	assert.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	assert.False(t, had)
}

func TestParse_ComputesBodyLine(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Guide\ntags: [a, b]\n---\nBody\n"))
	require.NoError(t, err)
	assert.Equal(t, "Guide", doc.Fields["title"])
	assert.Equal(t, 5, doc.BodyLine)
	assert.Equal(t, "Body\n", string(doc.Body))

	plain, err := Parse([]byte("Body\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, plain.BodyLine)
	assert.Empty(t, plain.Fields)
}

func TestCompose_SortsKeys(t *testing.T) {
	out, err := Compose(map[string]any{"title": "Alpha", "gallery": "example", "tags": []string{"x", "y"}}, []byte("Body\n"))
	require.NoError(t, err)
	assert.Equal(t, "---\ngallery: example\ntags:\n  - x\n  - y\ntitle: Alpha\n---\nBody\n", string(out))
}

func TestStamp_AddsStableFingerprint(t *testing.T) {
	fields := map[string]any{"title": "Alpha"}
	body := []byte("Alpha\n=====\n")

	first, err := Stamp(fields, body)
	require.NoError(t, err)
	second, err := Stamp(fields, body)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	doc, err := Parse(first)
	require.NoError(t, err)
	fp, ok := doc.Fields[mdfp.FingerprintField].(string)
	require.True(t, ok)
	assert.NotEmpty(t, fp)

	// the fingerprint is computed without the fingerprint field itself
	again, err := Fingerprint(doc.Fields, doc.Body)
	require.NoError(t, err)
	assert.Equal(t, fp, again)
}
