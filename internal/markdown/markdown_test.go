package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_RewritesDocumentLinks(t *testing.T) {
	r := NewRenderer(Options{SourceSuffix: ".md", OutputSuffix: ".html"})
	out, err := r.Render([]byte("See [usage](guide/usage.md#install) and ![fig](img/a.png)."))
	require.NoError(t, err)
	assert.Contains(t, string(out), `href="guide/usage.html#install"`)
	assert.Contains(t, string(out), `src="img/a.png"`)
}

func TestRender_ResolvesIntersphinx(t *testing.T) {
	r := NewRenderer(Options{Intersphinx: map[string]string{"python": "https://docs.python.org/3/"}})
	out, err := r.Render([]byte("[os](python:library/os.html)"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `href="https://docs.python.org/3/library/os.html"`)
}

func TestRender_HeadingIDsAndTables(t *testing.T) {
	r := NewRenderer(Options{})
	out, err := r.Render([]byte("# Hello World\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `<h1 id="hello-world">`)
	assert.Contains(t, string(out), "<table>")
}

func TestRewriteDestination(t *testing.T) {
	opts := Options{
		SourceSuffix: ".md",
		OutputSuffix: ".html",
		Intersphinx:  map[string]string{"numpy": "https://numpy.org/doc/stable"},
	}
	tests := map[string]string{
		"intro.md":                    "intro.html",
		"../api/index.md?x=1#top":     "../api/index.html?x=1#top",
		"https://example.org/page.md": "https://example.org/page.md",
		"/rooted.md":                  "/rooted.md",
		"#section":                    "#section",
		"mailto:someone@example.org":  "mailto:someone@example.org",
		"numpy:reference/index.html":  "https://numpy.org/doc/stable/reference/index.html",
		"unknown:thing":               "unknown:thing",
		"image.png":                   "image.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, opts.RewriteDestination(in), in)
	}
}

func TestExtractLinks(t *testing.T) {
	links := ExtractLinks([]byte("[a](one.md) ![b](two.png) <https://x.org>\n\n[ref]: three.md\n"))
	dests := make([]string, 0, len(links))
	for _, l := range links {
		dests = append(dests, l.Destination)
	}
	assert.Equal(t, []string{"one.md", "two.png", "https://x.org", "three.md"}, dests)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `C\+\+ \*fast\* \[1\]`, Escape("C++ *fast* [1]"))
}

func TestRelPath(t *testing.T) {
	assert.Equal(t, ".", RelPath("a", "a"))
	assert.Equal(t, "b", RelPath(".", "b"))
	assert.Equal(t, "../../c", RelPath("a/b", "c"))
	assert.Equal(t, "tags/x", RelPath("examples", "examples/tags/x"))
	assert.Equal(t, "../guide/intro", RelPath("examples", "guide/intro"))
}

func TestRootPrefix(t *testing.T) {
	assert.Equal(t, "", RootPrefix("index.html"))
	assert.Equal(t, "../", RootPrefix("examples/alpha.html"))
	assert.Equal(t, "../../", RootPrefix("examples/tags/x.html"))
}
