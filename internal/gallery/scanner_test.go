package gallery

import (
	"errors"
	"slices"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scanSource = `# Guide

.. example:: Title of an éxample
   :tags: fitting, tables , ,fitting

   Content.

` + "```rst" + `
.. example:: Not an example
` + "```" + `

.. example:: Beta

   More content.

- list
  .. example:: Nested
     :tags: inner

     Nested content.
`

func TestScan(t *testing.T) {
	got := slices.Collect(Scan("guide/intro", scanSource))
	require.Len(t, got, 3)

	assert.Equal(t, "Title of an éxample", got[0].Title)
	assert.Equal(t, "title-of-an-example", got[0].ID)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, []string{"fitting", "tables"}, got[0].Tags)
	assert.Equal(t, "guide/intro", got[0].DocName)

	assert.Equal(t, "Beta", got[1].Title)
	assert.Equal(t, 12, got[1].Line)
	assert.Empty(t, got[1].Tags)

	assert.Equal(t, "Nested", got[2].Title)
	assert.Equal(t, []string{"inner"}, got[2].Tags)
}

func TestScan_Restartable(t *testing.T) {
	seq := Scan("doc", ".. example:: One\n\n   x\n")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 1)
}

func TestScan_StopsEarly(t *testing.T) {
	n := 0
	for range Scan("doc", ".. example:: One\n\n   x\n\n.. example:: Two\n\n   y\n") {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestScan_CRLF(t *testing.T) {
	got := slices.Collect(Scan("doc", ".. example:: One\r\n   :tags: a\r\n\r\n   x\r\n"))
	require.Len(t, got, 1)
	assert.Equal(t, "One", got[0].Title)
	assert.Equal(t, []string{"a"}, got[0].Tags)
}

func TestScanDocuments_SkipsGalleryDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "docs/index.md", []byte(".. example:: Alpha\n\n   a\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "docs/examples/alpha.md", []byte(".. example:: Stale\n\n   s\n"), 0o644))
	read := FileReader(fs, func(doc string) string { return "docs/" + doc + ".md" })

	var titles []string
	for d, err := range ScanDocuments([]string{"examples/alpha", "index"}, "examples", read) {
		require.NoError(t, err)
		titles = append(titles, d.Title)
	}
	assert.Equal(t, []string{"Alpha"}, titles)
}

func TestScanDocuments_ReadError(t *testing.T) {
	boom := errors.New("boom")
	read := func(string) (string, error) { return "", boom }

	var got error
	for _, err := range ScanDocuments([]string{"index"}, "examples", read) {
		got = err
	}
	assert.ErrorIs(t, got, boom)
}
