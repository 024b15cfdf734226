package gallery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(title, doc string, line int, tags ...string) *Entry {
	return &Entry{Descriptor: NewDescriptor(title, doc, line, tags)}
}

func TestRegistry_RegisterSameLocationIsIdempotent(t *testing.T) {
	reg := NewRegistry()

	added, err := reg.Register(entry("Alpha", "guide/intro", 3))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = reg.Register(entry("Alpha", "guide/intro", 3))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_DuplicateNamesBothTitles(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(entry("Alpha", "guide/intro", 3))
	require.NoError(t, err)

	_, err = reg.Register(entry("alpha!", "guide/other", 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateExample))

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "alpha", dup.ID)
	assert.Contains(t, err.Error(), `"Alpha"`)
	assert.Contains(t, err.Error(), `"alpha!"`)
	assert.Contains(t, err.Error(), "guide/intro:3")
	assert.Contains(t, err.Error(), "guide/other:10")
}

func TestRegistry_EmptyIDRejected(t *testing.T) {
	_, err := NewRegistry().Register(entry("!!!", "index", 1))
	require.Error(t, err)
}

func TestRegistry_EntriesSortedByTitle(t *testing.T) {
	reg := NewRegistry()
	for _, e := range []*Entry{entry("Gamma", "c", 1), entry("Alpha", "a", 1), entry("Beta", "b", 1)} {
		_, err := reg.Register(e)
		require.NoError(t, err)
	}

	var titles []string
	for _, e := range reg.Entries() {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, titles)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, reg.IDs())
}

func TestRegistry_Purge(t *testing.T) {
	reg := NewRegistry()
	for _, e := range []*Entry{entry("Alpha", "a", 1), entry("Beta", "a", 9), entry("Gamma", "b", 1)} {
		_, err := reg.Register(e)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, reg.Purge("a"))
	assert.Equal(t, 1, reg.Len())
	_, ok := reg.Get("gamma")
	assert.True(t, ok)
	assert.Zero(t, reg.Purge("missing"))
}

func TestRegistry_MergeDisjointAndIdempotent(t *testing.T) {
	w1, w2 := NewRegistry(), NewRegistry()
	_, err := w1.Register(entry("Alpha", "a", 1))
	require.NoError(t, err)
	_, err = w2.Register(entry("Beta", "b", 1))
	require.NoError(t, err)
	_, err = w2.Register(entry("Alpha", "a", 1))
	require.NoError(t, err)

	master, err := Reduce(w1, w2)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, master.IDs())
}

func TestRegistry_MergeConflictMatchesSingleRegistration(t *testing.T) {
	w1, w2 := NewRegistry(), NewRegistry()
	_, err := w1.Register(entry("Alpha", "a", 1))
	require.NoError(t, err)
	_, err = w2.Register(entry("Alpha", "b", 5))
	require.NoError(t, err)

	_, err = Reduce(w1, w2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateExample)
}

func TestRegistry_MergeNil(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Merge(nil))
	assert.Zero(t, reg.Len())
}

func TestDescriptor(t *testing.T) {
	d := NewDescriptor("Title of an éxample", "guide/intro", 4, []string{" tables", "fitting", "", "tables", "!!"})

	assert.Equal(t, "title-of-an-example", d.ID)
	assert.Equal(t, "example-src-title-of-an-example", d.SourceRefID())
	assert.Equal(t, []string{"fitting", "tables"}, d.Tags)
	assert.True(t, d.HasTag("fitting"))
	assert.False(t, d.HasTag("plots"))
	assert.Equal(t, "guide/intro:4", d.Location().String())
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, ParseTags(" b c ,a,, a "))
	assert.Empty(t, ParseTags(""))
	assert.Empty(t, ParseTags(" , "))
}
