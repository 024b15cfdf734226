package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHelperKeyNames verifies helper key stability; key drift breaks log queries.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name string
		key  string
		attr slog.Attr
	}{
		{"BuildID", KeyBuildID, BuildID("b1")},
		{"Stage", KeyStage, Stage("read")},
		{"Doc", KeyDoc, Doc("guide/intro")},
		{"Directive", KeyDirective, Directive("example")},
		{"ExampleID", KeyExampleID, ExampleID("alpha")},
		{"Title", KeyTitle, Title("Alpha")},
		{"Tag", KeyTag, Tag("x")},
		{"Page", KeyPage, Page("examples/alpha.html")},
		{"Path", KeyPath, Path("/tmp/x")},
		{"Plugin", KeyPlugin, Plugin("gallery")},
		{"Format", KeyFormat, Format("html")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.key, tc.attr.Key)
			assert.Equal(t, slog.KindString, tc.attr.Value.Kind())
		})
	}
}

func TestNumericHelpers(t *testing.T) {
	assert.Equal(t, int64(3), Worker(3).Value.Int64())
	assert.Equal(t, int64(12), Line(12).Value.Int64())
	assert.Equal(t, int64(5), Count(5).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
}

func TestError(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
