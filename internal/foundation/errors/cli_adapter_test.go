package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "gallery", err: GalleryError("duplicate").Build(), expected: 11},
		{name: "directive", err: DirectiveError("missing content").Build(), expected: 11},
		{name: "internal", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified", err: errors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError_HidesInternalDetailsUnlessVerbose(t *testing.T) {
	err := InternalError("nil registry").Build()

	quiet := NewCLIErrorAdapter(false, nil)
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(err))

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Contains(t, verbose.FormatError(err), "nil registry")

	assert.Contains(t, quiet.FormatError(GalleryError("duplicate").Build()), "duplicate")
}

func TestCLIErrorAdapter_HandleError_ExitsWithMappedCode(t *testing.T) {
	var out bytes.Buffer
	var logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("gallery.heading_underline must be one character").Build())

	assert.Equal(t, 7, code)
	assert.Contains(t, out.String(), "heading_underline")
	assert.Contains(t, logs.String(), "category=config")
}
