package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Title of an example", "title-of-an-example"},
		{"Title of an éxample", "title-of-an-example"},
		{"café", "cafe"},
		{"Ångström units", "angstrom-units"},
		{"  Leading and trailing!  ", "leading-and-trailing"},
		{"Fitting a 2D model -- quickly", "fitting-a-2d-model-quickly"},
		{"C++ & Fortran", "c-fortran"},
		{"ﬁle ligature", "file-ligature"},
		{"Über-Straße", "uber-strae"},
		{"日本語 docs", "docs"},
		{"a ß b", "a-b"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMake_Idempotent(t *testing.T) {
	titles := []string{"Alpha", "Title of an éxample", "a  b--c", "Über-Straße 9", "日本語 docs"}
	for _, title := range titles {
		once := Make(title)
		assert.Equal(t, once, Make(once), "slug of %q is not stable", title)
	}
}

func TestMake_CollisionsAreAllowed(t *testing.T) {
	assert.Equal(t, Make("Alpha!"), Make("alpha"))
}
