package gallery

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docgallery/internal/markdown"
)

//go:embed templates/*.md.tmpl
var builtinTemplates embed.FS

// Template names. An override directory may provide any of them as
// "<name>.md.tmpl".
const (
	ExamplePageTemplate = "examplepage"
	TagPageTemplate     = "tagpage"
	LandingPageTemplate = "landingpage"
)

var templateNames = map[PageKind]string{
	KindExample: ExamplePageTemplate,
	KindTag:     TagPageTemplate,
	KindLanding: LandingPageTemplate,
}

// TemplateOptions configures a Renderer.
type TemplateOptions struct {
	// Fs and Dir locate override templates. Dir may be empty.
	Fs  afero.Fs
	Dir string
	// Underline is the single character drawn under page titles.
	Underline string
	// Suffix is appended to document references, e.g. ".md".
	Suffix string
}

// Renderer renders gallery pages from text templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer loads the built-in templates, replacing any that have an
// override in opts.Dir.
func NewRenderer(opts TemplateOptions) (*Renderer, error) {
	if utf8.RuneCountInString(opts.Underline) != 1 {
		return nil, fmt.Errorf("the underline must be a single character, got %q", opts.Underline)
	}
	funcs := templateFuncs(opts.Underline, opts.Suffix)

	r := &Renderer{templates: make(map[string]*template.Template, len(templateNames))}
	for _, name := range templateNames {
		text, err := loadTemplate(opts.Fs, opts.Dir, name)
		if err != nil {
			return nil, err
		}
		t, err := template.New(name).Option("missingkey=error").Funcs(funcs).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

func loadTemplate(fsys afero.Fs, dir, name string) (string, error) {
	file := name + ".md.tmpl"
	if fsys != nil && dir != "" {
		b, err := afero.ReadFile(fsys, filepath.Join(dir, file))
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read template %s: %w", name, err)
		}
	}
	b, err := builtinTemplates.ReadFile(path.Join("templates", file))
	if err != nil {
		return "", fmt.Errorf("built-in template %s: %w", name, err)
	}
	return string(b), nil
}

// Render renders page with the template for its kind.
func (r *Renderer) Render(page Page) ([]byte, error) {
	name, ok := templateNames[page.Kind()]
	if !ok {
		return nil, fmt.Errorf("no template for page kind %q", page.Kind())
	}
	var buf bytes.Buffer
	if err := r.templates[name].Execute(&buf, map[string]any{"Page": page}); err != nil {
		return nil, fmt.Errorf("render %s: %w", page.DocName(), err)
	}
	return buf.Bytes(), nil
}

func templateFuncs(underline, suffix string) template.FuncMap {
	return template.FuncMap{
		"h1underline": func(text string) (string, error) {
			return Underline(text, underline)
		},
		"escape": markdown.Escape,
		"relref": func(from, to string) string {
			return markdown.RelPath(path.Dir(from), to) + suffix
		},
		"tocref": func(from, to string) string {
			return markdown.RelPath(path.Dir(from), to)
		},
		"join": strings.Join,
	}
}

// Underline returns text followed by a line of char as long as text.
func Underline(text, char string) (string, error) {
	if utf8.RuneCountInString(char) != 1 {
		return "", fmt.Errorf("the underline must be a single character, got %q", char)
	}
	if strings.ContainsAny(text, "\r\n") {
		return "", errors.New("can only underline single lines")
	}
	return text + "\n" + strings.Repeat(char, utf8.RuneCountInString(text)), nil
}
