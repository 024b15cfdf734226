package config

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	derrors "git.home.luguber.info/inful/docgallery/internal/foundation/errors"
)

// ValidateConfig validates the complete configuration.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	for _, check := range []func() error{
		cv.validateSource,
		cv.validateOutput,
		cv.validateBuild,
		cv.validateGallery,
		cv.validateIntersphinx,
		cv.validateProject,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, msg string) error {
	return derrors.ValidationError(fmt.Sprintf("%s: %s", field, msg)).WithContext("field", field).Build()
}

func (cv *configurationValidator) validateSource() error {
	s := cv.config.Source
	if strings.TrimSpace(s.Dir) == "" {
		return invalid("source.dir", "must not be empty")
	}
	for _, pattern := range s.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return invalid("source.exclude", fmt.Sprintf("bad pattern %q: %v", pattern, err))
		}
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	o := cv.config.Output
	switch o.Format {
	case FormatHTML, FormatText, FormatDummy:
	default:
		return invalid("output.format", fmt.Sprintf("unsupported format %q (want html, text or dummy)", o.Format))
	}
	if filepath.Clean(o.Dir) == filepath.Clean(cv.config.Source.Dir) {
		return invalid("output.dir", "must differ from source.dir")
	}
	return nil
}

func (cv *configurationValidator) validateBuild() error {
	if cv.config.Build.Workers < 1 {
		return invalid("build.workers", "must be at least 1")
	}
	return nil
}

func (cv *configurationValidator) validateGallery() error {
	g := cv.config.Gallery
	if utf8.RuneCountInString(g.HeadingUnderline) != 1 {
		return invalid("gallery.heading_underline", fmt.Sprintf("the underline must be a single character, got %q", g.HeadingUnderline))
	}
	r, _ := utf8.DecodeRuneInString(g.HeadingUnderline)
	if unicode.IsSpace(r) {
		return invalid("gallery.heading_underline", "the underline must not be whitespace")
	}
	if path.IsAbs(g.Dir) || filepath.IsAbs(g.Dir) {
		return invalid("gallery.dir", "must be relative to source.dir")
	}
	if clean := path.Clean(g.Dir); clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return invalid("gallery.dir", fmt.Sprintf("must be a subdirectory of source.dir, got %q", g.Dir))
	}
	return nil
}

func (cv *configurationValidator) validateIntersphinx() error {
	for name, base := range cv.config.Intersphinx.Mapping {
		u, err := url.Parse(base)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("intersphinx.mapping."+name, fmt.Sprintf("base URL must be absolute http(s), got %q", base))
		}
	}
	return nil
}

func (cv *configurationValidator) validateProject() error {
	var walk func(prefix string, links []NavLink) error
	walk = func(prefix string, links []NavLink) error {
		for i, l := range links {
			field := fmt.Sprintf("%s[%d]", prefix, i)
			if strings.TrimSpace(l.Name) == "" {
				return invalid(field, "name must not be empty")
			}
			if l.URL == "" && len(l.Children) == 0 {
				return invalid(field, "needs a url or children")
			}
			if err := walk(field+".children", l.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk("project.navbar", cv.config.Project.Navbar)
}
