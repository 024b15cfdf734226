package config

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
)

// Snapshot computes a stable hash of the fields that affect build output.
// Map and exclude-list ordering does not change the hash.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }

	w("project.title", c.Project.Title)
	w("project.theme", c.Project.Theme)
	w("project.last_updated_format", c.Project.LastUpdatedFormat)
	w("source.dir", c.Source.Dir)
	w("source.suffix", c.Source.Suffix)
	w("source.exclude", strings.Join(slices.Sorted(slices.Values(c.Source.Exclude)), ","))
	w("output.dir", c.Output.Dir)
	w("output.format", string(c.Output.Format))
	w("gallery.enabled", strconv.FormatBool(c.Gallery.Enabled))
	w("gallery.dir", c.Gallery.Dir)
	w("gallery.heading_underline", c.Gallery.HeadingUnderline)
	w("gallery.template_dir", c.Gallery.TemplateDir)
	w("intersphinx.disabled", strconv.FormatBool(c.Intersphinx.Disabled))
	names := make([]string, 0, len(c.Intersphinx.Mapping))
	for name := range c.Intersphinx.Mapping {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		w("intersphinx.mapping."+name, c.Intersphinx.Mapping[name])
	}
	return hex.EncodeToString(h.Sum(nil))
}
