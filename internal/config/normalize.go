package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments and warnings from normalization.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated and list fields in place before
// defaults are applied.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizeBuild(&c.Build, res)
	normalizeOutput(&c.Output, res)
	normalizeSource(&c.Source, res)
	c.Gallery.Dir = strings.Trim(strings.TrimSpace(c.Gallery.Dir), "/")
	c.Project.Theme = strings.TrimSpace(c.Project.Theme)
	return res, nil
}

func normalizeBuild(b *BuildConfig, res *NormalizationResult) {
	if raw := string(b.LogLevel); strings.TrimSpace(raw) != "" {
		if lvl := NormalizeLogLevel(raw); lvl == "" {
			res.Warnings = append(res.Warnings, warnUnknown("build.log_level", raw, string(LogLevelInfo)))
			b.LogLevel = LogLevelInfo
		} else if lvl != b.LogLevel {
			res.Warnings = append(res.Warnings, warnChanged("build.log_level", b.LogLevel, lvl))
			b.LogLevel = lvl
		}
	}
	if raw := string(b.LogFormat); strings.TrimSpace(raw) != "" {
		if f := NormalizeLogFormat(raw); f == "" {
			res.Warnings = append(res.Warnings, warnUnknown("build.log_format", raw, string(LogFormatText)))
			b.LogFormat = LogFormatText
		} else {
			b.LogFormat = f
		}
	}
	if b.Workers < 0 {
		res.Warnings = append(res.Warnings, warnChanged("build.workers", b.Workers, 0))
		b.Workers = 0
	}
}

func normalizeOutput(o *OutputConfig, res *NormalizationResult) {
	if raw := string(o.Format); strings.TrimSpace(raw) != "" {
		if f := NormalizeOutputFormat(raw); f != "" {
			o.Format = f
		}
		// unknown formats are left for validation to reject
	}
	o.StaticPaths = normalizeStringSlice("output.static_paths", o.StaticPaths, res)
}

func normalizeSource(s *SourceConfig, res *NormalizationResult) {
	s.Suffix = strings.TrimSpace(s.Suffix)
	if s.Suffix != "" && !strings.HasPrefix(s.Suffix, ".") {
		res.Warnings = append(res.Warnings, warnChanged("source.suffix", s.Suffix, "."+s.Suffix))
		s.Suffix = "." + s.Suffix
	}
	s.Exclude = normalizeStringSlice("source.exclude", s.Exclude, res)
}

// normalizeStringSlice trims and dedupes a list, keeping first occurrences in order.
func normalizeStringSlice(label string, in []string, res *NormalizationResult) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		t := strings.TrimSpace(v)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) != len(in) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("normalized %s list (%d -> %d entries)", label, len(in), len(out)))
	}
	return out
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
