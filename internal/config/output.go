package config

import "strings"

// OutputFormat selects the writer.
type OutputFormat string

const (
	FormatHTML  OutputFormat = "html"
	FormatText  OutputFormat = "text"
	FormatDummy OutputFormat = "dummy" // read and resolve, write nothing
)

// NormalizeOutputFormat maps raw to an OutputFormat, or "" when unknown.
func NormalizeOutputFormat(raw string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "html":
		return FormatHTML
	case "text", "txt":
		return FormatText
	case "dummy":
		return FormatDummy
	default:
		return ""
	}
}

// IsHTML reports whether the format writes HTML pages.
func (f OutputFormat) IsHTML() bool {
	return f == FormatHTML
}

// Suffix returns the output file suffix.
func (f OutputFormat) Suffix() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatDummy:
		return ""
	default:
		return ".html"
	}
}
