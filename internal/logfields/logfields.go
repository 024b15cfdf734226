package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyDoc        = "doc"
	KeyLine       = "line"
	KeyDirective  = "directive"
	KeyExampleID  = "example_id"
	KeyTitle      = "title"
	KeyTag        = "tag"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyPlugin     = "plugin"
	KeyWorker     = "worker"
	KeyFormat     = "format"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Doc(name string) slog.Attr       { return slog.String(KeyDoc, name) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Directive(name string) slog.Attr { return slog.String(KeyDirective, name) }
func ExampleID(id string) slog.Attr   { return slog.String(KeyExampleID, id) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Page(p string) slog.Attr         { return slog.String(KeyPage, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Worker(id int) slog.Attr         { return slog.Int(KeyWorker, id) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
