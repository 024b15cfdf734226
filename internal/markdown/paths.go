package markdown

import (
	"path"
	"strings"
)

// RelPath returns the slash path of target relative to the directory from.
// Both are slash paths relative to the same root.
func RelPath(from, target string) string {
	fromParts := splitPath(from)
	toParts := splitPath(target)
	i := 0
	for i < len(fromParts) && i < len(toParts) && fromParts[i] == toParts[i] {
		i++
	}
	parts := make([]string, 0, len(fromParts)-i+len(toParts)-i)
	for range fromParts[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, toParts[i:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

// RootPrefix returns the relative prefix leading from the directory of page
// back to the root: "" for top-level pages, "../" per level otherwise.
func RootPrefix(page string) string {
	return strings.Repeat("../", len(splitPath(path.Dir(page))))
}

func splitPath(p string) []string {
	p = path.Clean(p)
	if p == "." || p == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}
