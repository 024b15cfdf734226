// Package slug derives URL-safe identifiers from human-readable titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make returns the ASCII identifier for title.
//
// The title is NFKD-normalized, combining marks are dropped and the result
// is lowercased. Non-ASCII characters left over (letters without a
// decomposition such as ß) are dropped. Every remaining run of characters
// outside [a-z0-9] becomes a single hyphen and leading/trailing hyphens are
// trimmed. Make is pure and
// idempotent; distinct titles may collide.
func Make(title string) string {
	folded, _, err := transform.String(foldChain(), title)
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if isIDRune(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// foldChain returns a fresh transformer; transform.Chain values are stateful
// and must not be shared between goroutines.
func foldChain() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
