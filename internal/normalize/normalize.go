// Package normalize canonicalizes free-text place names so they can be
// matched against rate-source data regardless of accents, case or spacing.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Text returns the canonical form of s: diacritics stripped, lower-cased,
// whitespace collapsed to single spaces. Idempotent; empty input yields "".
func Text(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Fold failure leaves the original text; lowering and collapsing
		// still give a stable key.
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Equal reports whether two place names are the same after canonicalization.
func Equal(a, b string) bool {
	return Text(a) == Text(b)
}
