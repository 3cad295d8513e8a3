package lineup

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after NFD decomposition, which
// turns "Babasónicos" into "Babasonicos" and "Él Mató" into "El Mato".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe identifier from an artist name: ASCII-fold
// diacritics, lowercase, collapse every non-alphanumeric run into a
// single hyphen and trim hyphens from the edges.
func Slugify(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		// Folding is best effort; fall back to the raw name.
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// EventID builds the stable event identifier from an artist name and a
// festival day, e.g. ("Bandalos Chinos", 1) -> "bandalos-chinos-d1".
func EventID(artist string, day int) string {
	return Slugify(artist) + "-d" + strconv.Itoa(day)
}
