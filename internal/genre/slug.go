// Package genre reads free-form genre names into catalog genres.
//
// Links and imported data spell genres many ways ("Non-Fiction", "sci",
// "Biographies & Memoirs"). Parse folds them onto the six catalog genres.
package genre

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases s, strips accents and joins its words with hyphens.
// "Biographies & Memoirs" -> "biographies-memoirs".
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range norm.NFKD.String(s) {
		switch {
		case r > unicode.MaxASCII:
			// Combining marks left by decomposition and other non-ASCII runes.
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}
