package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9áéíóúñü]+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from text.
//
// The text is NFC-normalised and lower-cased, every run of characters other
// than ASCII letters, digits and the Spanish á é í ó ú ñ ü becomes a single
// hyphen, and hyphens are trimmed from both ends. Slugify(Slugify(x)) ==
// Slugify(x) for every x. The result may be empty, e.g. for "¡¡!!".
func Slugify(text string) string {
	s := strings.ToLower(norm.NFC.String(text))
	s = slugDisallowed.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// sameCategory reports whether a and b are equal under Unicode case folding,
// so "TECNOLOGÍA" matches "Tecnología".
func sameCategory(a, b string) bool {
	// Casers are stateful; build one per call.
	fold := cases.Fold()
	return fold.String(norm.NFC.String(a)) == fold.String(norm.NFC.String(b))
}
