// Package sanitize checks and cleans user-submitted text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// StrictPolicy removes all HTML tags and attributes.
	StrictPolicy = bluemonday.StrictPolicy()

	// UGCPolicy keeps basic formatting such as <p>, <em> and <a>.
	UGCPolicy = bluemonday.UGCPolicy()
)

// PlainText trims input and reports whether it is free of HTML markup.
// The text is returned as typed either way; a lone "<" or "&" is plain text,
// only something the strict policy would remove counts as markup.
// Use for: titles, locations and attendee names.
func PlainText(input string) (string, bool) {
	text := strings.TrimSpace(input)
	stripped := html.UnescapeString(StrictPolicy.Sanitize(text))
	return text, stripped == html.UnescapeString(text)
}

// HTML sanitizes HTML content, allowing safe formatting tags.
// Use for: event descriptions.
func HTML(input string) string {
	return strings.TrimSpace(UGCPolicy.Sanitize(input))
}
