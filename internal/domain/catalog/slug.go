package catalog

import (
	"regexp"
	"strings"
)

var (
	// \s in RE2 is ASCII only and omits \v; \p{Z} covers NBSP and ideographic spaces
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s\v\p{Z}-]`)
	slugWhitespace = regexp.MustCompile(`[\s\v\p{Z}]+`)
)

// DeriveSlug converts a display name into a URL-safe slug.
// Empty or all-punctuation names yield an empty string.
func DeriveSlug(name string) string {
	s := strings.ToLower(name)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	return strings.Trim(s, "- \t\n\r\f\v")
}
