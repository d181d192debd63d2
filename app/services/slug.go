package services

import (
	"regexp"
	"strings"
)

var (
	slugStrip   = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`--+`)
)

// ToSlug converts free-form text into a URL-safe slug candidate:
// lowercase, trimmed, everything outside word characters, whitespace, and
// hyphens stripped, whitespace runs and hyphen runs collapsed to single
// hyphens. An empty result means the input had nothing usable and the
// caller must reject it.
func ToSlug(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return s
}
