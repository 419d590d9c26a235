// Package slug derives URL safe identifiers from human readable names.
package slug

import (
	"regexp"
	"strings"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	hyphens    = regexp.MustCompile(`-+`)
)

// Make lower-cases and trims s, drops every character that is not a letter,
// digit, space or hyphen, turns runs of whitespace into a single hyphen and
// collapses repeated hyphens. Non-ASCII letters are dropped.
func Make(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = disallowed.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(out, "-")
	return hyphens.ReplaceAllString(out, "-")
}

// Resolve picks the slug for a create or update. An explicit slug wins and
// is normalized; otherwise the slug is derived from name.
func Resolve(explicit *string, name string) string {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		return Make(*explicit)
	}
	return Make(name)
}
