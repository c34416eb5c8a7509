package content

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// \s is ASCII-only in RE2; \p{Zs} adds no-break and other Unicode spaces.
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s\p{Zs}-]`)
	slugSpaces     = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// Slugify turns a tag into a URL path segment: lowercased, stripped of
// everything but [a-z0-9], whitespace and hyphens, trimmed, with whitespace
// runs collapsed into one hyphen. Slugify(Slugify(s)) == Slugify(s).
func Slugify(tag string) string {
	s := cases.Lower(language.Und).String(tag)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugSpaces.ReplaceAllString(s, "-")
}

// PostPath is the URL of a post page.
func PostPath(slug string) string {
	return "/blog/" + slug + "/"
}

// TagPath is the URL of the listing page for tag.
func TagPath(tag string) string {
	return "/tags/" + Slugify(tag) + "/"
}
