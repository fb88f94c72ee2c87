// Package textnorm cleans search-provider snippets into plain text.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// Normalize strips markup tags, decodes HTML entities, collapses whitespace
// runs to a single space and trims the ends.
//
// Decoding can reveal new tags or entities (e.g. "&amp;lt;b&amp;gt;"), so the
// steps repeat until the text stops changing. This keeps
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	s := raw
	for {
		next := normalizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = tagPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
