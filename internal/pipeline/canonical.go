package pipeline

import (
	"strings"

	"github.com/ppiankov/finbrief/internal/model"
)

// Canonicalize returns the identity key of a record: the publisher-original
// link when non-blank, else the aggregator link, else ""
func Canonicalize(r model.RawRecord) string {
	return canonicalKey(r.OriginalLink, r.Link)
}

// CanonicalizeCandidate returns the identity key of a converted candidate
func CanonicalizeCandidate(c model.Candidate) string {
	return canonicalKey(c.OriginalLink, c.Link)
}

func canonicalKey(original, link string) string {
	if k := strings.TrimSpace(original); k != "" {
		return k
	}
	return strings.TrimSpace(link)
}
