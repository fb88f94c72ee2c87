package pipeline

import "github.com/ppiankov/finbrief/internal/model"

// Dedupe keeps the first record for each canonical key and drops records
// whose key is empty. Relative order of kept records is preserved.
func Dedupe(records []model.Candidate) []model.Candidate {
	seen := make(map[string]struct{}, len(records))
	out := make([]model.Candidate, 0, len(records))

	for _, r := range records {
		key := CanonicalizeCandidate(r)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}

	return out
}
