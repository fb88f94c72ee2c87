package pipeline

import (
	"sort"

	"github.com/ppiankov/finbrief/internal/model"
)

// RankByTime sorts records newest first. Equal timestamps keep their input order.
// The input slice is not modified.
func RankByTime(records []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}
