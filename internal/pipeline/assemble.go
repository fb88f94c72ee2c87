package pipeline

import "github.com/ppiankov/finbrief/internal/model"

// Assemble walks ranked records in order, attaching bodies where present.
// With requireContent, records without a body are dropped. At most limit
// records are returned; limit <= 0 means no cap.
func Assemble(records []model.Candidate, bodies []model.Body, requireContent bool, limit int) []model.Candidate {
	out := make([]model.Candidate, 0, len(records))

	for i, r := range records {
		if limit > 0 && len(out) >= limit {
			break
		}

		body := model.NoBody()
		if i < len(bodies) {
			body = bodies[i]
		}
		if requireContent && !body.Valid {
			continue
		}

		r.Body = body
		out = append(out, r)
	}

	return out
}
