package briefing

import (
	"fmt"
	"strings"
)

const (
	DefaultMaxLines   = 30
	DefaultValueRunes = 300
)

// Dataset is the combined briefing input: news, community, exchange, interest
type Dataset struct {
	Items []Item
}

// Len returns the number of items
func (d Dataset) Len() int {
	return len(d.Items)
}

// Count returns how many items carry category c
func (d Dataset) Count(c Category) int {
	n := 0
	for _, it := range d.Items {
		if it.Category() == c {
			n++
		}
	}
	return n
}

// Triples flattens the dataset in order
func (d Dataset) Triples() []Triple {
	out := make([]Triple, 0, len(d.Items))
	for _, it := range d.Items {
		out = append(out, Triple{Category: it.Category(), Label: it.Label(), Value: it.Value()})
	}
	return out
}

// Lines renders at most maxLines numbered entries, cutting each value at
// valueRunes runes. The first line is a header with the total item count.
func (d Dataset) Lines(maxLines, valueRunes int) []string {
	if len(d.Items) == 0 {
		return []string{"저장된 데이터가 없습니다."}
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if valueRunes <= 0 {
		valueRunes = DefaultValueRunes
	}

	lines := []string{fmt.Sprintf("분석 가능한 정보 취합 목록 (%d개)", len(d.Items))}
	for idx, it := range d.Items {
		if idx >= maxLines {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s | key: %s | value: %s |",
			idx+1, it.Category(), it.Label(), truncateRunes(it.Value(), valueRunes)))
	}
	return lines
}

// Text joins Lines with newlines using the default caps
func (d Dataset) Text() string {
	return strings.Join(d.Lines(DefaultMaxLines, DefaultValueRunes), "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
