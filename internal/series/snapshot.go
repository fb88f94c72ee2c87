// Package series fetches statistics time series and reduces them to their
// latest observation date.
package series

import (
	"strings"
	"time"

	"github.com/ppiankov/finbrief/internal/model"
)

var timeLayouts = []string{"20060102", "2006-01-02", "200601", "2006"}

// ParseTime parses a statistics period. Daily, monthly and annual forms are
// accepted.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if len(layout) != len(raw) {
			continue
		}
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LatestSnapshot returns every point dated at the maximum parsed time, in
// input order. Rows without a parseable time are discarded. The label comes
// from labelFor, or the item name when labelFor is nil.
func LatestSnapshot(rows []model.SeriesRow, labelFor func(model.SeriesRow) string) []model.Point {
	points := make([]model.Point, 0, len(rows))
	var latest time.Time
	found := false

	for _, r := range rows {
		t, ok := ParseTime(r.Time)
		if !ok {
			continue
		}

		label := r.ItemName
		if labelFor != nil {
			label = labelFor(r)
		}
		points = append(points, model.Point{Time: t, Code: r.ItemCode, Label: label, Value: r.Value})

		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}

	out := make([]model.Point, 0, len(points))
	for _, p := range points {
		if p.Time.Equal(latest) {
			out = append(out, p)
		}
	}
	return out
}

// currencyLabels maps exchange-rate item codes to currency names
var currencyLabels = map[string]string{
	"0000001": "USD",
	"0000002": "JPY",
	"0000003": "EUR",
}

// CurrencyLabel names an exchange-rate row by currency, falling back to the item name
func CurrencyLabel(r model.SeriesRow) string {
	if label, ok := currencyLabels[r.ItemCode]; ok {
		return label
	}
	return r.ItemName
}
