package model

import "time"

// SeriesRow is one raw observation from a statistics provider
type SeriesRow struct {
	Time     string `json:"TIME"`       // e.g. "20240102"
	ItemCode string `json:"ITEM_CODE1"` // instrument code
	ItemName string `json:"ITEM_NAME1"` // human-readable instrument name
	Value    string `json:"DATA_VALUE"`
}

// Point is a parsed time-series observation
type Point struct {
	Time  time.Time `json:"time"`
	Code  string    `json:"code"`
	Label string    `json:"label"`
	Value string    `json:"value"`
}
