package model

import (
	"encoding/json"
	"time"
)

// RawRecord is a single search hit as returned by the search provider
type RawRecord struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Link         string `json:"link"`         // Aggregator link
	OriginalLink string `json:"originallink"` // Publisher-original link (may be empty)
	PubDate      string `json:"pubDate"`      // RFC-822 style date string
}

// Candidate is an article flowing through the pipeline
type Candidate struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Body         Body      `json:"content"`
	Link         string    `json:"link"`
	OriginalLink string    `json:"originallink"`
	PublishedAt  time.Time `json:"published_at"`
}

// Body is the optional full text of a candidate. The zero value means "no content".
type Body struct {
	Text  string
	Valid bool
}

// SomeBody wraps extracted text. Empty text is treated as no content.
func SomeBody(text string) Body {
	if text == "" {
		return Body{}
	}
	return Body{Text: text, Valid: true}
}

// NoBody returns the absent body
func NoBody() Body {
	return Body{}
}

// Get returns the text and whether it is present
func (b Body) Get() (string, bool) {
	return b.Text, b.Valid
}

// MarshalJSON renders an absent body as null
func (b Body) MarshalJSON() ([]byte, error) {
	if !b.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(b.Text)
}

// Result is the output of one pipeline run
type Result struct {
	Items     []Candidate `json:"items"`
	Source    string      `json:"source"`
	FetchedAt time.Time   `json:"fetched_at"`
}
