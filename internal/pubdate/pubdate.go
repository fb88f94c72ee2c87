// Package pubdate parses syndicated-feed publish dates into naive wall-clock
// timestamps.
//
// A naive timestamp keeps the wall clock exactly as written in the source
// string and drops the zone offset. It is stored in time.UTC so values compare
// consistently within one process run.
package pubdate

import (
	"strings"
	"time"
)

// layouts are tried in order; RFC-822 family first since that is what feeds use
var layouts = []string{
	time.RFC1123Z, // "Mon, 02 Jan 2006 15:04:05 -0700"
	time.RFC1123,  // "Mon, 02 Jan 2006 15:04:05 MST"
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	// seconds are optional in RFC 822
	"Mon, 02 Jan 2006 15:04 -0700",
	"Mon, 02 Jan 2006 15:04 MST",
	"Mon, 2 Jan 2006 15:04 -0700",
	"Mon, 2 Jan 2006 15:04 MST",
	"02 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04 -0700",
	time.RFC822Z,
	time.RFC822,
}

// Parser parses publish dates with an injectable clock for the fallback
type Parser struct {
	Now func() time.Time
}

// NewParser returns a parser using the wall clock
func NewParser() *Parser {
	return &Parser{Now: time.Now}
}

var defaultParser = NewParser()

// Parse parses raw with the default parser
func Parse(raw string) time.Time {
	return defaultParser.Parse(raw)
}

// Parse returns the naive timestamp for raw. Empty or unparseable input
// yields the current naive time; it never fails. Malformed dates therefore
// sort as "now".
func (p *Parser) Parse(raw string) time.Time {
	if t, ok := ParseStrict(raw); ok {
		return t
	}
	return Naive(p.now())
}

// ParseStrict parses raw without the fallback
func ParseStrict(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Naive(t), true
		}
	}
	return time.Time{}, false
}

// Naive drops the zone of t and keeps its wall clock
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func (p *Parser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
