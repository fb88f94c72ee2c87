package pubdate

import (
	"testing"
	"time"
)

func TestParse_GMT(t *testing.T) {
	got := Parse("Wed, 02 Oct 2024 01:00:00 GMT")
	want := time.Date(2024, time.October, 2, 1, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParse_KeepsWallClockOfOffset(t *testing.T) {
	got := Parse("Mon, 07 Oct 2024 10:30:00 +0900")
	want := time.Date(2024, time.October, 7, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParse_Layouts(t *testing.T) {
	want := time.Date(2024, time.January, 5, 9, 15, 0, 0, time.UTC)
	inputs := []string{
		"Fri, 05 Jan 2024 09:15:00 +0900",
		"Fri, 5 Jan 2024 09:15:00 +0900",
		"05 Jan 2024 09:15:00 +0000",
		"  Fri, 05 Jan 2024 09:15:00 GMT  ",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, ok := ParseStrict(in)
			if !ok {
				t.Fatalf("ParseStrict(%q) failed", in)
			}
			if !got.Equal(want) {
				t.Errorf("ParseStrict(%q) = %v, want %v", in, got, want)
			}
		})
	}
}

func TestParse_WithoutSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"Wed, 02 Oct 2024 01:00 GMT", time.Date(2024, time.October, 2, 1, 0, 0, 0, time.UTC)},
		{"Wed, 2 Oct 2024 01:00 GMT", time.Date(2024, time.October, 2, 1, 0, 0, 0, time.UTC)},
		{"Mon, 07 Oct 2024 10:30 +0900", time.Date(2024, time.October, 7, 10, 30, 0, 0, time.UTC)},
		{"Mon, 7 Oct 2024 10:30 -0700", time.Date(2024, time.October, 7, 10, 30, 0, 0, time.UTC)},
		{"07 Oct 2024 10:30 +0900", time.Date(2024, time.October, 7, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStrict(tt.in)
			if !ok {
				t.Fatalf("ParseStrict(%q) failed", tt.in)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseStrict(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_MalformedFallsBackToNow(t *testing.T) {
	before := Naive(time.Now()).Truncate(time.Second)
	got := Parse("not-a-date")
	after := Naive(time.Now())

	if got.Before(before) || got.After(after) {
		t.Errorf("Parse(malformed) = %v, want between %v and %v", got, before, after)
	}
}

func TestParse_InjectedClock(t *testing.T) {
	fixed := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.FixedZone("KST", 9*3600))
	p := &Parser{Now: func() time.Time { return fixed }}

	for _, in := range []string{"", "   ", "yesterday", "2024-13-45"} {
		got := p.Parse(in)
		want := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}
