package booking

import (
	"testing"
	"time"
)

func TestNewIntervalOrdering(t *testing.T) {
	base := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)

	if _, err := NewInterval(base, base.Add(2*time.Hour)); err != nil {
		t.Fatalf("valid interval rejected: %v", err)
	}
	if _, err := NewInterval(base, base); err != ErrInvalidInterval {
		t.Errorf("zero-length interval: got %v, want ErrInvalidInterval", err)
	}
	if _, err := NewInterval(base.Add(time.Hour), base); err != ErrInvalidInterval {
		t.Errorf("reversed interval: got %v, want ErrInvalidInterval", err)
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2030, 6, 1, h, 0, 0, 0, time.UTC)
	}
	iv := func(s, e int) Interval { return Interval{Start: at(s), End: at(e)} }

	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", iv(10, 12), iv(10, 12), true},
		{"contained", iv(10, 14), iv(11, 12), true},
		{"contains", iv(11, 12), iv(10, 14), true},
		{"overlap left edge", iv(10, 12), iv(11, 13), true},
		{"overlap right edge", iv(11, 13), iv(10, 12), true},
		{"disjoint before", iv(8, 9), iv(10, 12), false},
		{"disjoint after", iv(13, 14), iv(10, 12), false},
		{"back to back, a ends at b start", iv(8, 10), iv(10, 12), false},
		{"back to back, b ends at a start", iv(10, 12), iv(8, 10), false},
	}
	for _, tc := range cases {
		if got := tc.a.Overlaps(tc.b); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		// Overlap is symmetric by definition; check both directions.
		if got := tc.b.Overlaps(tc.a); got != tc.want {
			t.Errorf("%s (reversed): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}
