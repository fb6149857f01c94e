package booking

import "time"

// MinDuration is the smallest interval a booking may cover.
const MinDuration = time.Hour

// Interval is a half-open time range [Start, End).  All comparisons in
// this package use half-open semantics, so two intervals that share an
// endpoint (one ends exactly when the other starts) do not overlap.
// This is the single overlap definition for the whole service; the SQL
// predicate in the booking repository mirrors it.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval, normalising both endpoints to UTC.
// It returns ErrInvalidInterval unless Start is strictly before End.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start.UTC(), End: end.UTC()}, nil
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals intersect:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}
