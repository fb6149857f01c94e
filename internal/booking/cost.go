package booking

// TotalCostCents prices an interval at the given hourly rate in cents.
// The result is duration_hours * rate rounded half-up to the nearest
// cent.  The computation stays in integer arithmetic the whole way
// (seconds * cents, then divide by 3600 with +1800 for the half-up
// rounding) so repeated bookings never accumulate floating point
// drift.  Rates and durations are non-negative by the time this is
// called, so plain integer division behaves as floor and the +1800
// offset gives exact half-up rounding.
func TotalCostCents(iv Interval, hourlyRateCents int64) int64 {
	seconds := int64(iv.Duration() / 1e9) // nanoseconds -> seconds
	return (seconds*hourlyRateCents + 1800) / 3600
}
