package model

import "time"

// Status enumerates the lifecycle states of a booking.  The set is
// closed: values read from the database or from clients must be one of
// the four constants below and anything else is rejected by ParseStatus.
//
// Transitions: pending -> confirmed -> completed, and
// pending|confirmed -> cancelled.  Both cancelled and completed are
// terminal.  Completion is applied by an external job, never by the
// booking endpoints themselves.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ParseStatus validates a raw status string against the closed enum.
// It returns false for unknown values instead of passing them through.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

// Blocking reports whether a booking in this status occupies the spot's
// calendar.  Only pending and confirmed bookings count when checking a
// requested interval for conflicts.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking records a user's time-bounded reservation of a parking spot.
// StartTime/EndTime form a half-open interval [StartTime, EndTime) in
// UTC.  TotalCostCents is derived at creation from the spot's hourly
// rate and never recomputed afterwards.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – user who made the booking (never the spot owner).
//  SpotID         – parking spot being booked.
//  StartTime      – inclusive start of the interval.
//  EndTime        – exclusive end of the interval.
//  TotalCostCents – total price in cents.
//  Status         – lifecycle state (see Status).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Booking struct {
	ID             uint64    // bookings.id
	UserID         uint64    // bookings.user_id
	SpotID         uint64    // bookings.spot_id
	StartTime      time.Time // bookings.start_time
	EndTime        time.Time // bookings.end_time
	TotalCostCents int64     // bookings.total_cost_cents
	Status         Status    // bookings.status
	CreatedAt      time.Time // bookings.created_at
	UpdatedAt      time.Time // bookings.updated_at
}
