// Package booking implements the allocation of time intervals on
// parking spots: request validation, half-open overlap detection, cost
// computation and the status rules for cancellation.  It talks to the
// database only through the SpotDirectory and Store interfaces so that
// handlers can wire the MySQL repositories and tests can substitute
// in-memory fakes.
package booking

import "errors"

// Sentinel errors returned by the allocator.  Handlers translate these
// into HTTP responses; anything not listed here is treated as an
// internal persistence failure and surfaced as a 500.
var (
	// ErrInvalidInterval is returned when start_time is not strictly
	// before end_time.
	ErrInvalidInterval = errors.New("start time must be before end time")

	// ErrPastStart is returned when the requested interval starts in
	// the past.  The check is advisory: a request that passes it and
	// commits after now() moves beyond start_time is still stored.
	ErrPastStart = errors.New("cannot book in the past")

	// ErrTooShort is returned when the interval is shorter than
	// MinDuration.  Fractional hours above the minimum are allowed.
	ErrTooShort = errors.New("minimum booking duration is 1 hour")

	// ErrSpotNotFound is returned when the requested spot does not
	// exist in the directory.
	ErrSpotNotFound = errors.New("parking spot not found")

	// ErrOwnSpot is returned when a user attempts to book a spot they
	// listed themselves.
	ErrOwnSpot = errors.New("cannot book your own spot")

	// ErrSlotTaken is returned when the requested interval overlaps a
	// pending or confirmed booking on the same spot.
	ErrSlotTaken = errors.New("spot is already booked for the selected time period")

	// ErrBookingNotFound is returned by Cancel when no booking exists
	// with the given id.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrNotBooker is returned when someone other than the user who
	// made a booking attempts to cancel it.  The spot owner has no
	// cancellation rights either.
	ErrNotBooker = errors.New("not authorized to cancel this booking")

	// ErrAlreadyCancelled is returned when cancelling a booking that
	// is already cancelled.  The first cancel wins; repeats report
	// this instead of re-applying.
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrCompleted is returned when cancelling a completed booking.
	// Completed is terminal.
	ErrCompleted = errors.New("cannot cancel a completed booking")
)
