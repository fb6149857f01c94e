package booking

import (
	"context"
	"time"

	"github.com/curbspot/curbspot/internal/model"
)

// SpotInfo is the slice of a parking spot the allocator needs: who owns
// it and what it costs.  The full listing row stays in the repository
// layer.
type SpotInfo struct {
	ID              uint64
	OwnerID         uint64
	HourlyRateCents int64
}

// SpotDirectory resolves spot ids.  Implementations return
// ErrSpotNotFound when no spot exists with the given id.
type SpotDirectory interface {
	GetSpot(ctx context.Context, id uint64) (SpotInfo, error)
}

// Tx exposes the operations that must happen atomically relative to
// concurrent bookings on the same spot: the overlap check and the
// insert.  A Tx is only valid inside the WithSpotLock callback that
// produced it.
type Tx interface {
	// FindOverlapping returns bookings on the spot whose half-open
	// interval intersects iv and whose status is in statuses.
	FindOverlapping(ctx context.Context, spotID uint64, iv Interval, statuses []model.Status) ([]model.Booking, error)
	// Insert persists the booking and fills in its generated ID and
	// timestamps.
	Insert(ctx context.Context, b *model.Booking) error
}

// Store is the persistence contract for bookings.  WithSpotLock must
// serialise callbacks for the same spot id so that two concurrent
// creations for overlapping windows cannot both pass the overlap check;
// the MySQL implementation does this with a transaction holding a row
// lock on the spot.
type Store interface {
	WithSpotLock(ctx context.Context, spotID uint64, fn func(tx Tx) error) error
	GetBooking(ctx context.Context, id uint64) (model.Booking, error)
	SetStatus(ctx context.Context, id uint64, status model.Status) error
}

// Allocator validates booking requests and drives the atomic
// check-then-insert.  It holds no mutable state of its own; any number
// of requests may call it concurrently.
type Allocator struct {
	spots SpotDirectory
	store Store
	now   func() time.Time
}

// NewAllocator wires an allocator to its collaborators.  Both must be
// non-nil.
func NewAllocator(spots SpotDirectory, store Store) *Allocator {
	if spots == nil || store == nil {
		panic("nil dependency passed to NewAllocator")
	}
	return &Allocator{spots: spots, store: store, now: time.Now}
}

// Create validates the request and, if the interval is free, persists a
// confirmed booking and returns it with its generated id and total
// cost.  Validation order: interval shape, past start, minimum
// duration, spot existence, self-booking, then the locked overlap
// check.
func (a *Allocator) Create(ctx context.Context, userID, spotID uint64, start, end time.Time) (model.Booking, error) {
	iv, err := NewInterval(start, end)
	if err != nil {
		return model.Booking{}, err
	}
	if iv.Start.Before(a.now().UTC()) {
		return model.Booking{}, ErrPastStart
	}
	if iv.Duration() < MinDuration {
		return model.Booking{}, ErrTooShort
	}

	spot, err := a.spots.GetSpot(ctx, spotID)
	if err != nil {
		return model.Booking{}, err
	}
	if spot.OwnerID == userID {
		return model.Booking{}, ErrOwnSpot
	}

	b := model.Booking{
		UserID:         userID,
		SpotID:         spotID,
		StartTime:      iv.Start,
		EndTime:        iv.End,
		TotalCostCents: TotalCostCents(iv, spot.HourlyRateCents),
		Status:         model.StatusConfirmed,
	}

	err = a.store.WithSpotLock(ctx, spotID, func(tx Tx) error {
		existing, err := tx.FindOverlapping(ctx, spotID, iv,
			[]model.Status{model.StatusPending, model.StatusConfirmed})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrSlotTaken
		}
		return tx.Insert(ctx, &b)
	})
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// Cancel marks a booking cancelled on behalf of the user who made it.
// Cancelled and completed bookings are terminal; a repeated cancel
// reports ErrAlreadyCancelled rather than re-applying.
func (a *Allocator) Cancel(ctx context.Context, bookingID, userID uint64) error {
	b, err := a.store.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrNotBooker
	}
	switch b.Status {
	case model.StatusCancelled:
		return ErrAlreadyCancelled
	case model.StatusCompleted:
		return ErrCompleted
	}
	return a.store.SetStatus(ctx, bookingID, model.StatusCancelled)
}
