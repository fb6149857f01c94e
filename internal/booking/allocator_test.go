package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/curbspot/curbspot/internal/model"
)

// memDirectory is an in-memory SpotDirectory for tests.
type memDirectory struct {
	spots map[uint64]SpotInfo
}

func (d *memDirectory) GetSpot(_ context.Context, id uint64) (SpotInfo, error) {
	s, ok := d.spots[id]
	if !ok {
		return SpotInfo{}, ErrSpotNotFound
	}
	return s, nil
}

// memStore is an in-memory Store.  A single mutex stands in for the
// per-spot row lock the MySQL implementation takes, which is enough to
// serialise the check-then-insert in tests.
type memStore struct {
	mu       sync.Mutex
	nextID   uint64
	bookings map[uint64]model.Booking
}

func newMemStore() *memStore {
	return &memStore{bookings: make(map[uint64]model.Booking)}
}

func (s *memStore) WithSpotLock(_ context.Context, _ uint64, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn((*memTx)(s))
}

func (s *memStore) GetBooking(_ context.Context, id uint64) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (s *memStore) SetStatus(_ context.Context, id uint64, status model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	b.Status = status
	s.bookings[id] = b
	return nil
}

// memTx reuses the store's storage; the store's mutex is already held
// while a callback runs.
type memTx memStore

func (t *memTx) FindOverlapping(_ context.Context, spotID uint64, iv Interval, statuses []model.Status) ([]model.Booking, error) {
	allowed := make(map[model.Status]bool, len(statuses))
	for _, st := range statuses {
		allowed[st] = true
	}
	var out []model.Booking
	for _, b := range t.bookings {
		if b.SpotID != spotID || !allowed[b.Status] {
			continue
		}
		if iv.Overlaps(Interval{Start: b.StartTime, End: b.EndTime}) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (t *memTx) Insert(_ context.Context, b *model.Booking) error {
	t.nextID++
	b.ID = t.nextID
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	t.bookings[b.ID] = *b
	return nil
}

// newTestAllocator builds an allocator over one spot (id 1, owner 10,
// $10.00/hour) with the clock pinned so "the past" is deterministic.
func newTestAllocator() (*Allocator, *memStore, time.Time) {
	now := time.Date(2030, 6, 1, 8, 0, 0, 0, time.UTC)
	dir := &memDirectory{spots: map[uint64]SpotInfo{
		1: {ID: 1, OwnerID: 10, HourlyRateCents: 1000},
	}}
	store := newMemStore()
	a := NewAllocator(dir, store)
	a.now = func() time.Time { return now }
	return a, store, now
}

func TestCreateComputesCostAndConfirms(t *testing.T) {
	a, _, now := newTestAllocator()
	start := now.Add(24 * time.Hour)

	b, err := a.Create(context.Background(), 2, 1, start, start.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID == 0 {
		t.Error("expected assigned id")
	}
	if b.TotalCostCents != 2000 {
		t.Errorf("TotalCostCents = %d, want 2000", b.TotalCostCents)
	}
	if b.Status != model.StatusConfirmed {
		t.Errorf("Status = %q, want confirmed", b.Status)
	}
}

func TestCreateValidation(t *testing.T) {
	a, _, now := newTestAllocator()
	start := now.Add(24 * time.Hour)

	cases := []struct {
		name       string
		userID     uint64
		spotID     uint64
		start, end time.Time
		want       error
	}{
		{"end before start", 2, 1, start.Add(time.Hour), start, ErrInvalidInterval},
		{"end equals start", 2, 1, start, start, ErrInvalidInterval},
		{"start in the past", 2, 1, now.Add(-time.Minute), now.Add(2 * time.Hour), ErrPastStart},
		{"59 minutes too short", 2, 1, start, start.Add(59 * time.Minute), ErrTooShort},
		{"unknown spot", 2, 99, start, start.Add(2 * time.Hour), ErrSpotNotFound},
		{"owner books own spot", 10, 1, start, start.Add(2 * time.Hour), ErrOwnSpot},
	}
	for _, tc := range cases {
		if _, err := a.Create(context.Background(), tc.userID, tc.spotID, tc.start, tc.end); err != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	// Exactly one hour sits on the boundary and must be accepted.
	if _, err := a.Create(context.Background(), 2, 1, start, start.Add(time.Hour)); err != nil {
		t.Errorf("60 minute booking rejected: %v", err)
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	a, _, now := newTestAllocator()
	day := now.Add(24 * time.Hour)

	if _, err := a.Create(context.Background(), 2, 1, day, day.Add(2*time.Hour)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// Any intersecting window from another user must conflict.
	if _, err := a.Create(context.Background(), 3, 1, day.Add(time.Hour), day.Add(3*time.Hour)); err != ErrSlotTaken {
		t.Errorf("overlapping booking: got %v, want ErrSlotTaken", err)
	}
	// Back-to-back is allowed under half-open semantics.
	if _, err := a.Create(context.Background(), 3, 1, day.Add(2*time.Hour), day.Add(4*time.Hour)); err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}
	// A disjoint window later the same day is fine too.
	if _, err := a.Create(context.Background(), 4, 1, day.Add(6*time.Hour), day.Add(8*time.Hour)); err != nil {
		t.Errorf("disjoint booking rejected: %v", err)
	}
}

func TestCancelledBookingFreesTheSlot(t *testing.T) {
	a, _, now := newTestAllocator()
	day := now.Add(24 * time.Hour)

	b, err := a.Create(context.Background(), 2, 1, day, day.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := a.Cancel(context.Background(), b.ID, 2); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := a.Create(context.Background(), 3, 1, day, day.Add(2*time.Hour)); err != nil {
		t.Errorf("booking over a cancelled window rejected: %v", err)
	}
}

func TestCancelRules(t *testing.T) {
	a, store, now := newTestAllocator()
	day := now.Add(24 * time.Hour)

	b, err := a.Create(context.Background(), 2, 1, day, day.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := a.Cancel(context.Background(), 999, 2); err != ErrBookingNotFound {
		t.Errorf("missing booking: got %v, want ErrBookingNotFound", err)
	}

	// Someone else (including the spot owner) cannot cancel, and the
	// status must remain untouched.
	if err := a.Cancel(context.Background(), b.ID, 10); err != ErrNotBooker {
		t.Errorf("foreign cancel: got %v, want ErrNotBooker", err)
	}
	if got, _ := store.GetBooking(context.Background(), b.ID); got.Status != model.StatusConfirmed {
		t.Errorf("status after forbidden cancel = %q, want confirmed", got.Status)
	}

	if err := a.Cancel(context.Background(), b.ID, 2); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if err := a.Cancel(context.Background(), b.ID, 2); err != ErrAlreadyCancelled {
		t.Errorf("second cancel: got %v, want ErrAlreadyCancelled", err)
	}
	if got, _ := store.GetBooking(context.Background(), b.ID); got.Status != model.StatusCancelled {
		t.Errorf("status after repeat cancel = %q, want cancelled", got.Status)
	}

	// Completed bookings are terminal.
	done, err := a.Create(context.Background(), 2, 1, day.Add(3*time.Hour), day.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.SetStatus(context.Background(), done.ID, model.StatusCompleted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := a.Cancel(context.Background(), done.ID, 2); err != ErrCompleted {
		t.Errorf("cancel completed: got %v, want ErrCompleted", err)
	}
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	for round := 0; round < 50; round++ {
		a, _, now := newTestAllocator()
		day := now.Add(24 * time.Hour)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = a.Create(context.Background(), uint64(2+i), 1,
					day.Add(time.Duration(i)*30*time.Minute), day.Add(3*time.Hour))
			}(i)
		}
		wg.Wait()

		ok, conflict := 0, 0
		for _, err := range errs {
			switch err {
			case nil:
				ok++
			case ErrSlotTaken:
				conflict++
			default:
				t.Fatalf("round %d: unexpected error: %v", round, err)
			}
		}
		if ok != 1 || conflict != 1 {
			t.Fatalf("round %d: got %d successes and %d conflicts, want exactly 1 and 1", round, ok, conflict)
		}
	}
}
