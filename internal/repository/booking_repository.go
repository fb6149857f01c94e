package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/curbspot/curbspot/internal/booking"
	"github.com/curbspot/curbspot/internal/model"
)

// BookingRepo provides access to the bookings table and implements
// booking.Store.  The conflict check and the insert for a spot run
// inside one transaction that first takes a row lock on the spot
// (SELECT ... FOR UPDATE), so two concurrent requests for overlapping
// windows on the same spot serialise and at most one of them passes
// the overlap check.  Requests for different spots do not contend.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, spot_id, start_time, end_time, total_cost_cents, status,
	created_at, updated_at`

// WithSpotLock implements booking.Store.  It opens a transaction,
// locks the spot row and runs fn; the transaction commits only when fn
// returns nil.  A missing spot surfaces as booking.ErrSpotNotFound.
func (r *BookingRepo) WithSpotLock(ctx context.Context, spotID uint64, fn func(tx booking.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var locked uint64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM parking_spots WHERE id = ? FOR UPDATE", spotID).Scan(&locked); err != nil {
		if err == sql.ErrNoRows {
			return booking.ErrSpotNotFound
		}
		return err
	}

	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetBooking implements booking.Store.
func (r *BookingRepo) GetBooking(ctx context.Context, id uint64) (model.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return model.Booking{}, booking.ErrBookingNotFound
	}
	return b, err
}

// SetStatus implements booking.Store.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, status model.Status) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(status), id)
	return err
}

// bookingTx is the transactional view handed to allocator callbacks.
type bookingTx struct {
	tx *sql.Tx
}

// FindOverlapping returns bookings on the spot whose half-open
// interval intersects iv.  The predicate start_time < ? AND
// end_time > ? mirrors booking.Interval.Overlaps exactly; keeping
// both in lockstep is what makes back-to-back bookings possible.
func (t *bookingTx) FindOverlapping(ctx context.Context, spotID uint64, iv booking.Interval, statuses []model.Status) ([]model.Booking, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(statuses))
	args := make([]interface{}, 0, len(statuses)+3)
	args = append(args, spotID)
	for i, st := range statuses {
		placeholders[i] = "?"
		args = append(args, string(st))
	}
	args = append(args, iv.End, iv.Start)

	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE spot_id = ?
		  AND status IN (` + strings.Join(placeholders, ",") + `)
		  AND start_time < ? AND end_time > ?`
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Insert persists the booking within the transaction and reads the
// stored row back to populate the generated ID and timestamps.
func (t *bookingTx) Insert(ctx context.Context, b *model.Booking) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, spot_id, start_time, end_time, total_cost_cents, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID, b.SpotID, b.StartTime, b.EndTime, b.TotalCostCents, string(b.Status))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	row := t.tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", b.ID)
	stored, err := scanBooking(row)
	if err != nil {
		return err
	}
	*b = stored
	return nil
}

func scanBooking(sc scanner) (model.Booking, error) {
	var (
		b   model.Booking
		raw string
	)
	err := sc.Scan(&b.ID, &b.UserID, &b.SpotID, &b.StartTime, &b.EndTime,
		&b.TotalCostCents, &raw, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	status, ok := model.ParseStatus(raw)
	if !ok {
		return model.Booking{}, fmt.Errorf("unknown booking status %q", raw)
	}
	b.Status = status
	return b, nil
}

// BookingDetail is a booking joined with a display snapshot of its
// spot and the spot's owner.  It is what list endpoints and the create
// response return to the frontend; the snapshot is read-only and not
// part of the booking row itself.
type BookingDetail struct {
	ID         uint64  `json:"id"`
	SpotID     uint64  `json:"property_id"`
	Title      string  `json:"title"`
	Address    string  `json:"address"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	TotalCost  float64 `json:"total_cost"`
	HourlyRate float64 `json:"hourly_rate"`
	Status     string  `json:"status"`
	OwnerName  string  `json:"owner_name"`
	CreatedAt  string  `json:"created_at"`
}

const detailQuery = `SELECT b.id, b.spot_id, b.start_time, b.end_time, b.total_cost_cents,
		b.status, b.created_at,
		p.spot_title, p.street_address, p.unit, p.city, p.state, p.zip_code,
		p.hourly_rate_cents,
		u.username, u.first_name, u.last_name
	FROM bookings b
	LEFT JOIN parking_spots p ON p.id = b.spot_id
	LEFT JOIN users u ON u.id = p.user_id`

// Detail returns the display view of a single booking.
func (r *BookingRepo) Detail(ctx context.Context, id uint64) (BookingDetail, error) {
	row := r.db.QueryRowContext(ctx, detailQuery+" WHERE b.id = ?", id)
	return scanDetail(row)
}

// ListByUser returns all bookings made by a user with their spot
// snapshots, newest first.  When no bookings exist, an empty slice is
// returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		detailQuery+" WHERE b.user_id = ? ORDER BY b.created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDetail(sc scanner) (BookingDetail, error) {
	var (
		d                     BookingDetail
		start, end, createdAt time.Time
		costCents, rateCents  sql.NullInt64
		title, street, unit   sql.NullString
		city, state, zip      sql.NullString
		username, first, last sql.NullString
		rawStatus             string
	)
	err := sc.Scan(&d.ID, &d.SpotID, &start, &end, &costCents, &rawStatus, &createdAt,
		&title, &street, &unit, &city, &state, &zip, &rateCents,
		&username, &first, &last)
	if err != nil {
		return BookingDetail{}, err
	}
	d.StartTime = start.UTC().Format(time.RFC3339)
	d.EndTime = end.UTC().Format(time.RFC3339)
	d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	d.TotalCost = float64(costCents.Int64) / 100.0
	d.HourlyRate = float64(rateCents.Int64) / 100.0
	d.Status = rawStatus
	d.Title = title.String
	if d.Title == "" {
		d.Title = "Parking Space"
	}
	addr := street.String
	if unit.Valid && unit.String != "" {
		addr += ", " + unit.String
	}
	d.Address = fmt.Sprintf("%s, %s, %s %s", addr, city.String, state.String, zip.String)
	owner := model.User{
		Username:  username.String,
		FirstName: optString(first),
		LastName:  optString(last),
	}
	d.OwnerName = owner.OwnerName()
	return d, nil
}
