package repository

import (
	"context"
	"database/sql"

	"github.com/curbspot/curbspot/internal/booking"
	"github.com/curbspot/curbspot/internal/model"
)

// SpotRepo provides CRUD operations for parking spot listings.  It
// also implements booking.SpotDirectory so the allocator can resolve a
// spot's owner and rate without seeing the full listing row.  All
// timestamp columns are stored in UTC.
type SpotRepo struct {
	db *sql.DB
}

// NewSpotRepo returns a new SpotRepo bound to the given database.
func NewSpotRepo(db *sql.DB) *SpotRepo { return &SpotRepo{db: db} }

// DB exposes the underlying handle for callers that need to open a
// transaction spanning several repositories.
func (r *SpotRepo) DB() *sql.DB { return r.db }

const spotColumns = `id, user_id, spot_title, spot_type, street_address, unit, city, state,
	zip_code, location_instructions, hourly_rate_cents,
	photo1_url, photo2_url, photo3_url, photo4_url, photo5_url,
	starting_date, ending_date, created_at, updated_at`

// Create inserts a listing and populates the generated ID on the
// provided record.
func (r *SpotRepo) Create(ctx context.Context, s *model.Spot) error {
	const q = `INSERT INTO parking_spots
		(user_id, spot_title, spot_type, street_address, unit, city, state, zip_code,
		 location_instructions, hourly_rate_cents,
		 photo1_url, photo2_url, photo3_url, photo4_url, photo5_url,
		 starting_date, ending_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.UserID, s.SpotTitle, s.SpotType, s.StreetAddress, s.Unit, s.City, s.State, s.ZipCode,
		s.LocationInstructions, s.HourlyRateCents,
		s.Photos[0], s.Photos[1], s.Photos[2], s.Photos[3], s.Photos[4],
		s.StartingDate, s.EndingDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID loads a full listing row.  sql.ErrNoRows is returned when
// the spot does not exist.
func (r *SpotRepo) GetByID(ctx context.Context, id uint64) (model.Spot, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+spotColumns+" FROM parking_spots WHERE id = ?", id)
	return scanSpot(row)
}

// GetSpot implements booking.SpotDirectory.  It returns
// booking.ErrSpotNotFound when no listing exists with the given id.
func (r *SpotRepo) GetSpot(ctx context.Context, id uint64) (booking.SpotInfo, error) {
	var info booking.SpotInfo
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, hourly_rate_cents FROM parking_spots WHERE id = ?",
		id).Scan(&info.ID, &info.OwnerID, &info.HourlyRateCents)
	if err == sql.ErrNoRows {
		return booking.SpotInfo{}, booking.ErrSpotNotFound
	}
	if err != nil {
		return booking.SpotInfo{}, err
	}
	return info, nil
}

// ListByUser returns all spots listed by a user, newest first.
func (r *SpotRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Spot, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+spotColumns+" FROM parking_spots WHERE user_id = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Spot, 0)
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteOwned removes a listing after verifying ownership.  It returns
// sql.ErrNoRows when the spot does not exist and ErrForbidden when the
// caller is not the owner.
func (r *SpotRepo) DeleteOwned(ctx context.Context, id, ownerID uint64) error {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM parking_spots WHERE id = ?", id).Scan(&actualOwner)
	if err != nil {
		return err
	}
	if actualOwner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, "DELETE FROM parking_spots WHERE id = ?", id)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSpot(sc scanner) (model.Spot, error) {
	var (
		s         model.Spot
		unit      sql.NullString
		photos    [5]sql.NullString
		startDate sql.NullTime
		endDate   sql.NullTime
	)
	err := sc.Scan(
		&s.ID, &s.UserID, &s.SpotTitle, &s.SpotType, &s.StreetAddress, &unit,
		&s.City, &s.State, &s.ZipCode, &s.LocationInstructions, &s.HourlyRateCents,
		&photos[0], &photos[1], &photos[2], &photos[3], &photos[4],
		&startDate, &endDate, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Spot{}, err
	}
	s.Unit = optString(unit)
	for i := range photos {
		s.Photos[i] = optString(photos[i])
	}
	if startDate.Valid {
		t := startDate.Time
		s.StartingDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		s.EndingDate = &t
	}
	return s, nil
}
