package model

import "time"

// Spot represents a parking spot listing as stored in the
// `parking_spots` table.  The owner lists the spot once; bookings
// reference it by ID.  Photo columns hold URLs produced by the upload
// flow and are stored verbatim.  StartingDate/EndingDate bound the
// period during which the listing is bookable and are nullable because
// older listings predate the availability window columns.
//
// Fields:
//  ID                   – primary key identifier.
//  UserID               – owner of the listing.
//  SpotTitle            – short display title.
//  SpotType             – e.g. "Driveway", "Garage", "Street Parking".
//  StreetAddress        – street address of the spot.
//  Unit                 – optional unit/apartment detail.
//  City, State, ZipCode – location columns used by search.
//  LocationInstructions – free-form directions for drivers.
//  HourlyRateCents      – price per hour in cents, non-negative.
//  Photos               – up to five photo URLs (photo1..photo5 columns).
//  StartingDate         – first day the spot is bookable (nullable).
//  EndingDate           – day the listing stops being bookable (nullable).
//  CreatedAt            – timestamp of creation.
//  UpdatedAt            – timestamp of last update.
type Spot struct {
	ID                   uint64     // parking_spots.id
	UserID               uint64     // parking_spots.user_id
	SpotTitle            string     // parking_spots.spot_title
	SpotType             string     // parking_spots.spot_type
	StreetAddress        string     // parking_spots.street_address
	Unit                 *string    // parking_spots.unit (nullable)
	City                 string     // parking_spots.city
	State                string     // parking_spots.state
	ZipCode              string     // parking_spots.zip_code
	LocationInstructions string     // parking_spots.location_instructions
	HourlyRateCents      int64      // parking_spots.hourly_rate_cents
	Photos               [5]*string // parking_spots.photo1_url .. photo5_url
	StartingDate         *time.Time // parking_spots.starting_date (nullable)
	EndingDate           *time.Time // parking_spots.ending_date (nullable)
	CreatedAt            time.Time  // parking_spots.created_at
	UpdatedAt            time.Time  // parking_spots.updated_at
}

// Address assembles the display address the same way the frontend
// expects it: street, optional unit, city, state and zip.
func (s Spot) Address() string {
	addr := s.StreetAddress
	if s.Unit != nil && *s.Unit != "" {
		addr += ", " + *s.Unit
	}
	return addr + ", " + s.City + ", " + s.State + " " + s.ZipCode
}

// PhotoURLs returns the non-empty photo URLs in column order.
func (s Spot) PhotoURLs() []string {
	out := make([]string, 0, len(s.Photos))
	for _, p := range s.Photos {
		if p != nil && *p != "" {
			out = append(out, *p)
		}
	}
	return out
}
