package repository

import (
	"context"
	"database/sql"
	"strings"
)

// SpotSearchQuery defines filters & pagination for searching listings.
// Location matches against city, state and street address; price
// bounds are in cents and inclusive.
type SpotSearchQuery struct {
	Location      string
	SpotType      string
	PriceMinCents int64
	PriceMaxCents int64
	Page          int
	PageSize      int
}

// PublicSpotRow is the listing shape returned to searchers.  It carries
// the owner's display name so the frontend never needs a second lookup.
type PublicSpotRow struct {
	ID           uint64   `json:"id"`
	Title        string   `json:"spot_title"`
	SpotType     string   `json:"spot_type"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zip_code"`
	HourlyCents  int64    `json:"hourly_rate_cents"`
	HourlyRate   float64  `json:"hourly_rate"`
	Photos       []string `json:"photos"`
	OwnerName    string   `json:"owner_name"`
	StartingDate *string  `json:"starting_date"`
	EndingDate   *string  `json:"ending_date"`
	CreatedAt    string   `json:"created_at"`
}

// Search returns listings matching the query, newest first, with the
// total match count for pagination.
func (r *SpotRepo) Search(ctx context.Context, q SpotSearchQuery) ([]PublicSpotRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.Location != "" {
		needle := "%" + strings.ToLower(q.Location) + "%"
		where = append(where,
			"(LOWER(p.city) LIKE ? OR LOWER(p.state) LIKE ? OR LOWER(p.street_address) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.SpotType != "" {
		where = append(where, "LOWER(p.spot_type) = ?")
		args = append(args, strings.ToLower(q.SpotType))
	}
	if q.PriceMinCents > 0 {
		where = append(where, "p.hourly_rate_cents >= ?")
		args = append(args, q.PriceMinCents)
	}
	if q.PriceMaxCents > 0 {
		where = append(where, "p.hourly_rate_cents <= ?")
		args = append(args, q.PriceMaxCents)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM parking_spots p
		JOIN users u ON u.id = p.user_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			p.id,
			p.spot_title,
			p.spot_type,
			CONCAT(p.street_address, IF(p.unit IS NULL OR p.unit = '', '', CONCAT(', ', p.unit))) AS address,
			p.city,
			p.state,
			p.zip_code,
			p.hourly_rate_cents,
			p.photo1_url, p.photo2_url, p.photo3_url, p.photo4_url, p.photo5_url,
			DATE_FORMAT(p.starting_date, '%Y-%m-%d') AS starting_date,
			DATE_FORMAT(p.ending_date,   '%Y-%m-%d') AS ending_date,
			DATE_FORMAT(p.created_at, '%Y-%m-%d %T') AS created_at,
			u.username, u.first_name, u.last_name
		FROM parking_spots p
		JOIN users u ON u.id = p.user_id
		WHERE ` + cond + `
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicSpotRow, 0, limit)
	for rows.Next() {
		var (
			d                     PublicSpotRow
			photos                [5]sql.NullString
			startDate, endDate    sql.NullString
			username, first, last sql.NullString
		)
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.SpotType,
			&d.Address,
			&d.City,
			&d.State,
			&d.ZipCode,
			&d.HourlyCents,
			&photos[0], &photos[1], &photos[2], &photos[3], &photos[4],
			&startDate,
			&endDate,
			&d.CreatedAt,
			&username, &first, &last,
		); err != nil {
			return nil, 0, err
		}
		d.HourlyRate = float64(d.HourlyCents) / 100.0
		d.Photos = make([]string, 0, 5)
		for _, p := range photos {
			if p.Valid && p.String != "" {
				d.Photos = append(d.Photos, p.String)
			}
		}
		d.StartingDate = optString(startDate)
		d.EndingDate = optString(endDate)
		switch {
		case first.Valid && first.String != "" && last.Valid:
			name := strings.TrimSpace(first.String + " " + last.String)
			d.OwnerName = name
		default:
			d.OwnerName = username.String
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
