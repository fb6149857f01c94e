package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/curbspot/curbspot/internal/model"
	"github.com/curbspot/curbspot/internal/utils"
)

// UserRepo provides access to the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, username, email, password_hash, first_name, last_name,
	phone_number, address, avatar_url, created_at, updated_at`

// Create inserts a user and returns its ID.  It checks for an existing
// email or username first so the caller can report which one clashed;
// the unique indexes on both columns remain the last line of defence
// against races.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	var existingEmail, existingUsername string
	err := r.DB.QueryRowContext(ctx,
		"SELECT email, username FROM users WHERE email=? OR username=? LIMIT 1",
		email, username).Scan(&existingEmail, &existingUsername)
	switch {
	case err == nil:
		if existingEmail == email {
			return 0, ErrEmailExists
		}
		return 0, ErrUsernameExists
	case err != sql.ErrNoRows:
		return 0, err
	}

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		username, email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var (
		u                                        model.User
		firstName, lastName, phone, addr, avatar sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&firstName, &lastName, &phone, &addr, &avatar,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.FirstName = optString(firstName)
	u.LastName = optString(lastName)
	u.PhoneNumber = optString(phone)
	u.Address = optString(addr)
	u.AvatarURL = optString(avatar)
	return u, nil
}

// ProfileUpdate carries the mutable profile fields for UpdateProfile.
// AvatarURL is only applied when non-nil so that profile edits made
// without a new avatar keep the existing picture (COALESCE semantics).
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	Username    string
	Email       string
	PhoneNumber string
	Address     string
	AvatarURL   *string
}

// UpdateProfile writes the profile fields for a user.  It returns
// sql.ErrNoRows when the user does not exist.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, p ProfileUpdate) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users
		 SET first_name=?, last_name=?, username=?, email=?, phone_number=?, address=?,
		     avatar_url=COALESCE(?, avatar_url), updated_at=CURRENT_TIMESTAMP
		 WHERE id=?`,
		p.FirstName, p.LastName, strings.TrimSpace(p.Username),
		strings.ToLower(strings.TrimSpace(p.Email)), p.PhoneNumber, p.Address,
		p.AvatarURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stats counts a user's bookings and listed spots for the profile page.
func (r *UserRepo) Stats(ctx context.Context, id uint64) (bookings, spots int64, err error) {
	if err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE user_id=?", id).Scan(&bookings); err != nil {
		return 0, 0, err
	}
	if err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM parking_spots WHERE user_id=?", id).Scan(&spots); err != nil {
		return 0, 0, err
	}
	return bookings, spots, nil
}

func optString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
