package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/curbspot/curbspot/internal/repository"
)

// ProfileHandler serves user profile pages: account details, usage
// stats and the user's own listings.
type ProfileHandler struct {
	Users *repository.UserRepo
	Spots *repository.SpotRepo
}

func NewProfileHandler(users *repository.UserRepo, spots *repository.SpotRepo) *ProfileHandler {
	if users == nil || spots == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{Users: users, Spots: spots}
}

// Get returns a user's profile together with booking and listing
// counts.
func (h *ProfileHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	bookings, spots, err := h.Users.Stats(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"first_name":   u.FirstName,
		"last_name":    u.LastName,
		"phone_number": u.PhoneNumber,
		"address":      u.Address,
		"avatar_url":   u.AvatarURL,
		"member_since": u.CreatedAt.UTC().Format("2006-01-02"),
		"stats": echo.Map{
			"bookings": bookings,
			"spots":    spots,
		},
	})
}

type updateProfileReq struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Address     string  `json:"address"`
	AvatarURL   *string `json:"avatar_url"`
}

// Update writes a user's profile fields. Users may only edit their own
// profile; a nil avatar_url leaves the current picture in place.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot edit another user's profile"})
	}

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Users.UpdateProfile(ctx, id, repository.ProfileUpdate{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Address:     strings.TrimSpace(req.Address),
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

// ListSpots returns the spots a user has listed, newest first.
func (h *ProfileHandler) ListSpots(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	spots, err := h.Spots.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]echo.Map, 0, len(spots))
	for _, s := range spots {
		out = append(out, echo.Map{
			"id":            s.ID,
			"spot_title":    s.SpotTitle,
			"spot_type":     s.SpotType,
			"address":       s.Address(),
			"hourly_rate":   float64(s.HourlyRateCents) / 100.0,
			"photos":        s.PhotoURLs(),
			"starting_date": s.StartingDate,
			"ending_date":   s.EndingDate,
			"created_at":    s.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"spots": out})
}
