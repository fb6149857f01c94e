package handler

import (
	"context"
	"database/sql"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/curbspot/curbspot/internal/model"
	"github.com/curbspot/curbspot/internal/repository"
)

// SpotHandler serves listing endpoints: creating, searching and
// deleting parking spots.
type SpotHandler struct {
	Spots *repository.SpotRepo
}

func NewSpotHandler(spots *repository.SpotRepo) *SpotHandler {
	if spots == nil {
		panic("nil repository passed to NewSpotHandler")
	}
	return &SpotHandler{Spots: spots}
}

type createSpotReq struct {
	SpotTitle            string   `json:"spot_title"`
	SpotType             string   `json:"spot_type"`
	StreetAddress        string   `json:"street_address"`
	Unit                 string   `json:"unit"`
	City                 string   `json:"city"`
	State                string   `json:"state"`
	ZipCode              string   `json:"zip_code"`
	LocationInstructions string   `json:"location_instructions"`
	HourlyRate           float64  `json:"hourly_rate"`
	Photos               []string `json:"photos"`
	StartingDate         string   `json:"starting_date"`
	EndingDate           string   `json:"ending_date"`
}

// Create registers a new parking spot owned by the authenticated user.
func (h *SpotHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createSpotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.SpotTitle = strings.TrimSpace(req.SpotTitle)
	req.StreetAddress = strings.TrimSpace(req.StreetAddress)
	if req.SpotTitle == "" || req.StreetAddress == "" || req.City == "" || req.State == "" || req.ZipCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and full address required"})
	}
	if req.HourlyRate < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly_rate must be non-negative"})
	}
	if len(req.Photos) > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at most 5 photos"})
	}

	s := model.Spot{
		UserID:               uid,
		SpotTitle:            req.SpotTitle,
		SpotType:             strings.TrimSpace(req.SpotType),
		StreetAddress:        req.StreetAddress,
		City:                 strings.TrimSpace(req.City),
		State:                strings.TrimSpace(req.State),
		ZipCode:              strings.TrimSpace(req.ZipCode),
		LocationInstructions: strings.TrimSpace(req.LocationInstructions),
		HourlyRateCents:      int64(math.Round(req.HourlyRate * 100)),
	}
	if u := strings.TrimSpace(req.Unit); u != "" {
		s.Unit = &u
	}
	for i, p := range req.Photos {
		if i >= len(s.Photos) {
			break
		}
		if p != "" {
			url := p
			s.Photos[i] = &url
		}
	}
	if req.StartingDate != "" {
		t, err := time.Parse("2006-01-02", req.StartingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "starting_date must be YYYY-MM-DD"})
		}
		s.StartingDate = &t
	}
	if req.EndingDate != "" {
		t, err := time.Parse("2006-01-02", req.EndingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ending_date must be YYYY-MM-DD"})
		}
		s.EndingDate = &t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Spots.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create spot failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":          s.ID,
		"spot_title":  s.SpotTitle,
		"address":     s.Address(),
		"hourly_rate": float64(s.HourlyRateCents) / 100.0,
		"photos":      s.PhotoURLs(),
	})
}

// Search lists spots matching optional location, type and price
// filters. Results are paginated and include the total count.
func (h *SpotHandler) Search(c echo.Context) error {
	q := repository.SpotSearchQuery{
		Location: strings.TrimSpace(c.QueryParam("location")),
		SpotType: strings.TrimSpace(c.QueryParam("spot_type")),
		Page:     1,
		PageSize: 20,
	}
	if v := c.QueryParam("price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price_min"})
		}
		q.PriceMinCents = int64(math.Round(f * 100))
	}
	if v := c.QueryParam("price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price_max"})
		}
		q.PriceMaxCents = int64(math.Round(f * 100))
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Page = n
		}
	}
	if v := c.QueryParam("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			q.PageSize = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Spots.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"spots":     rows,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// Delete removes a listing owned by the authenticated user.
func (h *SpotHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid spot id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Spots.DeleteOwned(ctx, id, uid); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this spot"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
