package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/curbspot/curbspot/internal/booking"
	"github.com/curbspot/curbspot/internal/queue"
	"github.com/curbspot/curbspot/internal/repository"
	queue_publisher "github.com/curbspot/curbspot/internal/service"
)

// BookingHandler serves booking creation, cancellation and listing.
// The allocator enforces the actual booking rules; this layer only
// translates between HTTP and the allocator's sentinel errors.
type BookingHandler struct {
	Alloc    *booking.Allocator
	Bookings *repository.BookingRepo
	Spots    *repository.SpotRepo
}

func NewBookingHandler(alloc *booking.Allocator, bookings *repository.BookingRepo, spots *repository.SpotRepo) *BookingHandler {
	if alloc == nil || bookings == nil || spots == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Alloc: alloc, Bookings: bookings, Spots: spots}
}

type createBookingReq struct {
	SpotID    uint64 `json:"spot_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Create books a spot for the requested window. On success it returns
// the stored booking with its cost and publishes a booking.confirmed
// event; publishing happens off the request path so a slow broker never
// delays the response.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SpotID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "spot_id required"})
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC3339"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Alloc.Create(ctx, uid, req.SpotID, start, end)
	if err != nil {
		return bookingError(c, err)
	}

	detail, err := h.Bookings.Detail(ctx, b.ID)
	if err != nil {
		// The booking committed; report it even if the join query failed.
		log.Printf("booking: load detail for %d failed: %v", b.ID, err)
		return c.JSON(http.StatusCreated, echo.Map{
			"id":         b.ID,
			"spot_id":    b.SpotID,
			"total_cost": float64(b.TotalCostCents) / 100.0,
			"status":     string(b.Status),
		})
	}

	go publishConfirmed(b.ID, uid, b.SpotID, detail, b.TotalCostCents)

	return c.JSON(http.StatusCreated, detail)
}

func publishConfirmed(bookingID, userID, spotID uint64, d repository.BookingDetail, costCents int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:      bookingID,
		UserID:         userID,
		SpotID:         spotID,
		SpotTitle:      d.Title,
		Address:        d.Address,
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		TotalCostCents: costCents,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// Cancel marks one of the caller's bookings cancelled.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Alloc.Cancel(ctx, id, uid); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

// List returns the caller's bookings with their spot snapshots, newest
// first. Users can only see their own bookings.
func (h *BookingHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot view another user's bookings"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Bookings.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// bookingError maps allocator sentinel errors onto HTTP responses.
func bookingError(c echo.Context, err error) error {
	switch err {
	case booking.ErrInvalidInterval, booking.ErrPastStart, booking.ErrTooShort, booking.ErrOwnSpot,
		booking.ErrAlreadyCancelled, booking.ErrCompleted:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case booking.ErrSpotNotFound, booking.ErrBookingNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case booking.ErrNotBooker:
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case booking.ErrSlotTaken:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking operation failed"})
}
