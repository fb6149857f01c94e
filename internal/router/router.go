// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/curbspot/curbspot/internal/handler"
	"github.com/curbspot/curbspot/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Spots   *handler.SpotHandler
	Profile *handler.ProfileHandler
	Booking *handler.BookingHandler
	Health  echo.HandlerFunc

	// SearchCache, when set, is applied only to the spot search route.
	SearchCache echo.MiddlewareFunc
}

// Register mounts all API routes under /api.  Auth endpoints and spot
// search are public; everything else requires a valid access token.
// Rate limiting and the response cache are applied by the caller as
// group-level middleware before handlers run.
func Register(e *echo.Echo, h Handlers, jwtSecret string, extra ...echo.MiddlewareFunc) {
	api := e.Group("/api", extra...)

	api.GET("/health", h.Health)

	// Session endpoints; none of these require an existing token.
	auth := api.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Spot search is open so guests can browse before signing up.
	if h.SearchCache != nil {
		api.GET("/spots/search", h.Spots.Search, h.SearchCache)
	} else {
		api.GET("/spots/search", h.Spots.Search)
	}

	// Everything below requires a valid access token.
	priv := api.Group("", middleware.JWTAuth(jwtSecret))
	priv.GET("/me", h.Auth.Me)
	// Mounted again behind JWT so an access token alone can revoke all
	// of the user's sessions.
	priv.POST("/logout", h.Auth.Logout)

	priv.POST("/spots", h.Spots.Create)
	priv.DELETE("/spots/:id", h.Spots.Delete)

	priv.GET("/profile/:id", h.Profile.Get)
	priv.PUT("/profile/:id", h.Profile.Update)
	priv.GET("/profile/:id/spots", h.Profile.ListSpots)
	priv.GET("/profile/:id/bookings", h.Booking.List)

	priv.POST("/bookings", h.Booking.Create)
	priv.PUT("/bookings/:id/cancel", h.Booking.Cancel)
}
