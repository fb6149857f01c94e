package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/curbspot/curbspot/internal/booking"
	"github.com/curbspot/curbspot/internal/config"
	"github.com/curbspot/curbspot/internal/database"
	"github.com/curbspot/curbspot/internal/handler"
	"github.com/curbspot/curbspot/internal/middleware"
	"github.com/curbspot/curbspot/internal/queue"
	"github.com/curbspot/curbspot/internal/repository"
	"github.com/curbspot/curbspot/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs rate limiting and the search cache. A nil client
	// disables both rather than blocking startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	spots := repository.NewSpotRepo(db)
	bookings := repository.NewBookingRepo(db)

	alloc := booking.NewAllocator(spots, bookings)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	searchCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users, tokens),
		Spots:       handler.NewSpotHandler(spots),
		Profile:     handler.NewProfileHandler(users, spots),
		Booking:     handler.NewBookingHandler(alloc, bookings, spots),
		Health:      handler.Health(db),
		SearchCache: searchCache,
	}, cfg.JWTSecret, rateLimit)

	// Background consumer appends confirmed bookings to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
