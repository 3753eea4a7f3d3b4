package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/concert-seat-reservation/internal/config"
	"github.com/iliyamo/concert-seat-reservation/internal/handler"
	"github.com/iliyamo/concert-seat-reservation/internal/middleware"
	"github.com/iliyamo/concert-seat-reservation/internal/queue"
	"github.com/iliyamo/concert-seat-reservation/internal/repository"
	"github.com/iliyamo/concert-seat-reservation/internal/router"
)

func main() {
	// A missing .env is fine; the environment may be set by the runtime.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	concerts := repository.NewConcertRepo()
	reservations := repository.NewReservationRepo(concerts)

	e := echo.New()
	e.HideBanner = true

	// Redis is optional; without it rate limiting and caching become
	// pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterConcerts(e, handler.NewConcertHandler(concerts, reservations))
	router.RegisterReservations(e, handler.NewReservationHandler(concerts, reservations, cfg.PublishEvents))

	if cfg.PublishEvents {
		go func() {
			if err := queue.StartReservationConsumer(); err != nil {
				log.Printf("reservation consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
