package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/database"
	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/router"
	queue_publisher "github.com/iliyamo/restaurant-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	reservations := repository.NewReservationRepo(db)
	tables := repository.NewTableRepo(db)

	resHandler := &handler.ReservationHandler{Store: reservations, Hours: cfg.Hours()}
	tblHandler := &handler.TableHandler{
		Tables:       tables,
		Reservations: reservations,
		Events:       queue_publisher.Publisher{},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Redis is optional: without it the limiter and cache become
	// pass-throughs and the service still works.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	opts := router.Options{
		Cache: middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	}
	if cfg.JWTSecret != "" {
		opts.StaffGuard = middleware.StaffAuth(cfg.JWTSecret)
	}
	router.Register(e, resHandler, tblHandler, opts)

	// Background consumer mirroring seating activity to logs/seating.log.
	go func() {
		if err := queue.StartSeatingConsumer(); err != nil {
			log.Printf("seating consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
