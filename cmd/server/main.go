package main // Entry point package

import (
	"log" // Logging library

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo built-in middleware (CORS, recover)

	"github.com/beanoshub/booking-backend/internal/client"
	"github.com/beanoshub/booking-backend/internal/config"
	"github.com/beanoshub/booking-backend/internal/handler"
	"github.com/beanoshub/booking-backend/internal/notify"
	"github.com/beanoshub/booking-backend/internal/queue"
	"github.com/beanoshub/booking-backend/internal/repository"
	"github.com/beanoshub/booking-backend/internal/router"
	queue_publisher "github.com/beanoshub/booking-backend/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	// Redis backs the token store, rate limiter and response cache.  A nil
	// client disables the latter two and turns token endpoints into 503s.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and caching disabled")
	}

	tokens := repository.NewTokenRepo(rdb)
	worker := client.NewWorkerClient(cfg)
	media := client.NewMediaClient(cfg)
	notifier := notify.New(cfg)

	auth := handler.NewAuthHandler(cfg, tokens)
	pay := handler.NewPaymentHandler(cfg, worker, notifier, queue_publisher.PublishBookingConfirmed)
	prx := handler.NewProxyHandler(cfg, worker)
	upi := handler.NewUPIHandler(cfg)
	mediaH := handler.NewMediaHandler(cfg, media)

	// The audit-log consumer reconnects forever on its own.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover()) // unexpected panics become logged 500s
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, config.LoadRateLimitConfig(), rdb)
	router.RegisterBooking(e, pay, prx, upi)
	router.RegisterMedia(e, mediaH, cfg.JWTSecret, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
