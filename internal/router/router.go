package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/beanoshub/booking-backend/internal/config"     // configuration for middleware wiring
	"github.com/beanoshub/booking-backend/internal/handler"    // import the handlers that implement business logic
	"github.com/beanoshub/booking-backend/internal/middleware" // middleware for JWT auth, rate limiting and caching
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the PIN login and token endpoints.  Login sits
// behind the rate limiter: the PIN is the sole credential guarding the
// admin surface, so guessing has to be expensive.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rl config.RateLimitConfig, rdb *redis.Client) {
	e.POST("/api/auth", a.Login, middleware.RateLimit(rl, rdb))
	e.POST("/api/refresh-token", a.Refresh)
	e.POST("/api/logout", a.Logout)
}

// RegisterBooking registers the payment-confirmation endpoint, the worker
// proxy and the UPI helpers.  The confirmation endpoint is deliberately
// unauthenticated: it is the gateway callback surface, and the HMAC
// signature is its authentication.
func RegisterBooking(e *echo.Echo, pay *handler.PaymentHandler, prx *handler.ProxyHandler, upi *handler.UPIHandler) {
	e.POST("/verify-payment", pay.VerifyPayment)
	e.POST("/api/proxy-worker", prx.ForwardWorker)
	e.GET("/api/upi-details", upi.Details)
	e.GET("/api/pay-upi", upi.Pay)
}

// RegisterMedia registers the theatre image endpoints.  Uploading requires
// an admin access token; the public listing is served through the response
// cache so the media service is hit at most once per TTL.
func RegisterMedia(e *echo.Echo, m *handler.MediaHandler, jwtSecret string, cache config.CacheConfig, rdb *redis.Client) {
	e.GET("/api/images", m.Images, middleware.CacheGET(cache, rdb))

	up := e.Group("/upload")
	up.Use(middleware.JWTAuth(jwtSecret))
	up.Use(middleware.RequireRole(handler.RoleAdmin))
	up.POST("/:theatre", m.Upload)
}
