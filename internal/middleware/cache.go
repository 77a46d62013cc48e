package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/beanoshub/booking-backend/internal/config"
)

// cachedResponse is the stored form of a cacheable reply.
type cachedResponse struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// CacheGET returns a middleware that serves identical GET responses from
// Redis for the configured TTL.  It is applied only to the media listing
// route, whose handler fans out to the hosted media service on every miss.
// Only 200 responses are stored; errors always go back to the handler.
func CacheGET(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cfg.Prefix + ":" + c.Request().URL.RequestURI()
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var stored cachedResponse
				if json.Unmarshal(raw, &stored) == nil {
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(http.StatusOK, stored.ContentType, stored.Body)
				}
			} else if !errors.Is(err, redis.Nil) {
				// Redis trouble: skip caching for this request.
				return next(c)
			}

			// Capture the handler's output so a 200 can be stored.
			rec := &captureWriter{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status == http.StatusOK {
				stored, err := json.Marshal(cachedResponse{
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        rec.buf.Bytes(),
				})
				if err == nil {
					_ = rdb.Set(ctx, key, stored, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}

// captureWriter tees the response body while it streams to the client.
type captureWriter struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}
