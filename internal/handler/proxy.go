package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/beanoshub/booking-backend/internal/config"
)

// WorkerForwarder relays one authenticated request to the storage worker.
// Satisfied by client.WorkerClient.
type WorkerForwarder interface {
	Forward(ctx context.Context, endpoint, method string, level config.SecretLevel, body any) (int, json.RawMessage, error)
}

// ProxyHandler exposes the storage worker to the admin frontend without
// ever handing worker credentials to the browser: the client names an
// access level, the server injects the matching secret.
type ProxyHandler struct {
	Cfg    config.Config
	Worker WorkerForwarder
}

func NewProxyHandler(cfg config.Config, w WorkerForwarder) *ProxyHandler {
	return &ProxyHandler{Cfg: cfg, Worker: w}
}

type proxyReq struct {
	Endpoint    string          `json:"endpoint"`
	Method      string          `json:"method"`
	Body        json.RawMessage `json:"body"`
	SecretLevel string          `json:"secretLevel"`
}

// ForwardWorker handles POST /api/proxy-worker.  The worker's status code
// and JSON body are relayed verbatim; only credential resolution and
// transport failures produce responses of this server's own making.
func (p *ProxyHandler) ForwardWorker(c echo.Context) error {
	var req proxyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	level, err := config.ParseSecretLevel(req.SecretLevel)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid secret level requested."})
	}
	if !strings.HasPrefix(req.Endpoint, "/") {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "endpoint must start with /"})
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "unsupported method"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), p.Cfg.HTTPTimeout+time.Second)
	defer cancel()

	var body any
	if len(req.Body) > 0 {
		body = req.Body
	}
	status, raw, err := p.Worker.Forward(ctx, req.Endpoint, method, level, body)
	if err != nil {
		if errors.Is(err, config.ErrSecretNotConfigured) {
			log.Printf("proxy-worker: secret for level %q not configured", level)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server configuration error: Missing required secret."})
		}
		if errors.Is(err, config.ErrUnknownSecretLevel) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid secret level requested."})
		}
		log.Printf("proxy-worker: forward failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Internal Server Error forwarding request."})
	}
	return c.JSONBlob(status, raw)
}
