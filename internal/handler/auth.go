package handler

import (
	"context"  // context bounds token store calls
	"errors"   // sentinel error matching
	"net/http" // HTTP status codes and primitives
	"strings"  // input trimming
	"time"     // timeouts and TTL arithmetic

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/beanoshub/booking-backend/internal/config"     // app configuration
	"github.com/beanoshub/booking-backend/internal/repository" // token store errors
	"github.com/beanoshub/booking-backend/internal/utils"      // token issuing and PIN verification
)

// RefreshStore persists refresh-token hashes with expiry.  Satisfied by
// repository.TokenRepo; the interface keeps the handler testable without a
// live store.
type RefreshStore interface {
	StoreRefresh(ctx context.Context, tokenHash string, ttl time.Duration) error
	ValidateRefresh(ctx context.Context, tokenHash string) error
	Revoke(ctx context.Context, tokenHash string) error
}

// AuthHandler bundles dependencies for the admin auth endpoints.  There is
// a single operator identity: whoever presents the correct PIN gets the
// ADMIN role.
type AuthHandler struct {
	Cfg    config.Config
	Tokens RefreshStore
}

func NewAuthHandler(cfg config.Config, t RefreshStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Tokens: t}
}

// RoleAdmin is the only role this service issues.
const RoleAdmin = "ADMIN"

// ----- DTOs -----

type pinReq struct {
	PIN string `json:"pin"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// Login verifies the admin PIN against its bcrypt hash and returns a fresh
// access/refresh token pair.  The refresh token is stored hashed with a TTL
// so restarts neither lose nor resurrect sessions.
func (h *AuthHandler) Login(c echo.Context) error {
	var req pinReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.PIN) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "pin required"})
	}
	if !utils.VerifyPIN(h.Cfg.AdminPINHash, req.PIN) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid PIN"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue refresh failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ttl := time.Duration(h.Cfg.RefreshTTLDays) * 24 * time.Hour
	if err := h.Tokens.StoreRefresh(ctx, utils.HashRefreshRaw(refresh.Raw), ttl); err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "error": "token store unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"accessToken":  access.Token,
		"refreshToken": refresh.Raw, // raw back to client; only the hash is stored
	})
}

// Refresh validates a refresh token by hash lookup and returns a new access
// token without rotating the refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Invalid or expired refresh token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.ValidateRefresh(ctx, utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))); err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "error": "token store unavailable"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Invalid or expired refresh token"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "accessToken": access.Token})
}

// Logout revokes a refresh token.  Revoking a token that is already gone
// still reports success; the session no longer exists either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "refreshToken required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.Revoke(ctx, utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))); err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "error": "token store unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
