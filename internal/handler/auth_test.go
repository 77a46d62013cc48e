package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanoshub/booking-backend/internal/config"
	"github.com/beanoshub/booking-backend/internal/repository"
	"github.com/beanoshub/booking-backend/internal/utils"
)

// memStore is an in-memory RefreshStore honoring TTLs.
type memStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func newMemStore() *memStore { return &memStore{tokens: map[string]time.Time{}} }

func (m *memStore) StoreRefresh(ctx context.Context, hash string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[hash] = time.Now().Add(ttl)
	return nil
}

func (m *memStore) ValidateRefresh(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.tokens[hash]
	if !ok || time.Now().After(exp) {
		return repository.ErrTokenUnknown
	}
	return nil
}

func (m *memStore) Revoke(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, hash)
	return nil
}

func authConfig(t *testing.T) config.Config {
	t.Helper()
	hash, err := utils.HashPIN("140599", 4) // minimal cost keeps the test fast
	require.NoError(t, err)
	return config.Config{
		AdminPINHash:   hash,
		JWTSecret:      "jwt-test-secret",
		AccessTTLMin:   30,
		RefreshTTLDays: 30,
	}
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestLoginIssuesTokenPair(t *testing.T) {
	store := newMemStore()
	h := NewAuthHandler(authConfig(t), store)

	rec := postJSON(t, h.Login, "/api/auth", `{"pin":"140599"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Success      bool   `json:"success"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.AccessToken)
	assert.Len(t, out.RefreshToken, 96, "48 random bytes hex-encoded")

	// Only the hash reaches the store.
	assert.NoError(t, store.ValidateRefresh(context.Background(), utils.HashRefreshRaw(out.RefreshToken)))
	assert.Error(t, store.ValidateRefresh(context.Background(), out.RefreshToken))
}

func TestLoginRejectsWrongPIN(t *testing.T) {
	h := NewAuthHandler(authConfig(t), newMemStore())

	rec := postJSON(t, h.Login, "/api/auth", `{"pin":"000000"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid PIN")
}

func TestRefreshFlow(t *testing.T) {
	store := newMemStore()
	h := NewAuthHandler(authConfig(t), store)

	login := postJSON(t, h.Login, "/api/auth", `{"pin":"140599"}`)
	var issued struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &issued))

	rec := postJSON(t, h.Refresh, "/api/refresh-token", `{"refreshToken":"`+issued.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Success     bool   `json:"success"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.AccessToken)

	// Refresh does not rotate: the same token keeps working.
	again := postJSON(t, h.Refresh, "/api/refresh-token", `{"refreshToken":"`+issued.RefreshToken+`"}`)
	assert.Equal(t, http.StatusOK, again.Code)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	h := NewAuthHandler(authConfig(t), newMemStore())

	rec := postJSON(t, h.Refresh, "/api/refresh-token", `{"refreshToken":"never-issued"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired refresh token")
}

func TestLogoutRevokes(t *testing.T) {
	store := newMemStore()
	h := NewAuthHandler(authConfig(t), store)

	login := postJSON(t, h.Login, "/api/auth", `{"pin":"140599"}`)
	var issued struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &issued))

	rec := postJSON(t, h.Logout, "/api/logout", `{"refreshToken":"`+issued.RefreshToken+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	after := postJSON(t, h.Refresh, "/api/refresh-token", `{"refreshToken":"`+issued.RefreshToken+`"}`)
	assert.Equal(t, http.StatusForbidden, after.Code)
}
