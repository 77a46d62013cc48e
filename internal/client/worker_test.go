package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanoshub/booking-backend/internal/config"
	"github.com/beanoshub/booking-backend/internal/model"
)

func workerConfig(baseURL string) config.Config {
	return config.Config{
		WorkerBaseURL: baseURL,
		ReadSecret:    "read-secret",
		WriteSecret:   "write-secret",
		AdminSecret:   "admin-secret",
		HTTPTimeout:   2 * time.Second,
	}
}

func TestSaveBookingSendsCredentialInHeader(t *testing.T) {
	var gotHeader, gotPath, gotMethod string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-App-Secret")
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		assert.Empty(t, r.URL.RawQuery, "credential must never ride in the query string")
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer ts.Close()

	wc := NewWorkerClient(workerConfig(ts.URL))
	err := wc.SaveBooking(context.Background(), &model.BookingRecord{ID: "BK-1", Name: "Asha"})
	require.NoError(t, err)

	assert.Equal(t, "write-secret", gotHeader)
	assert.Equal(t, "/booking/save-secure", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Contains(t, string(gotBody), `"bookingId":"BK-1"`)
}

func TestSaveBookingNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "bad secret"})
	}))
	defer ts.Close()

	err := NewWorkerClient(workerConfig(ts.URL)).SaveBooking(context.Background(), &model.BookingRecord{ID: "BK-2"})
	var rce *RemoteCallError
	require.ErrorAs(t, err, &rce)
	assert.Equal(t, http.StatusForbidden, rce.Status)
	assert.Contains(t, rce.Body, "bad secret")
}

func TestSaveBookingUnsuccessfulBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": false})
	}))
	defer ts.Close()

	err := NewWorkerClient(workerConfig(ts.URL)).SaveBooking(context.Background(), &model.BookingRecord{ID: "BK-3"})
	var rce *RemoteCallError
	require.ErrorAs(t, err, &rce)
	assert.Equal(t, http.StatusOK, rce.Status, "a 200 carrying success:false is still a failed save")
}

func TestSaveBookingTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	err := NewWorkerClient(workerConfig(ts.URL)).SaveBooking(context.Background(), &model.BookingRecord{ID: "BK-4"})
	var rce *RemoteCallError
	require.ErrorAs(t, err, &rce)
	assert.Zero(t, rce.Status)
	assert.Error(t, rce.Err)
}

func TestForwardNonJSONResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>worker exploded</html>"))
	}))
	defer ts.Close()

	_, _, err := NewWorkerClient(workerConfig(ts.URL)).Forward(
		context.Background(), "/booking/list", http.MethodGet, config.SecretLevelRead, nil)
	var rce *RemoteCallError
	require.ErrorAs(t, err, &rce)
	assert.Contains(t, rce.Body, "worker exploded")
}

func TestForwardFailsClosedBeforeNetwork(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	// Unknown level is rejected without a request.
	cfg := workerConfig(ts.URL)
	_, _, err := NewWorkerClient(cfg).Forward(
		context.Background(), "/x", http.MethodPost, config.SecretLevel("root"), nil)
	assert.ErrorIs(t, err, config.ErrUnknownSecretLevel)

	// Valid level with no configured credential likewise.
	cfg.WriteSecret = ""
	_, _, err = NewWorkerClient(cfg).Forward(
		context.Background(), "/x", http.MethodPost, config.SecretLevelWrite, nil)
	assert.ErrorIs(t, err, config.ErrSecretNotConfigured)

	assert.Zero(t, calls.Load(), "no network call may precede credential resolution")
}

func TestForwardGetOmitsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.Empty(t, b)
		_, _ = w.Write([]byte(`{"success":true,"rows":[]}`))
	}))
	defer ts.Close()

	status, raw, err := NewWorkerClient(workerConfig(ts.URL)).Forward(
		context.Background(), "/booking/list", http.MethodGet, config.SecretLevelRead, map[string]string{"ignored": "yes"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true,"rows":[]}`, string(raw))
}
