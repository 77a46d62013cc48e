// Package client holds thin HTTP clients for the external services this
// backend fronts: the record-storage worker and the hosted media service.
// Every call is attempted exactly once; retry policy belongs to callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beanoshub/booking-backend/internal/config"
	"github.com/beanoshub/booking-backend/internal/model"
)

// saveEndpoint is the worker route that durably stores a booking.
const saveEndpoint = "/booking/save-secure"

// maxErrBody caps how much of an upstream response is carried in an error.
const maxErrBody = 2048

// RemoteCallError describes a failed worker or notifier round trip.  Status
// is zero when the transport itself failed before a response arrived.
type RemoteCallError struct {
	Status int    // HTTP status from the remote, 0 on transport failure
	Body   string // response text (truncated) for diagnostics
	Err    error  // underlying transport or decode error, if any
}

func (e *RemoteCallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote call failed: %v", e.Err)
	}
	return fmt.Sprintf("remote call failed: status %d: %s", e.Status, e.Body)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

// WorkerClient talks to the external record-storage worker.  The credential
// for the requested access level travels in the X-App-Secret header only;
// it never appears in the URL or body where proxies and logs would see it.
type WorkerClient struct {
	cfg  config.Config
	base string
	http *http.Client
}

// NewWorkerClient builds a client with the configured outbound timeout.
func NewWorkerClient(cfg config.Config) *WorkerClient {
	return &WorkerClient{
		cfg:  cfg,
		base: strings.TrimRight(cfg.WorkerBaseURL, "/"),
		http: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Forward sends a single authenticated request to the worker and returns
// the upstream status together with the raw JSON response.  The credential
// is resolved before anything touches the network, so an unknown level or a
// missing secret can never produce a half-authenticated request.  A
// transport failure or a non-JSON response surfaces as *RemoteCallError.
func (c *WorkerClient) Forward(ctx context.Context, endpoint, method string, level config.SecretLevel, body any) (int, json.RawMessage, error) {
	secret, err := c.cfg.WorkerSecret(level)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil && method != http.MethodGet {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &RemoteCallError{Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+endpoint, reader)
	if err != nil {
		return 0, nil, &RemoteCallError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-App-Secret", secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &RemoteCallError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &RemoteCallError{Status: resp.StatusCode, Err: err}
	}
	if !json.Valid(raw) {
		return resp.StatusCode, nil, &RemoteCallError{
			Status: resp.StatusCode,
			Body:   truncate(raw),
			Err:    fmt.Errorf("worker returned non-JSON response"),
		}
	}
	return resp.StatusCode, raw, nil
}

// SaveBooking persists a booking record through the secure save endpoint
// using the write-level credential.  Any outcome other than a 2xx response
// carrying {"success": true} is an error for the caller to report.
func (c *WorkerClient) SaveBooking(ctx context.Context, rec *model.BookingRecord) error {
	status, raw, err := c.Forward(ctx, saveEndpoint, http.MethodPost, config.SecretLevelWrite, rec)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &RemoteCallError{Status: status, Body: truncate(raw)}
	}
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return &RemoteCallError{Status: status, Body: truncate(raw), Err: err}
	}
	if !out.Success {
		return &RemoteCallError{Status: status, Body: truncate(raw)}
	}
	return nil
}

func truncate(b []byte) string {
	if len(b) > maxErrBody {
		b = b[:maxErrBody]
	}
	return string(b)
}
