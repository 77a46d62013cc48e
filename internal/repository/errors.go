// Package repository persists the one piece of state this service owns:
// admin refresh tokens.  Sentinel errors let handlers distinguish failure
// scenarios without inspecting storage details.
package repository

import "errors"

// ErrTokenUnknown is returned when a refresh token hash is not present in
// the store, either because it was never issued, already revoked, or its
// TTL elapsed.  Handlers should translate this into an HTTP 403 response.
var ErrTokenUnknown = errors.New("refresh token unknown or expired")

// ErrStoreUnavailable is returned when the backing store cannot be reached.
// Handlers should translate this into an HTTP 503 response.
var ErrStoreUnavailable = errors.New("token store unavailable")
