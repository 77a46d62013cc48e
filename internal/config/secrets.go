package config

// This file maps logical access levels onto the worker credentials held in
// process configuration.  Resolution fails closed: an unrecognized level or
// an unconfigured credential is rejected before any outbound request is
// built, so a misdeployment can never fall back to a broader secret.

import (
	"errors"
	"fmt"
	"strings"
)

// SecretLevel is the access-scope tag attached to proxied worker calls.
type SecretLevel string

const (
	SecretLevelRead  SecretLevel = "read"
	SecretLevelWrite SecretLevel = "write"
	SecretLevelAdmin SecretLevel = "admin"
)

// ErrUnknownSecretLevel is returned for a level outside the enumeration.
// Handlers should translate it into an HTTP 400 response.
var ErrUnknownSecretLevel = errors.New("unknown secret level")

// ErrSecretNotConfigured is returned when the level is valid but the
// corresponding credential is absent from the deployment configuration.
// Handlers should translate it into an HTTP 500 response.
var ErrSecretNotConfigured = errors.New("secret not configured")

// ParseSecretLevel validates a client-supplied level string.
func ParseSecretLevel(s string) (SecretLevel, error) {
	switch SecretLevel(strings.ToLower(strings.TrimSpace(s))) {
	case SecretLevelRead:
		return SecretLevelRead, nil
	case SecretLevelWrite:
		return SecretLevelWrite, nil
	case SecretLevelAdmin:
		return SecretLevelAdmin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSecretLevel, s)
}

// WorkerSecret resolves the credential for a level.  The mapping is
// exhaustive over the SecretLevel constants; anything else fails with
// ErrUnknownSecretLevel.
func (c Config) WorkerSecret(level SecretLevel) (string, error) {
	var secret string
	switch level {
	case SecretLevelRead:
		secret = c.ReadSecret
	case SecretLevelWrite:
		secret = c.WriteSecret
	case SecretLevelAdmin:
		secret = c.AdminSecret
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSecretLevel, level)
	}
	if secret == "" {
		return "", fmt.Errorf("%w: level %q", ErrSecretNotConfigured, level)
	}
	return secret, nil
}
