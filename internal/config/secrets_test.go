package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSecretLevel(t *testing.T) {
	for _, in := range []string{"read", "READ", " Read "} {
		lvl, err := ParseSecretLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, SecretLevelRead, lvl)
	}

	for _, in := range []string{"", "root", "admin;", "superadmin"} {
		_, err := ParseSecretLevel(in)
		assert.ErrorIs(t, err, ErrUnknownSecretLevel, "input %q", in)
	}
}

func TestWorkerSecretResolution(t *testing.T) {
	cfg := Config{
		ReadSecret:  "r-secret",
		WriteSecret: "w-secret",
		AdminSecret: "a-secret",
	}

	for lvl, want := range map[SecretLevel]string{
		SecretLevelRead:  "r-secret",
		SecretLevelWrite: "w-secret",
		SecretLevelAdmin: "a-secret",
	} {
		got, err := cfg.WorkerSecret(lvl)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestWorkerSecretFailsClosed(t *testing.T) {
	cfg := Config{ReadSecret: "r-secret"}

	// Unrecognized level never falls back to any credential.
	_, err := cfg.WorkerSecret(SecretLevel("root"))
	assert.ErrorIs(t, err, ErrUnknownSecretLevel)

	// Valid level with no deployed credential is rejected too.
	_, err = cfg.WorkerSecret(SecretLevelWrite)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}
