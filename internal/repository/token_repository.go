package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepo stores refresh tokens in Redis, keyed by the SHA-256 hash of
// the raw token.  Expiry is delegated to the store's TTL, so a restart
// never resurrects or loses sessions, and revocation is a plain delete.
// Only hashes ever reach the store; the raw token exists solely on the
// client.
type TokenRepo struct {
	rdb    *redis.Client
	prefix string
}

func NewTokenRepo(rdb *redis.Client) *TokenRepo {
	return &TokenRepo{rdb: rdb, prefix: "refresh:"}
}

// StoreRefresh records a token hash with the given lifetime.
func (r *TokenRepo) StoreRefresh(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if r.rdb == nil {
		return ErrStoreUnavailable
	}
	if err := r.rdb.Set(ctx, r.prefix+tokenHash, time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}

// ValidateRefresh checks that a non-expired, non-revoked token exists for
// the hash.  Expired entries vanish on their own via TTL.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) error {
	if r.rdb == nil {
		return ErrStoreUnavailable
	}
	err := r.rdb.Get(ctx, r.prefix+tokenHash).Err()
	if errors.Is(err, redis.Nil) {
		return ErrTokenUnknown
	}
	if err != nil {
		return ErrStoreUnavailable
	}
	return nil
}

// Revoke deletes a stored token hash.  Revoking an already-absent token is
// not an error; the session is gone either way.
func (r *TokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	if r.rdb == nil {
		return ErrStoreUnavailable
	}
	if err := r.rdb.Del(ctx, r.prefix+tokenHash).Err(); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}
