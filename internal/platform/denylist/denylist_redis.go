// Package denylist records revoked access tokens until their natural expiry.
package denylist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DenylistRedis stores revoked token IDs in Redis with a TTL equal to the
// token's remaining lifetime, so entries disappear once the token would have expired anyway.
type DenylistRedis struct {
	client *redis.Client
	prefix string
}

// NewDenylistRedis creates a new DenylistRedis instance.
func NewDenylistRedis(client *redis.Client, prefix string) *DenylistRedis {
	if prefix == "" {
		prefix = "denylist"
	}
	return &DenylistRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for a token ID.
func (r *DenylistRedis) tokenKey(tokenID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, tokenID)
}

// Revoke marks tokenID as revoked for ttl.
func (r *DenylistRedis) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id must not be empty")
	}
	if ttl <= 0 {
		// Already expired; verification rejects it without our help
		return nil
	}
	if err := r.client.Set(ctx, r.tokenKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (r *DenylistRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.tokenKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}
