package admin

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "panel:revoked:"

// RedisDenylist stores revoked token ids in Redis until they would
// have expired anyway. A nil client disables revocation (development
// without Redis).
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist creates the Redis-backed token denylist
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

// Revoke marks a token id as revoked for ttl
func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if d.client == nil {
		return nil
	}
	return d.client.Set(ctx, denylistKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether a token id has been revoked
func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if d.client == nil {
		return false, nil
	}
	n, err := d.client.Exists(ctx, denylistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
