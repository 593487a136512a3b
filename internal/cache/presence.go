package cache

import (
	"context"
	"time"
)

const (
	lastActiveKeyPrefix = "presence:last_active:"
	lastActiveTTL       = 30 * 24 * time.Hour
)

// PresenceTracker records when a user was last active. Writes are
// best-effort: a Redis outage never fails the calling request.
type PresenceTracker interface {
	Touch(ctx context.Context, userID string) error
	LastActive(ctx context.Context, userID string) (time.Time, bool)
}

// RedisPresenceTracker stores last-active timestamps in Redis.
type RedisPresenceTracker struct {
	cache *Client
}

var _ PresenceTracker = (*RedisPresenceTracker)(nil)

// NewPresenceTracker creates a presence tracker on top of the cache client.
func NewPresenceTracker(cache *Client) *RedisPresenceTracker {
	return &RedisPresenceTracker{cache: cache}
}

// Touch marks the user as active now.
func (t *RedisPresenceTracker) Touch(ctx context.Context, userID string) error {
	payload := []byte(time.Now().UTC().Format(time.RFC3339))
	return t.cache.Set(ctx, lastActiveKeyPrefix+userID, payload, lastActiveTTL)
}

// LastActive returns the user's last recorded activity time, if any.
func (t *RedisPresenceTracker) LastActive(ctx context.Context, userID string) (time.Time, bool) {
	data, err := t.cache.Get(ctx, lastActiveKeyPrefix+userID)
	if err != nil || data == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
