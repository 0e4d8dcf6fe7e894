package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"intervox/internal/model"
)

// SessionCache handles Redis operations for session metadata. Metadata
// is written once at session creation and read when the candidate's
// connection attaches; the TTL bounds how long an unclaimed session
// stays resolvable.
type SessionCache interface {
	Set(ctx context.Context, meta *model.SessionMeta) error
	Get(ctx context.Context, room string) (*model.SessionMeta, error)
	Delete(ctx context.Context, room string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new session cache.
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(room string) string {
	return "interview:session:" + room
}

func (c *sessionCache) Set(ctx context.Context, meta *model.SessionMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(meta.Room), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, room string) (*model.SessionMeta, error) {
	data, err := c.client.Get(ctx, c.key(room)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var meta model.SessionMeta
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *sessionCache) Delete(ctx context.Context, room string) error {
	return c.client.Del(ctx, c.key(room)).Err()
}
