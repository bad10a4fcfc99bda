package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"evalgo.org/cookbook/internal/config"
	"evalgo.org/cookbook/internal/logging"
)

// Publisher sends a serialized event to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisMirror republishes every event as JSON on a Redis channel.
type RedisMirror struct {
	client  Publisher
	channel string
	closer  func() error
}

// NewRedisMirror connects to Redis and verifies the connection.
func NewRedisMirror(ctx context.Context, cfg config.RedisConfig) (*RedisMirror, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logging.Infof("mirroring events to redis channel %q", cfg.Channel)
	return &RedisMirror{client: rdb, channel: cfg.Channel, closer: rdb.Close}, nil
}

// NewMirror wraps an existing publisher.
func NewMirror(p Publisher, channel string) *RedisMirror {
	return &RedisMirror{client: p, channel: channel}
}

// Listener returns an emitter listener that publishes each event.
func (m *RedisMirror) Listener() Listener {
	return func(ctx context.Context, ev Event) {
		if err := m.Publish(ctx, ev); err != nil {
			logging.Warnf("redis publish of %s failed: %v", ev.Type, err)
		}
	}
}

// Publish serializes ev and PUBLISHes it on the configured channel.
func (m *RedisMirror) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return m.client.Publish(ctx, m.channel, payload).Err()
}

// Close releases the Redis connection.
func (m *RedisMirror) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer()
}
