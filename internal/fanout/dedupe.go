package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper guards against the trigger firing more than once for the
// same message, which at-least-once change-stream delivery allows.
type Deduper interface {
	// Seen marks the message as processed and reports whether it had
	// already been marked.
	Seen(ctx context.Context, messageID string) (bool, error)
}

const dedupeTTL = 24 * time.Hour

// RedisDeduper implements Deduper with a SET NX key per message id.
// The TTL only bounds memory; duplicate triggers arrive within seconds
// of each other in practice.
type RedisDeduper struct {
	client *redis.Client
}

func NewRedisDeduper(client *redis.Client) *RedisDeduper {
	return &RedisDeduper{client: client}
}

func (d *RedisDeduper) Seen(ctx context.Context, messageID string) (bool, error) {
	key := "fanout:seen:" + messageID
	set, err := d.client.SetNX(ctx, key, 1, dedupeTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check dedupe key: %w", err)
	}
	return !set, nil
}
