package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventDeduplicator claims provider event ids so a redelivered event is
// applied at most once while its claim lives.
type EventDeduplicator interface {
	// Claim returns false if eventID has already been claimed.
	Claim(ctx context.Context, eventID string) (bool, error)
	// Release drops a claim so the event can be applied again.
	Release(ctx context.Context, eventID string) error
}

type redisEventDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventDeduplicator(client *redis.Client, ttl time.Duration) EventDeduplicator {
	return &redisEventDeduplicator{client: client, ttl: ttl}
}

func eventKey(eventID string) string {
	return "stripe:event:" + eventID
}

func (d *redisEventDeduplicator) Claim(ctx context.Context, eventID string) (bool, error) {
	return d.client.SetNX(ctx, eventKey(eventID), time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
}

func (d *redisEventDeduplicator) Release(ctx context.Context, eventID string) error {
	return d.client.Del(ctx, eventKey(eventID)).Err()
}
