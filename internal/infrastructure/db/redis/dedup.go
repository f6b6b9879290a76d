package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 24 * time.Hour

// EventDedup remembers ledger event references so a redelivered event is
// logged once per session. Sessions sharing a Redis never see each other's
// marks. Key format: evdedup:<session>:<txHash:logIndex>
type EventDedup struct {
	client  *redis.Client
	session string
	ttl     time.Duration
}

// NewEventDedup wraps client for one session. A non-positive ttl falls back
// to a day.
func NewEventDedup(client *redis.Client, session string, ttl time.Duration) *EventDedup {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &EventDedup{client: client, session: session, ttl: ttl}
}

// FirstSeen atomically marks ref and reports whether it was new.
func (d *EventDedup) FirstSeen(ctx context.Context, ref string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(ref), "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup %s: %w", ref, err)
	}
	return ok, nil
}

// Forget drops ref so it counts as unseen again.
func (d *EventDedup) Forget(ctx context.Context, ref string) error {
	return d.client.Del(ctx, d.key(ref)).Err()
}

func (d *EventDedup) key(ref string) string {
	return "evdedup:" + d.session + ":" + ref
}
