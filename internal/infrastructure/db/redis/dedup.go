package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servicehub/marketplace/internal/api/metrics"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks backed by Redis.
// Key format: dedup:<booking_id>:<status>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact event has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, bookingID, status string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(bookingID, status, ts)).Result()
	if err != nil {
		return false, storeErr("dedup check", err)
	}
	if n > 0 {
		metrics.EventsDedupTotal.Inc()
		return true, nil
	}
	return false, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, bookingID, status string, ts time.Time) error {
	if err := d.client.Set(ctx, dedupKey(bookingID, status, ts), "1", dedupTTL).Err(); err != nil {
		return storeErr("dedup mark", err)
	}
	return nil
}

func dedupKey(bookingID, status string, ts time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", bookingID, status, ts.Unix())
}
