package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// PaymentDedup remembers applied payment confirmations in Redis.
// Key format: dedup:payment:<order_id>:<transaction_id>
type PaymentDedup struct {
	client *redis.Client
}

// NewPaymentDedup creates a PaymentDedup wrapping the given Redis client.
func NewPaymentDedup(client *redis.Client) *PaymentDedup {
	return &PaymentDedup{client: client}
}

// IsDuplicate reports whether this confirmation has already been applied.
func (d *PaymentDedup) IsDuplicate(ctx context.Context, orderID, transactionID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(orderID, transactionID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this confirmation has been applied (expires after dedupTTL).
func (d *PaymentDedup) Mark(ctx context.Context, orderID, transactionID string) error {
	return d.client.Set(ctx, d.key(orderID, transactionID), "1", dedupTTL).Err()
}

func (d *PaymentDedup) key(orderID, transactionID string) string {
	return fmt.Sprintf("dedup:payment:%s:%s", orderID, transactionID)
}
