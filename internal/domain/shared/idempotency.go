package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-generated submission keys so that a
// retried request (double click, flaky network) does not create a second
// aggregate. Keys expire after a TTL; the database unique constraint on the
// order's idempotency key remains the backstop.
type IdempotencyStore interface {
	// Reserve atomically claims a key with a TTL.
	// Returns true if the key was newly claimed, false if already present.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release removes a claimed key, allowing the request to be retried.
	// Used when the guarded operation fails before commit.
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a submission key stays reserved
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
