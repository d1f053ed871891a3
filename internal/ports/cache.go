package ports

import (
	"context"
	"time"
)

// Cache is a string key/value store with expiry. Get reports a miss as
// found == false, not as an error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
