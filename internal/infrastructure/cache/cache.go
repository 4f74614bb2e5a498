package cache

import (
	"context"
	"time"
)

// Store is a small read-through cache boundary used for immutable
// meeting records. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, expiration time.Duration)
}
