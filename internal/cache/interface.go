package cache

import (
	"context"
	"time"

	"github.com/StephanNaro/id-registry/internal/domain"
)

// IdentifierCacheResult wraps a cached identifier record.
type IdentifierCacheResult struct {
	Identifier domain.Identifier `json:"identifier"`
}

// IdentifierCache caches lookup results. Mutations must invalidate the
// affected key so lifecycle flags never go stale.
type IdentifierCache interface {
	Get(ctx context.Context, key string) (*IdentifierCacheResult, error)
	Set(ctx context.Context, key string, result *IdentifierCacheResult, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	BuildKeyByID(id string) string
	Close() error
}
