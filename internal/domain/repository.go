package domain

import (
	"context"
	"time"
)

// CatalogClient defines the interface for fetching the store catalog.
// Implementations must return products in a stable order; match
// tie-breaking depends on it.
type CatalogClient interface {
	// ListInStock returns the products currently available for sale.
	ListInStock(ctx context.Context) ([]Product, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
