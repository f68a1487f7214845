package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogUnavailable is returned when the catalog API cannot be reached
	ErrCatalogUnavailable = errors.New("catalog API request failed")

	// ErrEmptyCatalog is returned when no in-stock products are available
	ErrEmptyCatalog = errors.New("no products available in catalog")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
