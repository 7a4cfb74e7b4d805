package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the root of every lookup miss. Callers translate it into a 404.
	ErrNotFound = errors.New("not found")

	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)

	// ErrUserNotFound is returned when a user id has no profile
	ErrUserNotFound = fmt.Errorf("user profile %w", ErrNotFound)

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidCatalog is returned when catalog data fails validation at load time
	ErrInvalidCatalog = errors.New("invalid catalog data")

	// ErrLowConfidence is returned when a fuzzy name match is below the confidence threshold
	ErrLowConfidence = errors.New("match confidence below threshold")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
