package domain

import (
	"context"
	"time"
)

// CatalogData is the raw product and profile tables handed over by a catalog source
type CatalogData struct {
	Products []Product     `json:"products"`
	Profiles []UserProfile `json:"profiles"`
}

// CatalogSource supplies the initial catalog once at startup
type CatalogSource interface {
	Load(ctx context.Context) (*CatalogData, error)
}

// CatalogRepository resolves identifiers against the read-only catalog
type CatalogRepository interface {
	GetProduct(ctx context.Context, id string) (Product, error)
	GetProfile(ctx context.Context, id string) (UserProfile, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

// CacheRepository defines the interface for caching operations.
// Values are stored as JSON and handed back as raw bytes.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
