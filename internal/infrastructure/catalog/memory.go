package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/arrxxhh/walmart/internal/domain"
)

// Catalog is the immutable in-memory product and profile table.
// It is built once and shared freely between request handlers without locking.
type Catalog struct {
	products   map[string]domain.Product
	profiles   map[string]domain.UserProfile
	productIDs []string
	profileIDs []string
}

// New builds a catalog from raw data, normalizing tags and rejecting duplicate ids
func New(data *domain.CatalogData) (*Catalog, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: no data", domain.ErrInvalidCatalog)
	}

	c := &Catalog{
		products: make(map[string]domain.Product, len(data.Products)),
		profiles: make(map[string]domain.UserProfile, len(data.Profiles)),
	}

	for _, raw := range data.Products {
		p := raw.Normalize()
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.products[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %s", domain.ErrInvalidCatalog, p.ID)
		}
		c.products[p.ID] = p
		c.productIDs = append(c.productIDs, p.ID)
	}

	for _, raw := range data.Profiles {
		u := raw.Normalize()
		if err := u.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.profiles[u.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate profile id %s", domain.ErrInvalidCatalog, u.ID)
		}
		c.profiles[u.ID] = u
		c.profileIDs = append(c.profileIDs, u.ID)
	}

	sort.Strings(c.productIDs)
	sort.Strings(c.profileIDs)

	return c, nil
}

// GetProduct returns the product with the given id or domain.ErrProductNotFound
func (c *Catalog) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p, nil
}

// GetProfile returns the profile with the given id or domain.ErrUserNotFound
func (c *Catalog) GetProfile(ctx context.Context, id string) (domain.UserProfile, error) {
	u, ok := c.profiles[id]
	if !ok {
		return domain.UserProfile{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return u, nil
}

// ListProducts returns every product ordered by id.
// The returned slice is fresh; the products' inner slices are shared and must not be modified.
func (c *Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(c.productIDs))
	for _, id := range c.productIDs {
		out = append(out, c.products[id])
	}
	return out, nil
}

// ListProfiles returns every profile ordered by id
func (c *Catalog) ListProfiles() []domain.UserProfile {
	out := make([]domain.UserProfile, 0, len(c.profileIDs))
	for _, id := range c.profileIDs {
		out = append(out, c.profiles[id])
	}
	return out
}

// Stats returns the table sizes
func (c *Catalog) Stats() (products, profiles int) {
	return len(c.products), len(c.profiles)
}
