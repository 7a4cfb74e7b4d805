package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arrxxhh/walmart/internal/domain"
)

// MockCatalogRepository is a map-backed implementation of domain.CatalogRepository
type MockCatalogRepository struct {
	products  map[string]domain.Product
	profiles  map[string]domain.UserProfile
	listError error
}

func NewMockCatalogRepository(products []domain.Product, profiles ...domain.UserProfile) *MockCatalogRepository {
	m := &MockCatalogRepository{
		products: make(map[string]domain.Product),
		profiles: make(map[string]domain.UserProfile),
	}
	for _, p := range products {
		p = p.Normalize()
		m.products[p.ID] = p
	}
	for _, u := range profiles {
		u = u.Normalize()
		m.profiles[u.ID] = u
	}
	return m
}

func (m *MockCatalogRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}

func (m *MockCatalogRepository) GetProfile(ctx context.Context, id string) (domain.UserProfile, error) {
	if u, ok := m.profiles[id]; ok {
		return u, nil
	}
	return domain.UserProfile{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data     map[string][]byte
	setError error
	getCalls int
	setCalls int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalls++
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Fixture catalog mirroring the seed data
func fixtureProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "WALMART_001", Name: "Jif Creamy Peanut Butter", Brand: "Jif", Category: "Pantry",
			Price: price("3.99"), Allergens: []string{"peanuts"}, DietaryTags: []string{"high_fat"},
			Nutrition:   domain.NutritionFacts{"calories": 190, "total_fat": 16, "saturated_fat": 3, "protein": 7},
			Description: "Creamy peanut butter spread made from roasted peanuts",
		},
		{
			ID: "WALMART_002", Name: "SunButter Sunflower Seed Butter", Brand: "SunButter", Category: "Pantry",
			Price: price("4.99"), DietaryTags: []string{"high_fat", "nut_free", "vegan"},
			Nutrition:   domain.NutritionFacts{"calories": 200, "total_fat": 18, "saturated_fat": 2, "protein": 7},
			Description: "Creamy sunflower seed butter spread, peanut free",
		},
		{
			ID: "WALMART_003", Name: "Silk Almond Milk Unsweetened", Brand: "Silk", Category: "Dairy",
			Price: price("3.49"), Allergens: []string{"tree nuts"}, DietaryTags: []string{"low_fat", "vegan"},
			Nutrition: domain.NutritionFacts{"calories": 30, "total_fat": 2.5, "saturated_fat": 0, "protein": 1},
		},
		{
			ID: "WALMART_004", Name: "Land O'Lakes Butter", Brand: "Land O'Lakes", Category: "Dairy",
			Price: price("4.99"), Allergens: []string{"dairy"}, DietaryTags: []string{"high_fat", "high_saturated_fat"},
			Nutrition: domain.NutritionFacts{"calories": 100, "total_fat": 11, "saturated_fat": 7},
		},
		{
			ID: "WALMART_005", Name: "Earth Balance Vegan Buttery Spread", Brand: "Earth Balance", Category: "Dairy",
			Price: price("5.99"), Allergens: []string{"soy"}, DietaryTags: []string{"high_fat", "vegan"},
			Nutrition: domain.NutritionFacts{"calories": 100, "total_fat": 11, "saturated_fat": 3.5},
		},
		{
			ID: "WALMART_008", Name: "Justin's Classic Almond Butter", Brand: "Justin's", Category: "Pantry",
			Price: price("8.98"), Allergens: []string{"tree_nuts"}, DietaryTags: []string{"high_fat", "vegan"},
			Nutrition: domain.NutritionFacts{"calories": 220, "total_fat": 19, "saturated_fat": 2},
		},
	}
}

func fixtureJohn() domain.UserProfile {
	return domain.UserProfile{
		ID:                 "user_001",
		Allergies:          []string{"peanuts", "tree nuts"},
		DietaryPreferences: []string{"low_fat", "low_calories"},
		Restrictions:       []string{"high_saturated_fat"},
		PreferredBrands:    []string{"Silk", "SunButter"},
		AvoidBrands:        []string{"Jif"},
		BudgetPreference:   domain.BudgetModerate,
	}.Normalize()
}

func fixtureJane() domain.UserProfile {
	return domain.UserProfile{
		ID:                 "user_002",
		Allergies:          []string{"dairy"},
		DietaryPreferences: []string{"vegan", "low_fat"},
		Restrictions:       []string{"high_fat"},
		PreferredBrands:    []string{"Silk", "Earth Balance"},
		AvoidBrands:        []string{"Land O'Lakes"},
		BudgetPreference:   domain.BudgetBudget,
	}.Normalize()
}

func normalized(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = p.Normalize()
	}
	return out
}

func findProduct(products []domain.Product, id string) domain.Product {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}
	panic("fixture product missing: " + id)
}
