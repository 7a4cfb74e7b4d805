package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Nutrient names used as keys in NutritionFacts (amount per serving)
const (
	NutrientCalories     = "calories"
	NutrientTotalFat     = "total_fat"     // grams
	NutrientSaturatedFat = "saturated_fat" // grams
	NutrientProtein      = "protein"       // grams
	NutrientCarbs        = "carbs"         // grams
	NutrientSugar        = "sugar"         // grams
	NutrientSodium       = "sodium"        // milligrams
)

// NutritionFacts maps a nutrient name to its amount per serving
type NutritionFacts map[string]float64

// Amount returns the amount for a nutrient and whether the product declares it
func (n NutritionFacts) Amount(nutrient string) (float64, bool) {
	if n == nil {
		return 0, false
	}
	v, ok := n[nutrient]
	return v, ok
}

// Product represents one sellable catalog item
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Ingredients []string        `json:"ingredients,omitempty"`
	Allergens   []string        `json:"allergens"`
	DietaryTags []string        `json:"dietaryTags,omitempty"` // e.g. "vegan", "low_fat", "high_saturated_fat"
	Nutrition   NutritionFacts  `json:"nutrition"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Normalize returns a copy of p with its tag sets folded into the controlled vocabulary
// and surrounding whitespace removed from identity fields.
func (p Product) Normalize() Product {
	p.ID = strings.TrimSpace(p.ID)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Category = strings.TrimSpace(p.Category)
	p.Allergens = NormalizeTags(p.Allergens)
	p.DietaryTags = NormalizeTags(p.DietaryTags)
	if p.Nutrition == nil {
		p.Nutrition = NutritionFacts{}
	}
	return p
}

// Validate checks the load-time invariants of a single product
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: product without id (name %q)", ErrInvalidCatalog, p.Name)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product %s has negative price %s", ErrInvalidCatalog, p.ID, p.Price)
	}
	for nutrient, amount := range p.Nutrition {
		if amount < 0 {
			return fmt.Errorf("%w: product %s has negative %s", ErrInvalidCatalog, p.ID, nutrient)
		}
	}
	return nil
}

// HasAllergen reports whether the product declares the allergen
func (p Product) HasAllergen(allergen string) bool {
	return ContainsTag(p.Allergens, allergen)
}

// HasDietaryTag reports whether the product carries the dietary tag
func (p Product) HasDietaryTag(tag string) bool {
	return ContainsTag(p.DietaryTags, tag)
}

// SameCategory reports whether other is in p's category, ignoring case
func (p Product) SameCategory(other Product) bool {
	return strings.EqualFold(strings.TrimSpace(p.Category), strings.TrimSpace(other.Category))
}

// ProductSummary is the reduced product view used in listings and cart results
type ProductSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// Summary returns the listing view of the product
func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category,
		Price:    p.Price,
	}
}
