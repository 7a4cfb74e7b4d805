package usecase

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrxxhh/walmart/internal/domain"
)

func alternativeIDs(alts []domain.Alternative) []string {
	ids := make([]string, len(alts))
	for i, a := range alts {
		ids[i] = a.Product.ID
	}
	return ids
}

func newRanker(policy CategoryPolicy, minScore float64) *AlternativeRanker {
	return NewAlternativeRanker(NewSafetyEvaluator(DefaultScoringPolicy()), RankerConfig{
		CategoryPolicy: policy,
		MinScore:       minScore,
	})
}

func TestRank_SameCategory(t *testing.T) {
	products := normalized(fixtureProducts())

	t.Run("drops allergens and origin", func(t *testing.T) {
		alts := newRanker(CategorySame, 0).Rank(findProduct(products, "WALMART_001"), products, fixtureJohn(), 3)

		// Justin's almond butter is a tree nut product
		assert.Equal(t, []string{"WALMART_002"}, alternativeIDs(alts))
		assert.Equal(t, 100.0, alts[0].Verdict.Score)
		assert.Contains(t, alts[0].RelevanceReasons, "same category")
		assert.Contains(t, alts[0].RelevanceReasons, "preferred brand")
	})

	t.Run("orders by score", func(t *testing.T) {
		alts := newRanker(CategorySame, 0).Rank(findProduct(products, "WALMART_004"), products, fixtureJane(), 3)
		assert.Equal(t, []string{"WALMART_003", "WALMART_005"}, alternativeIDs(alts))
	})

	t.Run("every other same-category product is an allergen", func(t *testing.T) {
		catalog := normalized([]domain.Product{
			{ID: "PB1", Category: "Pantry", Allergens: []string{"peanuts"}, Price: price("3.00")},
			{ID: "PB2", Category: "Pantry", Allergens: []string{"Peanuts", "soy"}, Price: price("2.00")},
			{ID: "AB1", Category: "Pantry", Allergens: []string{"tree-nuts"}, Price: price("9.00")},
			{ID: "MILK", Category: "Dairy", Price: price("1.00")},
		})

		alts := newRanker(CategorySame, 0).Rank(catalog[0], catalog, fixtureJohn(), 3)
		require.NotNil(t, alts)
		assert.Empty(t, alts)
	})
}

func TestRank_Policies(t *testing.T) {
	products := normalized(fixtureProducts())
	butter := findProduct(products, "WALMART_004")

	t.Run("any considers every category", func(t *testing.T) {
		alts := newRanker(CategoryAny, 0).Rank(butter, products, fixtureJane(), 4)
		assert.Equal(t, []string{"WALMART_003", "WALMART_005", "WALMART_002", "WALMART_008"}, alternativeIDs(alts))
	})

	t.Run("category first widens when short", func(t *testing.T) {
		alts := newRanker(CategoryFirst, 0).Rank(butter, products, fixtureJane(), 3)
		assert.Equal(t, []string{"WALMART_003", "WALMART_005", "WALMART_002"}, alternativeIDs(alts))
	})

	t.Run("category first keeps same category when enough", func(t *testing.T) {
		alts := newRanker(CategoryFirst, 0).Rank(butter, products, fixtureJane(), 2)
		assert.Equal(t, []string{"WALMART_003", "WALMART_005"}, alternativeIDs(alts))
	})

	t.Run("minimum score filters", func(t *testing.T) {
		alts := newRanker(CategorySame, 96).Rank(butter, products, fixtureJane(), 3)
		assert.Equal(t, []string{"WALMART_003"}, alternativeIDs(alts))
	})

	t.Run("non-positive limit", func(t *testing.T) {
		alts := newRanker(CategoryAny, 0).Rank(butter, products, fixtureJane(), 0)
		assert.Empty(t, alts)
	})
}

func TestRank_TieBreaks(t *testing.T) {
	catalog := normalized([]domain.Product{
		{ID: "ORIGIN", Category: "C", Price: price("5")},
		{ID: "B", Category: "C", Price: price("2.50")},
		{ID: "A", Category: "C", Price: price("2.50")},
		{ID: "CHEAP", Category: "C", Price: price("1.00")},
		{ID: "BEST", Category: "C", Brand: "Fav", Price: price("9.99")},
	})
	profile := domain.UserProfile{ID: "u", PreferredBrands: []string{"Fav"}}.Normalize()

	// BEST scores 100 via clamp like the rest, so the price decides
	alts := newRanker(CategorySame, 0).Rank(catalog[0], catalog, profile, 10)
	assert.Equal(t, []string{"CHEAP", "A", "B", "BEST"}, alternativeIDs(alts))
}

func TestParseCategoryPolicy(t *testing.T) {
	for _, s := range []string{"same_category", "category_first", "any"} {
		p, err := ParseCategoryPolicy(s)
		require.NoError(t, err)
		assert.Equal(t, CategoryPolicy(s), p)
	}

	p, err := ParseCategoryPolicy("")
	require.NoError(t, err)
	assert.Equal(t, CategorySame, p)

	_, err = ParseCategoryPolicy("nearest")
	assert.Error(t, err)
}

// TestRank_Properties checks ranking invariants over generated catalogs
func TestRank_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vocabulary := []string{"peanuts", "tree_nuts", "dairy", "soy", "gluten", "eggs"}
	brands := []string{"Acme", "Silk", "Jif", "Great Value"}
	categories := []string{"Pantry", "Dairy", "Snacks"}

	pick := func(values []string, n int) []string {
		out := []string{}
		for i := 0; i < n; i++ {
			out = append(out, values[rng.Intn(len(values))])
		}
		return out
	}

	for round := 0; round < 25; round++ {
		catalog := make([]domain.Product, 40)
		for i := range catalog {
			catalog[i] = domain.Product{
				ID:        fmt.Sprintf("P%03d", i),
				Brand:     brands[rng.Intn(len(brands))],
				Category:  categories[rng.Intn(len(categories))],
				Price:     decimal.New(int64(100+rng.Intn(900)), -2),
				Allergens: pick(vocabulary, rng.Intn(3)),
				Nutrition: domain.NutritionFacts{
					domain.NutrientTotalFat:     float64(rng.Intn(25)),
					domain.NutrientSaturatedFat: float64(rng.Intn(10)),
				},
			}.Normalize()
		}
		profile := domain.UserProfile{
			ID:              "u",
			Allergies:       pick(vocabulary, 1+rng.Intn(2)),
			Restrictions:    []string{"high_fat", "high_saturated_fat"},
			PreferredBrands: pick(brands, 1),
			AvoidBrands:     pick(brands, 1),
		}.Normalize()
		origin := catalog[rng.Intn(len(catalog))]

		for _, policy := range []CategoryPolicy{CategorySame, CategoryFirst, CategoryAny} {
			for limit := 1; limit <= 6; limit++ {
				alts := newRanker(policy, 0).Rank(origin, catalog, profile, limit)

				require.LessOrEqual(t, len(alts), limit)
				for i, alt := range alts {
					assert.NotEqual(t, origin.ID, alt.Product.ID)
					assert.False(t, alt.Verdict.AllergyMatch)
					for _, allergy := range profile.Allergies {
						assert.False(t, alt.Product.HasAllergen(allergy), "alternative %s has %s", alt.Product.ID, allergy)
					}
					if i == 0 {
						continue
					}
					prev := alts[i-1]
					assert.True(t, prev.Verdict.Score > alt.Verdict.Score ||
						(prev.Verdict.Score == alt.Verdict.Score && prev.Product.Price.LessThanOrEqual(alt.Product.Price)),
						"alternatives out of order at %d", i)
				}
			}
		}
	}
}
