package usecase

import (
	"fmt"
	"sort"

	"github.com/arrxxhh/walmart/internal/domain"
)

// CategoryPolicy controls which catalog products are considered as substitutes
type CategoryPolicy string

const (
	// CategorySame only considers products of the origin's category
	CategorySame CategoryPolicy = "same_category"
	// CategoryFirst fills remaining slots from other categories when the origin's
	// category yields fewer than limit survivors
	CategoryFirst CategoryPolicy = "category_first"
	// CategoryAny considers the whole catalog
	CategoryAny CategoryPolicy = "any"
)

// ParseCategoryPolicy validates a configured policy name. Empty means CategorySame.
func ParseCategoryPolicy(s string) (CategoryPolicy, error) {
	switch p := CategoryPolicy(s); p {
	case CategorySame, CategoryFirst, CategoryAny:
		return p, nil
	case "":
		return CategorySame, nil
	default:
		return "", fmt.Errorf("unknown category policy %q", s)
	}
}

// RankerConfig holds configuration for the alternative ranker
type RankerConfig struct {
	CategoryPolicy CategoryPolicy
	MinScore       float64
}

// AlternativeRanker picks safe substitutes for a product
type AlternativeRanker struct {
	evaluator *SafetyEvaluator
	policy    CategoryPolicy
	minScore  float64
}

// NewAlternativeRanker creates a ranker that scores candidates with evaluator
func NewAlternativeRanker(evaluator *SafetyEvaluator, config RankerConfig) *AlternativeRanker {
	policy := config.CategoryPolicy
	if policy == "" {
		policy = CategorySame
	}

	return &AlternativeRanker{
		evaluator: evaluator,
		policy:    policy,
		minScore:  config.MinScore,
	}
}

// Rank returns up to limit substitutes for origin drawn from catalog.
// Candidates that trigger one of the profile's allergies are never returned.
// The result is ordered by score descending, then price ascending, then id,
// and is empty rather than nil when nothing survives.
func (r *AlternativeRanker) Rank(origin domain.Product, catalog []domain.Product, profile domain.UserProfile, limit int) []domain.Alternative {
	if limit <= 0 {
		return []domain.Alternative{}
	}

	sameCategory := func(p domain.Product) bool { return origin.SameCategory(p) }

	var result []domain.Alternative
	switch r.policy {
	case CategoryAny:
		result = r.survivors(origin, catalog, profile, func(domain.Product) bool { return true })
	case CategoryFirst:
		result = r.survivors(origin, catalog, profile, sameCategory)
		if len(result) < limit {
			others := r.survivors(origin, catalog, profile, func(p domain.Product) bool { return !sameCategory(p) })
			sortAlternatives(others)
			if room := limit - len(result); len(others) > room {
				others = others[:room]
			}
			result = append(result, others...)
		}
	default:
		result = r.survivors(origin, catalog, profile, sameCategory)
	}

	sortAlternatives(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// survivors evaluates every candidate accepted by include and keeps the allergy-free ones
func (r *AlternativeRanker) survivors(origin domain.Product, catalog []domain.Product, profile domain.UserProfile, include func(domain.Product) bool) []domain.Alternative {
	out := []domain.Alternative{}
	for _, candidate := range catalog {
		if candidate.ID == origin.ID || !include(candidate) {
			continue
		}

		verdict := r.evaluator.Evaluate(candidate, profile)
		if verdict.AllergyMatch || verdict.Score < r.minScore {
			continue
		}

		relevance, reasons := scoreRelevance(origin, candidate, profile)
		out = append(out, domain.Alternative{
			Product:          candidate,
			Verdict:          verdict,
			RelevanceScore:   relevance,
			RelevanceReasons: reasons,
		})
	}
	return out
}

func sortAlternatives(alts []domain.Alternative) {
	sort.SliceStable(alts, func(i, j int) bool {
		a, b := alts[i], alts[j]
		if a.Verdict.Score != b.Verdict.Score {
			return a.Verdict.Score > b.Verdict.Score
		}
		if c := a.Product.Price.Cmp(b.Product.Price); c != 0 {
			return c < 0
		}
		return a.Product.ID < b.Product.ID
	})
}
