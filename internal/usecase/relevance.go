package usecase

import (
	"math"

	"github.com/arrxxhh/walmart/internal/domain"
)

// Relevance bonuses. Relevance never affects ranking order; it explains why
// an alternative is a sensible swap.
const (
	relevanceSameCategory   = 30.0
	relevancePreferredBrand = 20.0
	relevanceCheaper        = 15.0
	relevanceLowerFat       = 10.0
	relevanceTokenOverlap   = 25.0 // scaled by the share of origin tokens the candidate repeats
)

// scoreRelevance rates how good a substitute candidate is for origin, for this shopper
func scoreRelevance(origin, candidate domain.Product, profile domain.UserProfile) (float64, []string) {
	score := 0.0
	reasons := []string{}

	if candidate.Category != "" && origin.SameCategory(candidate) {
		score += relevanceSameCategory
		reasons = append(reasons, "same category")
	}

	if profile.PrefersBrand(candidate.Brand) {
		score += relevancePreferredBrand
		reasons = append(reasons, "preferred brand")
	}

	if profile.BudgetPreference == domain.BudgetBudget && candidate.Price.LessThan(origin.Price) {
		score += relevanceCheaper
		reasons = append(reasons, "cheaper option")
	}

	if profile.HasPreference("low_fat") {
		originFat, ok1 := origin.Nutrition.Amount(domain.NutrientTotalFat)
		candidateFat, ok2 := candidate.Nutrition.Amount(domain.NutrientTotalFat)
		if ok1 && ok2 && candidateFat < originFat {
			score += relevanceLowerFat
			reasons = append(reasons, "lower fat")
		}
	}

	originTokens := tokenize(origin.Name + " " + origin.Description)
	candidateTokens := tokenize(candidate.Name + " " + candidate.Description)
	if unique := findUnion(originTokens, nil); unique > 0 {
		if shared, _ := findIntersection(originTokens, candidateTokens); shared > 0 {
			score += relevanceTokenOverlap * float64(shared) / float64(unique)
			reasons = append(reasons, "similar product")
		}
	}

	return math.Round(score*10) / 10, reasons
}
