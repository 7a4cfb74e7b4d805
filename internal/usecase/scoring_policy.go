package usecase

import "github.com/arrxxhh/walmart/internal/domain"

// ScoringPolicy holds every magnitude the safety evaluator applies.
// Allergy and restriction penalties apply once per match.
// The zero value is not usable; start from DefaultScoringPolicy.
type ScoringPolicy struct {
	BaseScore           float64
	AllergyPenalty      float64
	RestrictionPenalty  float64
	AvoidBrandPenalty   float64
	PreferredBrandBonus float64
	PreferenceBonus     float64

	// SafeThreshold and CautionThreshold are inclusive lower bounds
	SafeThreshold    float64
	CautionThreshold float64

	RestrictionRules map[string]RestrictionRule
}

// RestrictionRule maps a restriction tag onto a nutrient ceiling.
type RestrictionRule struct {
	Nutrient  string
	Threshold float64 // violation when the amount per serving exceeds this
	Unit      string
	Label     string
}

// DefaultRestrictionRules is the nutrient threshold table, keyed by normalized restriction tag.
var DefaultRestrictionRules = map[string]RestrictionRule{
	"high_fat":           {Nutrient: domain.NutrientTotalFat, Threshold: 10, Unit: "g", Label: "HIGH FAT"},
	"high_saturated_fat": {Nutrient: domain.NutrientSaturatedFat, Threshold: 5, Unit: "g", Label: "HIGH SATURATED FAT"},
	"high_calories":      {Nutrient: domain.NutrientCalories, Threshold: 250, Unit: "kcal", Label: "HIGH CALORIES"},
	"high_sodium":        {Nutrient: domain.NutrientSodium, Threshold: 460, Unit: "mg", Label: "HIGH SODIUM"},
	"high_sugar":         {Nutrient: domain.NutrientSugar, Threshold: 12, Unit: "g", Label: "HIGH SUGAR"},
	"high_carbs":         {Nutrient: domain.NutrientCarbs, Threshold: 30, Unit: "g", Label: "HIGH CARBS"},
}

// DefaultScoringPolicy returns the standard scoring magnitudes
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		BaseScore:           100,
		AllergyPenalty:      70,
		RestrictionPenalty:  15,
		AvoidBrandPenalty:   10,
		PreferredBrandBonus: 5,
		PreferenceBonus:     5,
		SafeThreshold:       90,
		CautionThreshold:    70,
		RestrictionRules:    DefaultRestrictionRules,
	}
}

// Classify maps a score onto a classification. An allergy match always yields avoid.
func (p ScoringPolicy) Classify(score float64, allergyMatch bool) domain.Classification {
	switch {
	case allergyMatch:
		return domain.ClassificationAvoid
	case score >= p.SafeThreshold:
		return domain.ClassificationSafe
	case score >= p.CautionThreshold:
		return domain.ClassificationCaution
	default:
		return domain.ClassificationAvoid
	}
}
