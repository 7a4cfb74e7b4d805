package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arrxxhh/walmart/internal/domain"
)

// SafetyEvaluator scores one product against one profile.
// Evaluate is a pure function of its inputs and safe for concurrent use.
type SafetyEvaluator struct {
	policy ScoringPolicy
}

// NewSafetyEvaluator creates an evaluator with the given policy
func NewSafetyEvaluator(policy ScoringPolicy) *SafetyEvaluator {
	if policy.RestrictionRules == nil {
		policy.RestrictionRules = DefaultRestrictionRules
	}
	return &SafetyEvaluator{policy: policy}
}

// Policy returns the evaluator's scoring policy
func (e *SafetyEvaluator) Policy() ScoringPolicy {
	return e.policy
}

// Evaluate computes the safety verdict for product against profile
func (e *SafetyEvaluator) Evaluate(product domain.Product, profile domain.UserProfile) domain.SafetyVerdict {
	p := e.policy
	score := p.BaseScore
	warnings := []string{}
	matched := []string{}

	// Allergies, in profile order
	for _, allergy := range profile.Allergies {
		if !product.HasAllergen(allergy) {
			continue
		}
		matched = append(matched, domain.NormalizeTag(allergy))
		warnings = append(warnings, allergyWarning(allergy))
		score -= p.AllergyPenalty
	}

	// Restrictions
	for _, tag := range profile.Restrictions {
		rule, ok := p.RestrictionRules[domain.NormalizeTag(tag)]
		if !ok {
			rule = RestrictionRule{Label: strings.ToUpper(domain.DisplayTag(domain.NormalizeTag(tag)))}
		}
		if warning, violated := checkRestriction(rule, tag, product); violated {
			warnings = append(warnings, warning)
			score -= p.RestrictionPenalty
		}
	}

	// Brand
	if profile.AvoidsBrand(product.Brand) {
		warnings = append(warnings, fmt.Sprintf("AVOIDED BRAND: %s", product.Brand))
		score -= p.AvoidBrandPenalty
	}
	if profile.PrefersBrand(product.Brand) {
		score += p.PreferredBrandBonus
	}

	// Preferences
	for _, pref := range profile.DietaryPreferences {
		if product.HasDietaryTag(pref) {
			score += p.PreferenceBonus
		}
	}

	score = clampScore(score)
	allergyMatch := len(matched) > 0
	classification := p.Classify(score, allergyMatch)

	return domain.SafetyVerdict{
		ProductID:        product.ID,
		UserID:           profile.ID,
		Score:            score,
		Classification:   classification,
		Warnings:         warnings,
		AllergyMatch:     allergyMatch,
		MatchedAllergens: matched,
		IsSafe:           classification != domain.ClassificationAvoid,
		IssuesFound:      len(warnings),
	}
}

// checkRestriction reports a violation when the nutrient exceeds the rule's threshold
// or the product carries the restriction tag as a dietary label. Rules without a
// nutrient only match on the label.
func checkRestriction(rule RestrictionRule, tag string, product domain.Product) (string, bool) {
	amount, measured := 0.0, false
	if rule.Nutrient != "" {
		amount, measured = product.Nutrition.Amount(rule.Nutrient)
	}
	labeled := product.HasDietaryTag(tag)

	switch {
	case measured && amount > rule.Threshold:
		return fmt.Sprintf("%s: %s%s per serving (limit %s%s)",
			rule.Label, formatAmount(amount), rule.Unit, formatAmount(rule.Threshold), rule.Unit), true
	case labeled && measured:
		return fmt.Sprintf("%s: %s%s per serving, product is labeled %s",
			rule.Label, formatAmount(amount), rule.Unit, domain.DisplayTag(domain.NormalizeTag(tag))), true
	case labeled:
		return fmt.Sprintf("%s: product is labeled %s", rule.Label, domain.DisplayTag(domain.NormalizeTag(tag))), true
	}
	return "", false
}

func allergyWarning(allergen string) string {
	name := strings.ToUpper(domain.DisplayTag(domain.NormalizeTag(allergen)))
	return fmt.Sprintf("CONTAINS %s — ALLERGIC REACTION RISK", name)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
