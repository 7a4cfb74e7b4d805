package domain

import (
	"fmt"
	"strings"
)

// Budget preferences understood by the relevance heuristic
const (
	BudgetModerate = "moderate"
	BudgetBudget   = "budget"
)

// UserProfile represents one shopper's stated constraints.
// Allergies disqualify; restrictions and preferences only move the score.
type UserProfile struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name,omitempty"`
	Allergies          []string `json:"allergies"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	Restrictions       []string `json:"restrictions"`
	PreferredBrands    []string `json:"preferredBrands"`
	AvoidBrands        []string `json:"avoidBrands"`
	BudgetPreference   string   `json:"budgetPreference,omitempty"`
}

// Normalize returns a copy of u with tag sets folded into the controlled vocabulary
func (u UserProfile) Normalize() UserProfile {
	u.ID = strings.TrimSpace(u.ID)
	u.Allergies = NormalizeTags(u.Allergies)
	u.DietaryPreferences = NormalizeTags(u.DietaryPreferences)
	u.Restrictions = NormalizeTags(u.Restrictions)
	u.PreferredBrands = trimAll(u.PreferredBrands)
	u.AvoidBrands = trimAll(u.AvoidBrands)
	u.BudgetPreference = NormalizeTag(u.BudgetPreference)
	return u
}

// Validate checks the load-time invariants of a profile
func (u UserProfile) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: profile without id (name %q)", ErrInvalidCatalog, u.Name)
	}
	return nil
}

// PrefersBrand reports whether brand is one of the profile's preferred brands
func (u UserProfile) PrefersBrand(brand string) bool {
	return containsFold(u.PreferredBrands, brand)
}

// AvoidsBrand reports whether brand is one of the profile's avoided brands
func (u UserProfile) AvoidsBrand(brand string) bool {
	return containsFold(u.AvoidBrands, brand)
}

// HasPreference reports whether the profile declares the dietary preference
func (u UserProfile) HasPreference(pref string) bool {
	return ContainsTag(u.DietaryPreferences, pref)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
