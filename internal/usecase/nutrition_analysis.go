package usecase

import (
	"fmt"

	"github.com/arrxxhh/walmart/internal/domain"
)

// AnalyzeNutrition rates the product's nutrition against the profile's dietary preferences.
// Undeclared nutrients count as zero.
func AnalyzeNutrition(product domain.Product, profile domain.UserProfile) domain.NutritionAnalysis {
	fat, _ := product.Nutrition.Amount(domain.NutrientTotalFat)
	saturated, _ := product.Nutrition.Amount(domain.NutrientSaturatedFat)
	calories, _ := product.Nutrition.Amount(domain.NutrientCalories)
	protein, _ := product.Nutrition.Amount(domain.NutrientProtein)

	health := 100.0
	recommendations := []string{}

	if profile.HasPreference("low_fat") {
		if fat > 5 {
			recommendations = append(recommendations, "Consider lower-fat alternatives")
			health -= 20
		}
		if saturated > 3 {
			recommendations = append(recommendations, "High in saturated fat")
			health -= 15
		}
	}

	if profile.HasPreference("low_calories") && calories > 150 {
		recommendations = append(recommendations, "High calorie content")
		health -= 15
	}

	return domain.NutritionAnalysis{
		HealthScore:     clampScore(health),
		Recommendations: recommendations,
		Highlights: map[string]string{
			"fat_content": fmt.Sprintf("%sg total fat", formatAmount(fat)),
			"calories":    fmt.Sprintf("%s calories", formatAmount(calories)),
			"protein":     fmt.Sprintf("%sg protein", formatAmount(protein)),
		},
	}
}
