package domain

import "github.com/shopspring/decimal"

// Recommendations shown on a scan report
const (
	RecommendationSafe    = "SAFE TO CONSUME"
	RecommendationCaution = "USE CAUTION - Review warnings"
	RecommendationAvoid   = "AVOID - Check alternatives below"
)

// NutritionAnalysis rates a product's nutrition against the shopper's dietary preferences
type NutritionAnalysis struct {
	HealthScore     float64           `json:"overallHealthScore"`
	Recommendations []string          `json:"recommendations"`
	Highlights      map[string]string `json:"nutritionHighlights"`
}

// PriceComparison compares the scanned product's price with its alternatives
type PriceComparison struct {
	CurrentPrice            decimal.Decimal `json:"currentPrice"`
	AverageAlternativePrice decimal.Decimal `json:"averageAlternativePrice"`
	BudgetFriendly          bool            `json:"budgetFriendly"`
}

// ScanReport is the full response for one scanned product
type ScanReport struct {
	Product           Product           `json:"product"`
	Verdict           SafetyVerdict     `json:"safetyAnalysis"`
	NutritionAnalysis NutritionAnalysis `json:"nutritionAnalysis"`
	Alternatives      []Alternative     `json:"alternatives"`
	PriceComparison   PriceComparison   `json:"priceComparison"`
	Recommendation    string            `json:"recommendation"`
}

// ScanRequest is the QR scan payload
type ScanRequest struct {
	QRCodeData string `json:"qrCodeData" binding:"required"`
	UserID     string `json:"userId" binding:"required"`
}

// Cart item statuses
const (
	CartStatusSafe        = "Safe"
	CartStatusWarn        = "Warn"
	CartStatusRisk        = "Risk"
	CartStatusSubstituted = "Substituted"
	CartStatusNotFound    = "NotFound"
)

// CartCheckRequest is a shopping list to check against a profile
type CartCheckRequest struct {
	UserID string   `json:"userId" binding:"required"`
	Items  []string `json:"items" binding:"required"`
}

// CartItemResult is the outcome for one shopping-list entry
type CartItemResult struct {
	Original        string          `json:"original"`
	Status          string          `json:"status"`
	Product         *ProductSummary `json:"product,omitempty"`
	MatchConfidence float64         `json:"matchConfidence,omitempty"`
	Verdict         *SafetyVerdict  `json:"verdict,omitempty"`
	SafeAlternative *ProductSummary `json:"safeAlternative,omitempty"`
	Reason          string          `json:"reason,omitempty"`
}

// CartCheckResult is the outcome for a whole shopping list
type CartCheckResult struct {
	UserID string           `json:"userId"`
	Items  []CartItemResult `json:"items"`
}
