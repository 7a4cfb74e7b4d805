package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)

	// Matches size/quantity patterns like "128 fl oz", "12 oz", "1.5 liter", "2 lb"
	sizePatternRegex = regexp.MustCompile(
		`(?i)\b\d+\.?\d*\s*(?:fl\s*oz|oz|ml|liters?|l|gallons?|gal|lbs?|pounds?|kg|grams?|g|qt|quarts?|pt|pints?)\b`,
	)

	// Matches pack/count patterns like "12 pack", "pack of 6", "6-pack", "24 count", "6 ct"
	packCountRegex = regexp.MustCompile(`(?i)\b\d+[-\s]*(?:pack|pk|count|ct)\b|\bpack\s*of\s*\d+\b|\b\d+\s*(?:cans?|bottles?|jars?|cartons?)\b`)

	orphanPunctuationRegex = regexp.MustCompile(`\s+[,\-;:]+\s+|[,\-;:]+\s*$|^\s*[,\-;:]+`)
)

// Token weight categories for scoring
const (
	weightGrocery     = 3.0 // Core grocery terms (milk, butter, peanut)
	weightDescriptive = 2.0 // Descriptive terms (whole, unsweetened, creamy)
	weightDefault     = 1.0 // Everything else
	fuzzyWeightFactor = 0.8 // Fuzzy matches get 80% of normal weight
)

// groceryTerms contains high-importance product keywords
var groceryTerms = map[string]bool{
	// Dairy and alternatives
	"milk": true, "cheese": true, "yogurt": true, "butter": true, "cream": true,
	"eggs": true, "egg": true, "spread": true, "margarine": true,
	"almond": true, "oat": true, "soy": true, "coconut": true, "cashew": true,
	// Nut and seed butters
	"peanut": true, "peanuts": true, "sunflower": true, "seed": true, "nut": true,
	"hazelnut": true, "walnut": true, "pecan": true, "tahini": true,
	// Grains
	"bread": true, "rice": true, "pasta": true, "cereal": true, "oats": true,
	"wheat": true, "flour": true, "crackers": true, "granola": true, "tortilla": true,
	// Proteins
	"chicken": true, "beef": true, "pork": true, "fish": true, "salmon": true,
	"tuna": true, "shrimp": true, "tofu": true, "beans": true,
	// Snacks and sweets
	"chips": true, "cookies": true, "chocolate": true, "candy": true, "bar": true,
	"jam": true, "jelly": true, "honey": true, "syrup": true,
}

// descriptiveTerms contains medium-importance descriptive keywords
var descriptiveTerms = map[string]bool{
	"whole": true, "skim": true, "reduced": true, "fat": true, "low": true,
	"nonfat": true, "organic": true, "natural": true, "fresh": true, "frozen": true,
	"creamy": true, "crunchy": true, "chunky": true, "smooth": true, "salted": true,
	"unsalted": true, "sweetened": true, "unsweetened": true, "original": true,
	"vanilla": true, "plain": true, "classic": true, "roasted": true, "vegan": true,
	"dairy": true, "free": true, "gluten": true, "light": true, "lite": true,
}

// stopWords includes basic English stop words plus product-specific noise
var stopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	// Size/quantity units
	"oz": true, "fl": true, "lb": true, "lbs": true, "ml": true,
	"gallon": true, "quart": true, "pint": true, "liter": true, "liters": true,
	"gram": true, "grams": true, "kg": true, "ounce": true, "ounces": true,
	// Packaging terms
	"pack": true, "count": true, "ct": true, "pk": true, "box": true,
	"bag": true, "bottle": true, "can": true, "carton": true, "jar": true,
	"tub": true, "container": true, "pouch": true,
	// Marketing/generic terms
	"size": true, "family": true, "each": true, "per": true, "serving": true,
	"bonus": true, "new": true, "improved": true, "product": true, "item": true,
}

// cleanItemName strips sizes, pack counts and dangling punctuation from a
// shopping-list entry so only the product words remain.
func cleanItemName(name string) string {
	cleaned := sizePatternRegex.ReplaceAllString(name, " ")
	cleaned = packCountRegex.ReplaceAllString(cleaned, " ")
	cleaned = orphanPunctuationRegex.ReplaceAllString(cleaned, " ")
	cleaned = multipleSpacesRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words, and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || stopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// tokenWeight returns the importance of a token for match scoring
func tokenWeight(token string) float64 {
	switch {
	case groceryTerms[token]:
		return weightGrocery
	case descriptiveTerms[token]:
		return weightDescriptive
	default:
		return weightDefault
	}
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Only apply fuzzy matching to tokens >= 4 chars to avoid false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// findIntersection returns the count of common tokens and the list of matched tokens
func findIntersection(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}

	return len(matched), matched
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
