package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arrxxhh/walmart/internal/domain"
)

// Match methods reported on ProductMatch
const (
	MatchByID    = "id"
	MatchByName  = "name"
	MatchByFuzzy = "fuzzy"
)

// Scoring bonuses for fuzzy name matches, on the 0-1 confidence scale
const (
	brandMatchBonus     = 0.15 // Brand appears in the shopping-list entry
	substringMatchBonus = 0.10 // Cleaned entry is a substring of the product name
)

// MatchConfig holds configuration for the product matcher
type MatchConfig struct {
	MinConfidence     float64 // 0-1
	FuzzyEditDistance int
}

// ProductMatch is the catalog product a free-text entry resolved to
type ProductMatch struct {
	Product       domain.Product
	Confidence    float64
	Method        string
	MatchedTokens []string
}

// ProductMatcher resolves shopping-list entries to catalog products
type ProductMatcher struct {
	minConfidence     float64
	fuzzyEditDistance int
	logger            zerolog.Logger
}

// NewProductMatcher creates a new matcher with the given configuration
func NewProductMatcher(config MatchConfig, logger zerolog.Logger) *ProductMatcher {
	threshold := config.MinConfidence
	if threshold <= 0 {
		threshold = 0.6
	}

	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1
	}

	return &ProductMatcher{
		minConfidence:     threshold,
		fuzzyEditDistance: fuzzyDist,
		logger:            logger.With().Str("component", "matcher").Logger(),
	}
}

// Match resolves query against products by id, then exact name, then fuzzy name.
// A fuzzy best match under the threshold is returned together with domain.ErrLowConfidence.
func (m *ProductMatcher) Match(ctx context.Context, query string, products []domain.Product) (*ProductMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty item", domain.ErrInvalidRequest)
	}

	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}

	for _, p := range products {
		if strings.EqualFold(p.ID, query) {
			return &ProductMatch{Product: p, Confidence: 1, Method: MatchByID}, nil
		}
	}

	for _, p := range products {
		if strings.EqualFold(p.Name, query) || strings.EqualFold(p.Brand+" "+p.Name, query) {
			return &ProductMatch{Product: p, Confidence: 1, Method: MatchByName}, nil
		}
	}

	var best *ProductMatch
	for _, p := range products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		score, matched := m.calculateMatchScore(query, p)
		m.logger.Debug().
			Str("query", query).
			Str("product_id", p.ID).
			Float64("score", score).
			Strs("matched", matched).
			Msg("match candidate")

		if best == nil || score > best.Confidence {
			best = &ProductMatch{Product: p, Confidence: score, Method: MatchByFuzzy, MatchedTokens: matched}
		}
	}

	if best.Confidence < m.minConfidence {
		return best, fmt.Errorf("%w: %q best matches %s at %.2f", domain.ErrLowConfidence, query, best.Product.ID, best.Confidence)
	}

	return best, nil
}

// calculateMatchScore computes similarity between a shopping-list entry and a product.
// Uses a weighted combination of:
//   - entry token coverage: weighted share of entry tokens found in the product (most important)
//   - product token coverage: weighted share of product tokens found in the entry
//   - Jaccard overlap of the exact token sets
//
// plus brand and substring bonuses. Returns the score (0-1) and the exactly matched tokens.
func (m *ProductMatcher) calculateMatchScore(query string, product domain.Product) (float64, []string) {
	cleaned := cleanItemName(query)
	queryTokens := tokenize(cleaned)
	productTokens := tokenize(product.Brand + " " + product.Name)

	if len(queryTokens) == 0 || len(productTokens) == 0 {
		return 0, nil
	}

	queryCoverage := m.weightedCoverage(queryTokens, productTokens)
	productCoverage := m.weightedCoverage(productTokens, queryTokens)

	shared, matched := findIntersection(queryTokens, productTokens)
	jaccard := float64(shared) / float64(findUnion(queryTokens, productTokens))

	score := queryCoverage*0.60 + productCoverage*0.20 + jaccard*0.20

	queryLower := strings.ToLower(query)
	if product.Brand != "" && strings.Contains(queryLower, strings.ToLower(product.Brand)) {
		score += brandMatchBonus
	}

	cleanedLower := strings.ToLower(cleaned)
	if len(cleanedLower) > 3 && strings.Contains(strings.ToLower(product.Name), cleanedLower) {
		score += substringMatchBonus
	}

	if score > 1 {
		score = 1
	}

	return score, matched
}

// weightedCoverage returns the weighted share of tokens that appear in others,
// exactly or within the fuzzy edit distance
func (m *ProductMatcher) weightedCoverage(tokens, others []string) float64 {
	exact := make(map[string]bool, len(others))
	for _, o := range others {
		exact[o] = true
	}

	total, found := 0.0, 0.0
	for _, t := range tokens {
		w := tokenWeight(t)
		total += w
		if exact[t] {
			found += w
			continue
		}
		for _, o := range others {
			if fuzzyTokenMatch(t, o, m.fuzzyEditDistance) {
				found += w * fuzzyWeightFactor
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return found / total
}
