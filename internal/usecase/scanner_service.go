package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/arrxxhh/walmart/internal/domain"
)

// ScannerServiceConfig holds configuration for the scanner service
type ScannerServiceConfig struct {
	DefaultLimit        int
	MaxLimit            int
	CategoryPolicy      CategoryPolicy
	MinAlternativeScore float64
	CacheTTL            time.Duration
}

// ScannerService evaluates products against shopper profiles and finds substitutes.
// The catalog is read-only, so every operation is safe for concurrent use.
type ScannerService struct {
	catalog      domain.CatalogRepository
	cache        domain.CacheRepository
	evaluator    *SafetyEvaluator
	ranker       *AlternativeRanker
	defaultLimit int
	maxLimit     int
	cacheTTL     time.Duration
	logger       zerolog.Logger
}

// NewScannerService creates a new scanner service with dependencies.
// cache may be nil, which disables scan report caching.
func NewScannerService(
	catalog domain.CatalogRepository,
	cache domain.CacheRepository,
	config ScannerServiceConfig,
	logger zerolog.Logger,
) *ScannerService {
	maxLimit := config.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 20
	}

	defaultLimit := config.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 3
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	evaluator := NewSafetyEvaluator(DefaultScoringPolicy())
	ranker := NewAlternativeRanker(evaluator, RankerConfig{
		CategoryPolicy: config.CategoryPolicy,
		MinScore:       config.MinAlternativeScore,
	})

	return &ScannerService{
		catalog:      catalog,
		cache:        cache,
		evaluator:    evaluator,
		ranker:       ranker,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		cacheTTL:     cacheTTL,
		logger:       logger.With().Str("component", "scanner").Logger(),
	}
}

// GetProduct returns one catalog product
func (s *ScannerService) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	return s.catalog.GetProduct(ctx, productID)
}

// GetProfile returns one shopper profile
func (s *ScannerService) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	return s.catalog.GetProfile(ctx, userID)
}

// ListProducts returns the whole catalog ordered by id
func (s *ScannerService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

// Evaluate scores one product for one shopper
func (s *ScannerService) Evaluate(ctx context.Context, productID, userID string) (domain.SafetyVerdict, error) {
	product, profile, err := s.resolve(ctx, productID, userID)
	if err != nil {
		return domain.SafetyVerdict{}, err
	}

	verdict := s.evaluator.Evaluate(product, profile)
	s.logger.Debug().
		Str("product_id", productID).
		Str("user_id", userID).
		Float64("score", verdict.Score).
		Str("classification", string(verdict.Classification)).
		Msg("product evaluated")

	return verdict, nil
}

// FindAlternatives returns up to limit safe substitutes for a product.
// limit <= 0 selects the default; limits above the maximum are clamped.
func (s *ScannerService) FindAlternatives(ctx context.Context, productID, userID string, limit int) ([]domain.Alternative, error) {
	product, profile, err := s.resolve(ctx, productID, userID)
	if err != nil {
		return nil, err
	}

	return s.alternatives(ctx, product, profile, s.ResolveLimit(limit))
}

// ResolveLimit applies the default and maximum to a requested alternative count
func (s *ScannerService) ResolveLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

// Scan builds the full report for a scanned QR payload.
// Flow: parse payload -> check cache -> evaluate -> alternatives if not safe -> cache -> return
func (s *ScannerService) Scan(ctx context.Context, request *domain.ScanRequest) (*domain.ScanReport, error) {
	if request == nil || request.UserID == "" {
		return nil, domain.ErrInvalidRequest
	}

	productID, err := ParseQRPayload(request.QRCodeData)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("scan:%s:%s", productID, request.UserID)
	if report, ok := s.getFromCache(ctx, cacheKey); ok {
		return report, nil
	}

	product, profile, err := s.resolve(ctx, productID, request.UserID)
	if err != nil {
		return nil, err
	}

	verdict := s.evaluator.Evaluate(product, profile)

	alternatives := []domain.Alternative{}
	if verdict.Classification != domain.ClassificationSafe {
		if alternatives, err = s.alternatives(ctx, product, profile, s.defaultLimit); err != nil {
			return nil, err
		}
	}

	report := &domain.ScanReport{
		Product:           product,
		Verdict:           verdict,
		NutritionAnalysis: AnalyzeNutrition(product, profile),
		Alternatives:      alternatives,
		PriceComparison:   comparePrices(product, alternatives),
		Recommendation:    recommendationFor(verdict.Classification),
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("user_id", request.UserID).
		Str("classification", string(verdict.Classification)).
		Int("alternatives", len(alternatives)).
		Msg("scan analyzed")

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, report, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache scan report")
		}
	}

	return report, nil
}

// SafeAlternative returns the best substitute for product, if any
func (s *ScannerService) SafeAlternative(ctx context.Context, product domain.Product, profile domain.UserProfile) (*domain.Alternative, error) {
	alts, err := s.alternatives(ctx, product, profile, 1)
	if err != nil || len(alts) == 0 {
		return nil, err
	}
	return &alts[0], nil
}

// EvaluateProduct scores an already resolved product
func (s *ScannerService) EvaluateProduct(product domain.Product, profile domain.UserProfile) domain.SafetyVerdict {
	return s.evaluator.Evaluate(product, profile)
}

func (s *ScannerService) alternatives(ctx context.Context, product domain.Product, profile domain.UserProfile, limit int) ([]domain.Alternative, error) {
	catalog, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return s.ranker.Rank(product, catalog, profile, limit), nil
}

func (s *ScannerService) resolve(ctx context.Context, productID, userID string) (domain.Product, domain.UserProfile, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, domain.UserProfile{}, err
	}

	profile, err := s.catalog.GetProfile(ctx, userID)
	if err != nil {
		return domain.Product{}, domain.UserProfile{}, err
	}

	return product, profile, nil
}

// getFromCache retrieves a scan report from cache
func (s *ScannerService) getFromCache(ctx context.Context, key string) (*domain.ScanReport, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var report domain.ScanReport
	if err := json.Unmarshal(raw, &report); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached scan report")
		return nil, false
	}

	return &report, true
}

// comparePrices reports the average alternative price and whether any
// alternative is cheaper than the scanned product
func comparePrices(product domain.Product, alternatives []domain.Alternative) domain.PriceComparison {
	comparison := domain.PriceComparison{
		CurrentPrice:            product.Price,
		AverageAlternativePrice: decimal.Zero,
	}
	if len(alternatives) == 0 {
		return comparison
	}

	sum := decimal.Zero
	for _, alt := range alternatives {
		sum = sum.Add(alt.Product.Price)
		if alt.Product.Price.LessThan(product.Price) {
			comparison.BudgetFriendly = true
		}
	}
	comparison.AverageAlternativePrice = sum.Div(decimal.NewFromInt(int64(len(alternatives)))).Round(2)

	return comparison
}

func recommendationFor(c domain.Classification) string {
	switch c {
	case domain.ClassificationSafe:
		return domain.RecommendationSafe
	case domain.ClassificationCaution:
		return domain.RecommendationCaution
	default:
		return domain.RecommendationAvoid
	}
}
