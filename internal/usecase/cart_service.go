package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arrxxhh/walmart/internal/domain"
)

// CartService checks a shopping list against a shopper profile
type CartService struct {
	scanner *ScannerService
	matcher *ProductMatcher
	logger  zerolog.Logger
}

// NewCartService creates a new cart service
func NewCartService(scanner *ScannerService, matcher *ProductMatcher, logger zerolog.Logger) *CartService {
	return &CartService{
		scanner: scanner,
		matcher: matcher,
		logger:  logger.With().Str("component", "cart").Logger(),
	}
}

// Check resolves every entry and evaluates it. Unresolvable entries are reported
// as NotFound rather than failing the whole list.
func (s *CartService) Check(ctx context.Context, request *domain.CartCheckRequest) (*domain.CartCheckResult, error) {
	if request == nil || request.UserID == "" {
		return nil, domain.ErrInvalidRequest
	}

	profile, err := s.scanner.GetProfile(ctx, request.UserID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.scanner.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	result := &domain.CartCheckResult{
		UserID: profile.ID,
		Items:  make([]domain.CartItemResult, 0, len(request.Items)),
	}

	for _, item := range request.Items {
		itemResult, err := s.checkItem(ctx, item, catalog, profile)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, itemResult)
	}

	s.logger.Info().
		Str("user_id", profile.ID).
		Int("items", len(result.Items)).
		Msg("cart checked")

	return result, nil
}

func (s *CartService) checkItem(ctx context.Context, item string, catalog []domain.Product, profile domain.UserProfile) (domain.CartItemResult, error) {
	out := domain.CartItemResult{Original: item}

	match, err := s.matcher.Match(ctx, item, catalog)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrLowConfidence), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidRequest):
		out.Status = domain.CartStatusNotFound
		out.Reason = "no matching product in catalog"
		return out, nil
	default:
		return out, err
	}

	summary := match.Product.Summary()
	verdict := s.scanner.EvaluateProduct(match.Product, profile)

	out.Product = &summary
	out.MatchConfidence = match.Confidence
	out.Verdict = &verdict

	switch verdict.Classification {
	case domain.ClassificationSafe:
		out.Status = domain.CartStatusSafe
		return out, nil
	case domain.ClassificationCaution:
		out.Status = domain.CartStatusWarn
		out.Reason = firstWarning(verdict)
		return out, nil
	}

	out.Status = domain.CartStatusRisk
	out.Reason = firstWarning(verdict)

	alt, err := s.scanner.SafeAlternative(ctx, match.Product, profile)
	if err != nil {
		return out, err
	}
	if alt != nil {
		altSummary := alt.Product.Summary()
		out.Status = domain.CartStatusSubstituted
		out.SafeAlternative = &altSummary
	}

	return out, nil
}

func firstWarning(v domain.SafetyVerdict) string {
	if len(v.Warnings) == 0 {
		return ""
	}
	return v.Warnings[0]
}
