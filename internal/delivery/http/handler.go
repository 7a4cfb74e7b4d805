package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arrxxhh/walmart/internal/domain"
	"github.com/arrxxhh/walmart/internal/usecase"
)

const (
	serviceName    = "allergen-scanner"
	serviceVersion = "1.0.0"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanner *usecase.ScannerService
	cart    *usecase.CartService
	logger  zerolog.Logger
}

// NewHandler creates a new HTTP handler.
// Nil services are allowed; their endpoints answer 501.
func NewHandler(scanner *usecase.ScannerService, cart *usecase.CartService, logger zerolog.Logger) *Handler {
	return &Handler{
		scanner: scanner,
		cart:    cart,
		logger:  logger.With().Str("component", "http").Logger(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// ListProducts returns the catalog as product summaries
func (h *Handler) ListProducts(c *gin.Context) {
	if !h.requireScanner(c) {
		return
	}

	products, err := h.scanner.ListProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	summaries := make([]domain.ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, p.Summary())
	}

	c.JSON(http.StatusOK, gin.H{
		"products": summaries,
		"count":    len(summaries),
	})
}

// GetProduct returns one product
func (h *Handler) GetProduct(c *gin.Context) {
	if !h.requireScanner(c) {
		return
	}

	product, err := h.scanner.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProfile returns one shopper profile
func (h *Handler) GetProfile(c *gin.Context) {
	if !h.requireScanner(c) {
		return
	}

	profile, err := h.scanner.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// EvaluateProduct handles GET /products/:id/safety?userId=
func (h *Handler) EvaluateProduct(c *gin.Context) {
	if !h.requireScanner(c) {
		return
	}

	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}

	verdict, err := h.scanner.Evaluate(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, verdict)
}

// FindAlternatives handles GET /products/:id/alternatives?userId=&limit=
func (h *Handler) FindAlternatives(c *gin.Context) {
	if !h.requireScanner(c) {
		return
	}

	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	productID := c.Param("id")
	alternatives, err := h.scanner.FindAlternatives(c.Request.Context(), productID, userID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId":    productID,
		"userId":       userID,
		"alternatives": alternatives,
		"count":        len(alternatives),
	})
}

// Scan handles QR scan requests
func (h *Handler) Scan(c *gin.Context) {
	if !h.requireScanner(c) {
		return
	}

	var request domain.ScanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	report, err := h.scanner.Scan(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// CheckCart handles shopping-list checks
func (h *Handler) CheckCart(c *gin.Context) {
	if h.cart == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "cart service not configured"})
		return
	}

	var request domain.CartCheckRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.cart.Check(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) requireScanner(c *gin.Context) bool {
	if h.scanner == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "scanner service not configured"})
		return false
	}
	return true
}

// respondError maps domain errors onto HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		h.logger.Error().
			Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
