package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/arrxxhh/walmart/internal/usecase"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// GetProductQR renders a PNG QR code whose payload scans back to the product
func (h *Handler) GetProductQR(c *gin.Context) {
	if !h.requireScanner(c) {
		return
	}

	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer between 64 and 1024"})
			return
		}
		size = n
	}

	product, err := h.scanner.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	png, err := qrcode.Encode(usecase.QRPayload(product.ID), qrcode.Medium, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
