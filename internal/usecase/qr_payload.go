package usecase

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/arrxxhh/walmart/internal/domain"
)

const productPayloadPrefix = "product:"

// ParseQRPayload extracts the product id from scanned QR text.
// Accepted forms: a bare id, "product:<id>", or a URL carrying an "id" or "sku"
// query parameter (falling back to the last path segment).
func ParseQRPayload(data string) (string, error) {
	s := strings.TrimSpace(data)
	if s == "" {
		return "", fmt.Errorf("%w: empty QR payload", domain.ErrInvalidRequest)
	}

	if len(s) >= len(productPayloadPrefix) && strings.EqualFold(s[:len(productPayloadPrefix)], productPayloadPrefix) {
		id := strings.TrimSpace(s[len(productPayloadPrefix):])
		if id == "" {
			return "", fmt.Errorf("%w: QR payload has no product id", domain.ErrInvalidRequest)
		}
		return id, nil
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("%w: malformed QR url: %v", domain.ErrInvalidRequest, err)
		}
		q := u.Query()
		for _, key := range []string{"id", "sku"} {
			if id := strings.TrimSpace(q.Get(key)); id != "" {
				return id, nil
			}
		}
		if last := path.Base(strings.TrimRight(u.Path, "/")); last != "." && last != "/" && last != "" {
			return last, nil
		}
		return "", fmt.Errorf("%w: QR url has no product id", domain.ErrInvalidRequest)
	}

	return s, nil
}

// QRPayload renders the canonical QR text for a product id
func QRPayload(productID string) string {
	return productPayloadPrefix + productID
}
