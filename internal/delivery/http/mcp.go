package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"

	"github.com/arrxxhh/walmart/internal/domain"
)

// EvaluateProductParams are the arguments of the evaluate_product tool
type EvaluateProductParams struct {
	ProductID string `json:"product_id" description:"Catalog id of the product to evaluate"`
	UserID    string `json:"user_id" description:"Id of the shopper profile"`
}

// FindAlternativesParams are the arguments of the find_alternatives tool
type FindAlternativesParams struct {
	ProductID string `json:"product_id" description:"Catalog id of the product to replace"`
	UserID    string `json:"user_id" description:"Id of the shopper profile"`
	Limit     int    `json:"limit,omitempty" description:"Maximum number of alternatives"`
}

// ScanProductParams are the arguments of the scan_product tool
type ScanProductParams struct {
	QRCodeData string `json:"qr_code_data" description:"Raw QR payload read by the scanner"`
	UserID     string `json:"user_id" description:"Id of the shopper profile"`
}

// toolDescriptor describes one callable tool
type toolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

type toolFunc func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

var toolDescriptors = []toolDescriptor{
	{
		Name:        "evaluate_product",
		Description: "Score a product against a shopper's allergies, restrictions and brand preferences",
		InputSchema: objectSchema(map[string]string{
			"product_id": "string",
			"user_id":    "string",
		}, "product_id", "user_id"),
	},
	{
		Name:        "find_alternatives",
		Description: "Rank allergy-free substitutes for a product",
		InputSchema: objectSchema(map[string]string{
			"product_id": "string",
			"user_id":    "string",
			"limit":      "integer",
		}, "product_id", "user_id"),
	},
	{
		Name:        "scan_product",
		Description: "Build the full scan report for a QR payload",
		InputSchema: objectSchema(map[string]string{
			"qr_code_data": "string",
			"user_id":      "string",
		}, "qr_code_data", "user_id"),
	},
}

func objectSchema(properties map[string]string, required ...string) map[string]interface{} {
	props := make(map[string]interface{}, len(properties))
	for name, typ := range properties {
		props[name] = map[string]string{"type": typ}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// ListTools returns the tool catalog
func (h *Handler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": toolDescriptors})
}

// CallTool dispatches a tool call to the scanner service
func (h *Handler) CallTool(c *gin.Context) {
	if !h.requireScanner(c) {
		return
	}

	var request protocol.CallToolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	tools := map[string]toolFunc{
		"evaluate_product":  h.handleEvaluateProduct,
		"find_alternatives": h.handleFindAlternatives,
		"scan_product":      h.handleScanProduct,
	}

	tool, ok := tools[request.Name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown tool: %s", request.Name)})
		return
	}

	result, err := tool(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleEvaluateProduct(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EvaluateProductParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ProductID == "" || params.UserID == "" {
		return nil, fmt.Errorf("%w: product_id and user_id are required", domain.ErrInvalidRequest)
	}

	verdict, err := h.scanner.Evaluate(ctx, params.ProductID, params.UserID)
	if err != nil {
		return nil, err
	}
	return createJSONResult(verdict)
}

func (h *Handler) handleFindAlternatives(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params FindAlternativesParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ProductID == "" || params.UserID == "" {
		return nil, fmt.Errorf("%w: product_id and user_id are required", domain.ErrInvalidRequest)
	}
	if params.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", domain.ErrInvalidRequest)
	}

	alternatives, err := h.scanner.FindAlternatives(ctx, params.ProductID, params.UserID, params.Limit)
	if err != nil {
		return nil, err
	}
	return createJSONResult(alternatives)
}

func (h *Handler) handleScanProduct(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ScanProductParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.QRCodeData == "" || params.UserID == "" {
		return nil, fmt.Errorf("%w: qr_code_data and user_id are required", domain.ErrInvalidRequest)
	}

	report, err := h.scanner.Scan(ctx, &domain.ScanRequest{
		QRCodeData: params.QRCodeData,
		UserID:     params.UserID,
	})
	if err != nil {
		return nil, err
	}
	return createJSONResult(report)
}

// extractParams converts the request arguments into target
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", domain.ErrInvalidRequest, err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal parameters: %v", domain.ErrInvalidRequest, err)
	}

	return nil
}

func createJSONResult(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
