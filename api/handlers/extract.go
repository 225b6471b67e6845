// ABOUTME: Extraction handler for the Huma API
// ABOUTME: The invocation boundary that triggers the extraction pipeline

package handlers

import (
	"context"
	"net/http"

	"readwell-api/api/dto/requests"
	"readwell-api/api/dto/responses"
	"readwell-api/api/middleware"
	"readwell-api/core/extraction"

	"github.com/danielgtaylor/huma/v2"
)

// ExtractHandler handles extraction invocations
type ExtractHandler struct {
	extractionService *extraction.Service
}

// NewExtractHandler creates a new extraction handler
func NewExtractHandler(extractionService *extraction.Service) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService}
}

// RegisterRoutes registers the extraction route
func (h *ExtractHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractArticle",
		Method:      http.MethodPost,
		Path:        "/extract",
		Summary:     "Fetch and extract an article",
		Description: "Fetches the URL within the guard's limits, extracts readable content and persists it on the caller's article record",
		Tags:        []string{"Extraction"},
	}, h.Extract)
}

// ExtractInput defines the input for the Extract operation
type ExtractInput struct {
	Body requests.ExtractRequest
}

// ExtractOutput defines the output for the Extract operation
type ExtractOutput struct {
	Body responses.ExtractResponse
}

// Extract runs one extraction invocation for the authenticated user
func (h *ExtractHandler) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing identity")
	}

	if input.Body.URL == "" {
		return nil, huma.Error400BadRequest("url is required")
	}

	result, err := h.extractionService.ExtractForUser(ctx, userID, input.Body.ArticleID, input.Body.URL)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ExtractOutput{
		Body: responses.ExtractResponse{
			ArticleID:     result.ArticleID,
			ExtractStatus: result.ExtractStatus,
		},
	}, nil
}
