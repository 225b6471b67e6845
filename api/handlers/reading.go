// ABOUTME: Reader boundary handlers for the Huma API
// ABOUTME: Serves paginated content with restored progress and records page-turns

package handlers

import (
	"context"
	"net/http"

	"readwell-api/api/dto/requests"
	"readwell-api/api/dto/responses"
	"readwell-api/api/middleware"
	"readwell-api/core/domain"
	"readwell-api/core/interfaces"
	"readwell-api/core/reading"

	"github.com/danielgtaylor/huma/v2"
)

// ReadingHandler handles reader sessions and progress writes
type ReadingHandler struct {
	articles       interfaces.ArticleStorage
	readingService *reading.Service
}

// NewReadingHandler creates a new reading handler
func NewReadingHandler(articles interfaces.ArticleStorage, readingService *reading.Service) *ReadingHandler {
	return &ReadingHandler{
		articles:       articles,
		readingService: readingService,
	}
}

// RegisterRoutes registers all reading routes
func (h *ReadingHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getArticlePages",
		Method:      http.MethodGet,
		Path:        "/articles/{id}/pages",
		Summary:     "Read an article in pages",
		Description: "Splits the extracted text into fixed-capacity pages and restores the caller's clamped reading position",
		Tags:        []string{"Reading"},
	}, h.GetPages)

	huma.Register(api, huma.Operation{
		OperationID: "recordProgress",
		Method:      http.MethodPut,
		Path:        "/articles/{id}/progress",
		Summary:     "Record a settled page-turn",
		Tags:        []string{"Reading"},
	}, h.RecordProgress)
}

// GetPagesInput defines the input for the GetPages operation
type GetPagesInput struct {
	ID       string `path:"id" doc:"Article ID"`
	Capacity int    `query:"capacity,omitempty" minimum:"1" default:"1100" doc:"Page capacity in characters; clamped to the supported band"`
}

// GetPagesOutput defines the output for the GetPages operation
type GetPagesOutput struct {
	Body responses.ReaderResponse
}

// GetPages returns the article's pages and the restored reading position
func (h *ReadingHandler) GetPages(ctx context.Context, input *GetPagesInput) (*GetPagesOutput, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing identity")
	}

	article, err := h.articles.Get(ctx, input.ID, userID)
	if err != nil {
		return nil, toHumaError(err)
	}

	resp := responses.ReaderResponse{
		ArticleID:     article.ID,
		Title:         article.Title,
		SiteName:      article.SiteName,
		ExtractStatus: article.ExtractStatus,
		ExtractError:  article.ExtractError,
	}

	// No content yet: the client renders a distinct "not yet extracted"
	// state from ExtractStatus rather than an empty reader.
	if article.ExtractStatus != domain.ExtractStatusSucceeded {
		return &GetPagesOutput{Body: resp}, nil
	}

	pages := h.readingService.PagesFor(ctx, article, input.Capacity)
	current, err := h.readingService.Resume(ctx, userID, article.ID, len(pages))
	if err != nil {
		return nil, toHumaError(err)
	}

	resp.Pages = pages
	resp.CurrentPage = current
	resp.TotalPages = len(pages)
	return &GetPagesOutput{Body: resp}, nil
}

// RecordProgressInput defines the input for the RecordProgress operation
type RecordProgressInput struct {
	ID   string `path:"id" doc:"Article ID"`
	Body requests.ProgressRequest
}

// RecordProgressOutput defines the output for the RecordProgress operation
type RecordProgressOutput struct {
	Body responses.AckResponse
}

// RecordProgress persists a settled page-turn for the caller
func (h *ReadingHandler) RecordProgress(ctx context.Context, input *RecordProgressInput) (*RecordProgressOutput, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing identity")
	}

	// Progress is only meaningful for articles the caller owns.
	if _, err := h.articles.Get(ctx, input.ID, userID); err != nil {
		return nil, toHumaError(err)
	}

	if err := h.readingService.Record(ctx, userID, input.ID, input.Body.CurrentPage, input.Body.TotalPages); err != nil {
		return nil, toHumaError(err)
	}

	return &RecordProgressOutput{Body: responses.AckResponse{OK: true}}, nil
}
