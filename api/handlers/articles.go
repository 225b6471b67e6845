// ABOUTME: Article library handlers for the Huma API
// ABOUTME: Provides owner-scoped listing, retrieval and status transitions

package handlers

import (
	"context"
	"net/http"

	"readwell-api/api/dto/requests"
	"readwell-api/api/dto/responses"
	"readwell-api/api/middleware"
	"readwell-api/core/domain"
	"readwell-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

// ArticlesHandler handles article library requests
type ArticlesHandler struct {
	articles interfaces.ArticleStorage
}

// NewArticlesHandler creates a new articles handler
func NewArticlesHandler(articles interfaces.ArticleStorage) *ArticlesHandler {
	return &ArticlesHandler{articles: articles}
}

// RegisterRoutes registers all article library routes
func (h *ArticlesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listArticles",
		Method:      http.MethodGet,
		Path:        "/articles",
		Summary:     "List saved articles",
		Tags:        []string{"Articles"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "getArticle",
		Method:      http.MethodGet,
		Path:        "/articles/{id}",
		Summary:     "Get a saved article",
		Tags:        []string{"Articles"},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "setArticleStatus",
		Method:      http.MethodPatch,
		Path:        "/articles/{id}",
		Summary:     "Update an article's reading status",
		Tags:        []string{"Articles"},
	}, h.SetStatus)
}

// ListArticlesInput defines the input for the List operation
type ListArticlesInput struct{}

// ListArticlesOutput defines the output for the List operation
type ListArticlesOutput struct {
	Body responses.ArticleListResponse
}

// List returns the caller's articles, newest first
func (h *ArticlesHandler) List(ctx context.Context, _ *ListArticlesInput) (*ListArticlesOutput, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing identity")
	}

	articles, err := h.articles.List(ctx, userID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ListArticlesOutput{
		Body: responses.ArticleListResponse{Articles: articles},
	}, nil
}

// GetArticleInput defines the input for the Get operation
type GetArticleInput struct {
	ID string `path:"id" doc:"Article ID"`
}

// GetArticleOutput defines the output for the Get operation
type GetArticleOutput struct {
	Body domain.Article
}

// Get returns one of the caller's articles
func (h *ArticlesHandler) Get(ctx context.Context, input *GetArticleInput) (*GetArticleOutput, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing identity")
	}

	article, err := h.articles.Get(ctx, input.ID, userID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GetArticleOutput{Body: *article}, nil
}

// SetStatusInput defines the input for the SetStatus operation
type SetStatusInput struct {
	ID   string `path:"id" doc:"Article ID"`
	Body requests.StatusRequest
}

// SetStatusOutput defines the output for the SetStatus operation
type SetStatusOutput struct {
	Body responses.AckResponse
}

// SetStatus moves an article through its reading lifecycle
func (h *ArticlesHandler) SetStatus(ctx context.Context, input *SetStatusInput) (*SetStatusOutput, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing identity")
	}

	status := domain.ArticleStatus(input.Body.Status)
	if !status.IsValid() {
		return nil, huma.Error400BadRequest("status must be unread, finished or archived")
	}

	if err := h.articles.SetStatus(ctx, input.ID, userID, status); err != nil {
		return nil, toHumaError(err)
	}

	return &SetStatusOutput{Body: responses.AckResponse{OK: true}}, nil
}
