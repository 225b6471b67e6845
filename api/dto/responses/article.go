// ABOUTME: Response DTOs for article endpoints
// ABOUTME: Defines the wire shapes for extraction results and article views

package responses

import "readwell-api/core/domain"

// ExtractResponse reports the outcome of an extraction invocation.
type ExtractResponse struct {
	ArticleID     string               `json:"articleId"`
	ExtractStatus domain.ExtractStatus `json:"extractStatus"`
}

// ArticleListResponse wraps the owner's article library.
type ArticleListResponse struct {
	Articles []domain.Article `json:"articles"`
}
