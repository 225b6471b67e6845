// ABOUTME: Response DTOs for the reader boundary
// ABOUTME: Defines the paginated content payload with restored progress

package responses

import "readwell-api/core/domain"

// ReaderResponse carries an article's pages and the restored (clamped)
// reading position. When the article has not been successfully extracted yet,
// Pages is empty and ExtractStatus tells the client which distinct state to
// render instead of an empty reader.
type ReaderResponse struct {
	ArticleID     string               `json:"articleId"`
	Title         string               `json:"title,omitempty"`
	SiteName      string               `json:"siteName,omitempty"`
	ExtractStatus domain.ExtractStatus `json:"extractStatus"`
	ExtractError  string               `json:"extractError,omitempty"`
	Pages         []string             `json:"pages,omitempty"`
	CurrentPage   int                  `json:"currentPage"`
	TotalPages    int                  `json:"totalPages"`
}

// AckResponse acknowledges a write with no payload.
type AckResponse struct {
	OK bool `json:"ok"`
}
