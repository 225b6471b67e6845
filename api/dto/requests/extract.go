// ABOUTME: Request DTOs for the extraction invocation boundary
// ABOUTME: Defines the structure for extraction requests

package requests

// ExtractRequest asks the service to fetch and extract a web article for the
// authenticated user. ArticleID is optional: when absent a new article record
// is created.
type ExtractRequest struct {
	URL       string `json:"url" required:"true" format:"uri" example:"https://example.com/article" doc:"Article URL to fetch and extract"`
	ArticleID string `json:"articleId,omitempty" doc:"Existing article to re-extract; omit to create one"`
}
