// ABOUTME: Request DTOs for reading progress and article status updates
// ABOUTME: Defines the structures for page-turn and lifecycle transitions

package requests

// ProgressRequest records a settled page-turn.
type ProgressRequest struct {
	CurrentPage int `json:"currentPage" minimum:"0" doc:"0-based index of the page now being read"`
	TotalPages  int `json:"totalPages" minimum:"1" doc:"Page count the client computed for its capacity"`
}

// StatusRequest moves an article through its reading lifecycle.
type StatusRequest struct {
	Status string `json:"status" required:"true" enum:"unread,finished,archived" doc:"New reading status"`
}
