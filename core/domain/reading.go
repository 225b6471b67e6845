// ABOUTME: Domain models for reading progress tracking
// ABOUTME: Maps a (user, article) pair to the page the user last settled on

package domain

import "time"

// ReadingProgress records where a user left off in an article. CurrentPage is
// 0-based. A stored CurrentPage may exceed the freshly computed page count if
// the article was re-extracted; consumers clamp on load.
type ReadingProgress struct {
	UserID      string    `json:"userId"`
	ArticleID   string    `json:"articleId"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	LastReadAt  time.Time `json:"lastReadAt"`
}
