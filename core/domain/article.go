// ABOUTME: Domain models for saved articles and their extracted content
// ABOUTME: Defines article lifecycle states and the normalized content node variants

package domain

import "time"

// ArticleStatus represents the reading lifecycle of an article.
type ArticleStatus string

const (
	ArticleStatusUnread   ArticleStatus = "unread"
	ArticleStatusFinished ArticleStatus = "finished"
	ArticleStatusArchived ArticleStatus = "archived"
)

// IsValid reports whether s is one of the known article statuses.
func (s ArticleStatus) IsValid() bool {
	switch s {
	case ArticleStatusUnread, ArticleStatusFinished, ArticleStatusArchived:
		return true
	}
	return false
}

// ExtractStatus represents the state of the content extraction pipeline
// for an article.
type ExtractStatus string

const (
	ExtractStatusQueued    ExtractStatus = "queued"
	ExtractStatusFetching  ExtractStatus = "fetching"
	ExtractStatusSucceeded ExtractStatus = "succeeded"
	ExtractStatusFailed    ExtractStatus = "failed"
)

// Article represents a saved web article owned by a single user.
// ContentText and ContentNodes are populated only when ExtractStatus is
// succeeded; ExtractError only when it is failed.
type Article struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	URL           string        `json:"url"`
	Status        ArticleStatus `json:"status"`
	ExtractStatus ExtractStatus `json:"extractStatus"`
	ExtractError  string        `json:"extractError,omitempty"`
	Title         string        `json:"title,omitempty"`
	SiteName      string        `json:"siteName,omitempty"`
	Author        string        `json:"author,omitempty"`
	Excerpt       string        `json:"excerpt,omitempty"`
	Lang          string        `json:"lang,omitempty"`
	ContentText   string        `json:"contentText,omitempty"`
	ContentNodes  []ContentNode `json:"contentNodes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// NodeKind identifies the type of a normalized content node.
type NodeKind string

const (
	NodeHeading1  NodeKind = "h1"
	NodeHeading2  NodeKind = "h2"
	NodeHeading3  NodeKind = "h3"
	NodeParagraph NodeKind = "p"
	NodeQuote     NodeKind = "blockquote"
	NodeImage     NodeKind = "img"
)

// ContentNode is one element of an article's normalized content sequence.
// Text nodes carry Text; image nodes carry Src and Alt. Ordering within the
// sequence is document order and is significant.
type ContentNode struct {
	Kind NodeKind `json:"t"`
	Text string   `json:"text,omitempty"`
	Src  string   `json:"src,omitempty"`
	Alt  string   `json:"alt,omitempty"`
}

// ExtractedArticle is the result of readable-content extraction before it is
// normalized and persisted.
type ExtractedArticle struct {
	Title    string
	Byline   string
	SiteName string
	Lang     string
	Excerpt  string
	Content  string // cleaned HTML fragment
	Text     string // plain-text rendering of Content
}
