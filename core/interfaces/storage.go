// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for article and reading-progress persistence

package interfaces

import (
	"context"

	"readwell-api/core/domain"
)

// ArticleStorage defines the interface for article persistence. All reads and
// mutations are scoped by owner; an update whose (id, owner) pair matches no
// row reports a not-found error rather than touching another user's data.
type ArticleStorage interface {
	// Create persists a new article record.
	Create(ctx context.Context, article *domain.Article) error

	// Get retrieves an article by id scoped to the owning user.
	Get(ctx context.Context, id, userID string) (*domain.Article, error)

	// List retrieves all articles owned by the user, newest first.
	List(ctx context.Context, userID string) ([]domain.Article, error)

	// SetExtractStatus updates only the extraction state fields. An empty
	// extractError clears the stored message.
	SetExtractStatus(ctx context.Context, id, userID string, status domain.ExtractStatus, extractError string) error

	// SaveExtracted writes all extracted content fields together with
	// extractStatus=succeeded in a single update.
	SaveExtracted(ctx context.Context, id, userID string, extracted *domain.ExtractedArticle, text string, nodes []domain.ContentNode) error

	// SetStatus updates the reading lifecycle status (unread/finished/archived).
	SetStatus(ctx context.Context, id, userID string, status domain.ArticleStatus) error
}

// ProgressStorage defines the interface for reading-progress persistence.
type ProgressStorage interface {
	// Upsert creates or replaces the progress record for (userID, articleID).
	Upsert(ctx context.Context, progress *domain.ReadingProgress) error

	// Get retrieves the progress record for (userID, articleID). The boolean
	// reports presence; absence is not an error.
	Get(ctx context.Context, userID, articleID string) (*domain.ReadingProgress, bool, error)
}
