// ABOUTME: Reading service combining pagination with persisted reading progress
// ABOUTME: Handles page-turn recording and clamped progress restoration

package reading

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"readwell-api/core/domain"
	"readwell-api/core/interfaces"
)

// pageCacheTTL bounds how long memoized page splits live. Keys embed the
// article's updatedAt, so entries for re-extracted content simply stop being
// referenced; the TTL just keeps the cache from accumulating them.
const pageCacheTTL = 30 * time.Minute

// Service provides pagination and reading-progress tracking for articles.
type Service struct {
	progress interfaces.ProgressStorage
	cache    interfaces.Cache
	logger   interfaces.Logger
}

// NewService creates a new reading service. The cache is optional; without it
// every call re-splits the text.
func NewService(progress interfaces.ProgressStorage, cache interfaces.Cache, logger interfaces.Logger) *Service {
	return &Service{
		progress: progress,
		cache:    cache,
		logger:   logger,
	}
}

// PagesFor returns the page sequence for an article's extracted text at the
// given capacity. The capacity is clamped into the supported band so the
// split is stable for a given device class.
func (s *Service) PagesFor(ctx context.Context, article *domain.Article, capacity int) []string {
	capacity = ClampCapacity(capacity)

	cacheKey := fmt.Sprintf("pages:%s:%d:%d", article.ID, capacity, article.UpdatedAt.Unix())
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var pages []string
			if err := json.Unmarshal(data, &pages); err == nil {
				return pages
			}
		}
	}

	pages := Paginate(article.ContentText, capacity)

	if s.cache != nil {
		if data, err := json.Marshal(pages); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, pageCacheTTL)
		}
	}

	return pages
}

// Record persists a settled page-turn for (userID, articleID). Malformed but
// well-typed input is sanitized rather than rejected: negative indices become
// 0 and the index is kept below totalPages when one is supplied.
func (s *Service) Record(ctx context.Context, userID, articleID string, pageIndex, totalPages int) error {
	if pageIndex < 0 {
		pageIndex = 0
	}
	if totalPages < 1 {
		totalPages = 1
	}
	if pageIndex >= totalPages {
		pageIndex = totalPages - 1
	}

	progress := &domain.ReadingProgress{
		UserID:      userID,
		ArticleID:   articleID,
		CurrentPage: pageIndex,
		TotalPages:  totalPages,
		LastReadAt:  time.Now().UTC(),
	}

	if err := s.progress.Upsert(ctx, progress); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Debug("Recorded reading progress", map[string]interface{}{
			"article_id":   articleID,
			"current_page": pageIndex,
			"total_pages":  totalPages,
		})
	}
	return nil
}

// Resume loads the stored progress for (userID, articleID) and clamps it
// against the freshly computed page count. Absence of a record means start
// at page 0 and is not an error.
func (s *Service) Resume(ctx context.Context, userID, articleID string, totalPages int) (int, error) {
	stored, found, err := s.progress.Get(ctx, userID, articleID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	return ClampPageIndex(stored.CurrentPage, totalPages), nil
}
