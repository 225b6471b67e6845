// ABOUTME: Extraction orchestrator coordinating fetch, extraction and persistence
// ABOUTME: Drives the queued->fetching->succeeded|failed state machine per article

package extraction

import (
	"context"
	"net/url"
	"time"

	"readwell-api/core/domain"
	coreerrors "readwell-api/core/errors"
	"readwell-api/core/interfaces"
	"readwell-api/core/readable"

	"github.com/google/uuid"
)

// Service orchestrates one extraction invocation: it marks the article
// fetching, runs the guarded fetch and readability pipeline, and writes a
// single terminal update (succeeded with all content fields, or failed with
// a short reason). All article writes are scoped by (id, owner).
type Service struct {
	fetcher   interfaces.PageFetcher
	extractor interfaces.ContentExtractor
	articles  interfaces.ArticleStorage
	logger    interfaces.Logger
}

// NewService creates a new extraction orchestrator.
func NewService(fetcher interfaces.PageFetcher, extractor interfaces.ContentExtractor, articles interfaces.ArticleStorage, logger interfaces.Logger) *Service {
	return &Service{
		fetcher:   fetcher,
		extractor: extractor,
		articles:  articles,
		logger:    logger,
	}
}

// Result is the outcome of an extraction invocation reported to the caller.
type Result struct {
	ArticleID     string
	ExtractStatus domain.ExtractStatus
}

// ExtractForUser runs the pipeline for userID's article. When articleID is
// empty a new article record is created atomically in the fetching state;
// otherwise the existing record is updated in place, and an (id, owner)
// mismatch surfaces as not-found without mutating anything.
//
// Pipeline failures are downgraded to a persisted failed status plus a short
// error message; the returned error still describes the failure so the
// invocation boundary can answer with a 400-class response. Previously stored
// content fields are left untouched on failure.
func (s *Service) ExtractForUser(ctx context.Context, userID, articleID, rawURL string) (*Result, error) {
	if articleID == "" {
		articleID = uuid.New().String()
		now := time.Now().UTC()
		article := &domain.Article{
			ID:            articleID,
			UserID:        userID,
			URL:           rawURL,
			Status:        domain.ArticleStatusUnread,
			ExtractStatus: domain.ExtractStatusFetching,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.articles.Create(ctx, article); err != nil {
			return nil, coreerrors.WrapError(err, "create article")
		}
	} else {
		// Persist fetching before the network call so a crash mid-fetch
		// leaves a visibly stuck state instead of a stale queued one.
		if err := s.articles.SetExtractStatus(ctx, articleID, userID, domain.ExtractStatusFetching, ""); err != nil {
			return nil, err
		}
	}

	if err := s.runPipeline(ctx, userID, articleID, rawURL); err != nil {
		s.markFailed(ctx, userID, articleID, err)
		return &Result{ArticleID: articleID, ExtractStatus: domain.ExtractStatusFailed}, err
	}

	s.logger.Info("Extraction succeeded", map[string]interface{}{
		"article_id": articleID,
		"url":        rawURL,
	})
	return &Result{ArticleID: articleID, ExtractStatus: domain.ExtractStatusSucceeded}, nil
}

func (s *Service) runPipeline(ctx context.Context, userID, articleID, rawURL string) error {
	rawHTML, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}

	sourceURL, err := url.Parse(rawURL)
	if err != nil {
		return &coreerrors.FetchError{
			Kind:    coreerrors.FetchInvalidScheme,
			URL:     rawURL,
			Message: "url must be absolute http or https",
		}
	}

	extracted, err := s.extractor.Extract(rawHTML, sourceURL)
	if err != nil {
		return err
	}

	nodes, err := readable.Normalize(extracted.Content)
	if err != nil {
		return coreerrors.WrapError(err, "normalize content")
	}

	// Terminal write: all extracted fields land together or not at all.
	if err := s.articles.SaveExtracted(ctx, articleID, userID, extracted, extracted.Text, nodes); err != nil {
		return err
	}
	return nil
}

// markFailed records the terminal failed state. Ownership errors from the
// pipeline mean the row was never ours to touch, so those skip the write.
func (s *Service) markFailed(ctx context.Context, userID, articleID string, cause error) {
	if coreerrors.IsNotFound(cause) || coreerrors.IsUnauthorized(cause) {
		return
	}

	s.logger.Warn("Extraction failed", map[string]interface{}{
		"article_id": articleID,
		"error":      cause.Error(),
	})

	if err := s.articles.SetExtractStatus(ctx, articleID, userID, domain.ExtractStatusFailed, cause.Error()); err != nil {
		s.logger.Error("Failed to persist extraction failure", map[string]interface{}{
			"article_id": articleID,
			"error":      err.Error(),
		})
	}
}
