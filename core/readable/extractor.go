// ABOUTME: Readable-content extraction from raw article HTML
// ABOUTME: Wraps go-readability to produce cleaned markup and plain text

package readable

import (
	"net/url"
	"strings"

	"readwell-api/core/domain"
	coreerrors "readwell-api/core/errors"
	"readwell-api/core/interfaces"

	readability "github.com/go-shiori/go-readability"
)

// Extractor derives the readable subset of a page: metadata, a cleaned HTML
// fragment and its plain-text rendering. It never executes scripts or loads
// sub-resources; the input is parsed, not evaluated.
type Extractor struct {
	logger interfaces.Logger
}

// NewExtractor creates a new readable-content extractor.
func NewExtractor(logger interfaces.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract parses rawHTML as a document rooted at sourceURL and applies the
// readability heuristic. Pages with no usable text (listings, paywall stubs,
// script-only shells) fail with an empty-content ExtractionError.
func (e *Extractor) Extract(rawHTML string, sourceURL *url.URL) (*domain.ExtractedArticle, error) {
	article, err := readability.FromReader(strings.NewReader(rawHTML), sourceURL)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("Readability parse failed", map[string]interface{}{
				"url":   sourceURL.String(),
				"error": err.Error(),
			})
		}
		// go-readability fails on well-formed HTML only when it cannot
		// locate an article body, which is the no-content case.
		return nil, &coreerrors.ExtractionError{
			Message: "page has no readable content",
			Empty:   true,
		}
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, &coreerrors.ExtractionError{
			Message: "page has no readable content",
			Empty:   true,
		}
	}

	return &domain.ExtractedArticle{
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Lang:     article.Language,
		Excerpt:  article.Excerpt,
		Content:  article.Content,
		Text:     text,
	}, nil
}
