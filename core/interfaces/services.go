// ABOUTME: Service interfaces consumed across component boundaries
// ABOUTME: Allows orchestration code to be tested with fakes

package interfaces

import (
	"context"
	"net/url"

	"readwell-api/core/domain"
)

// PageFetcher retrieves a remote page as UTF-8 text, subject to the fetch
// guard's scheme, host, time and size policies.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// ContentExtractor derives the readable subset of a fetched page.
type ContentExtractor interface {
	Extract(rawHTML string, sourceURL *url.URL) (*domain.ExtractedArticle, error)
}
