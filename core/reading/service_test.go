package reading

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"readwell-api/core/domain"
)

// mockProgressStorage is a mock implementation of ProgressStorage
type mockProgressStorage struct {
	upsertFunc func(ctx context.Context, progress *domain.ReadingProgress) error
	getFunc    func(ctx context.Context, userID, articleID string) (*domain.ReadingProgress, bool, error)
}

func (m *mockProgressStorage) Upsert(ctx context.Context, progress *domain.ReadingProgress) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, progress)
	}
	return nil
}

func (m *mockProgressStorage) Get(ctx context.Context, userID, articleID string) (*domain.ReadingProgress, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, articleID)
	}
	return nil, false, nil
}

// mockCache is a mock implementation of Cache
type mockCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	if data, ok := m.store[key]; ok {
		return data, nil
	}
	return nil, errors.New("key not found")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.sets++
	m.store[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func testArticle(text string) *domain.Article {
	return &domain.Article{
		ID:          "article-1",
		UserID:      "user-1",
		ContentText: text,
		UpdatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestResume_NoStoredProgress(t *testing.T) {
	service := NewService(&mockProgressStorage{}, nil, nil)

	page, err := service.Resume(context.Background(), "user-1", "article-1", 10)
	if err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if page != 0 {
		t.Errorf("Resume with no stored progress = %d, want 0", page)
	}
}

func TestRecordThenResume(t *testing.T) {
	var stored *domain.ReadingProgress
	storage := &mockProgressStorage{
		upsertFunc: func(ctx context.Context, progress *domain.ReadingProgress) error {
			stored = progress
			return nil
		},
		getFunc: func(ctx context.Context, userID, articleID string) (*domain.ReadingProgress, bool, error) {
			if stored == nil {
				return nil, false, nil
			}
			return stored, true, nil
		},
	}
	service := NewService(storage, nil, nil)

	if err := service.Record(context.Background(), "user-1", "article-1", 2, 5); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if stored == nil {
		t.Fatal("Record did not reach storage")
	}
	if stored.CurrentPage != 2 || stored.TotalPages != 5 {
		t.Errorf("stored progress = {%d, %d}, want {2, 5}", stored.CurrentPage, stored.TotalPages)
	}
	if stored.UserID != "user-1" || stored.ArticleID != "article-1" {
		t.Errorf("stored progress keyed (%s, %s), want (user-1, article-1)", stored.UserID, stored.ArticleID)
	}
	if stored.LastReadAt.IsZero() {
		t.Error("Record left LastReadAt unset")
	}

	page, err := service.Resume(context.Background(), "user-1", "article-1", 5)
	if err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if page != 2 {
		t.Errorf("Resume = %d, want 2", page)
	}
}

func TestResume_ClampsStaleIndex(t *testing.T) {
	// Progress stored against a longer split; the article has since been
	// re-extracted and now fits in 5 pages.
	storage := &mockProgressStorage{
		getFunc: func(ctx context.Context, userID, articleID string) (*domain.ReadingProgress, bool, error) {
			return &domain.ReadingProgress{
				UserID:      userID,
				ArticleID:   articleID,
				CurrentPage: 9,
				TotalPages:  12,
			}, true, nil
		},
	}
	service := NewService(storage, nil, nil)

	page, err := service.Resume(context.Background(), "user-1", "article-1", 5)
	if err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if page != 4 {
		t.Errorf("Resume = %d, want 4 (clamped to last page)", page)
	}
}

func TestRecord_SanitizesInput(t *testing.T) {
	cases := []struct {
		page, total         int
		wantPage, wantTotal int
	}{
		{-3, 5, 0, 5},
		{2, 0, 0, 1},
		{7, 5, 4, 5},
	}

	for _, c := range cases {
		var stored *domain.ReadingProgress
		storage := &mockProgressStorage{
			upsertFunc: func(ctx context.Context, progress *domain.ReadingProgress) error {
				stored = progress
				return nil
			},
		}
		service := NewService(storage, nil, nil)

		if err := service.Record(context.Background(), "u", "a", c.page, c.total); err != nil {
			t.Fatalf("Record(%d, %d) returned error: %v", c.page, c.total, err)
		}
		if stored.CurrentPage != c.wantPage || stored.TotalPages != c.wantTotal {
			t.Errorf("Record(%d, %d) stored {%d, %d}, want {%d, %d}",
				c.page, c.total, stored.CurrentPage, stored.TotalPages, c.wantPage, c.wantTotal)
		}
	}
}

func TestRecord_PropagatesStorageError(t *testing.T) {
	storage := &mockProgressStorage{
		upsertFunc: func(ctx context.Context, progress *domain.ReadingProgress) error {
			return errors.New("disk full")
		},
	}
	service := NewService(storage, nil, nil)

	if err := service.Record(context.Background(), "u", "a", 0, 1); err == nil {
		t.Error("Record should surface the storage error")
	}
}

func TestPagesFor_SplitsText(t *testing.T) {
	service := NewService(&mockProgressStorage{}, nil, nil)
	article := testArticle(strings.Repeat("z", 2500))

	pages := service.PagesFor(context.Background(), article, 1000)
	if len(pages) != 3 {
		t.Fatalf("PagesFor returned %d pages, want 3", len(pages))
	}
}

func TestPagesFor_ClampsCapacity(t *testing.T) {
	service := NewService(&mockProgressStorage{}, nil, nil)
	article := testArticle(strings.Repeat("z", MinPageCapacity*2))

	// A tiny capacity is lifted to the minimum, so two pages, not dozens.
	pages := service.PagesFor(context.Background(), article, 10)
	if len(pages) != 2 {
		t.Errorf("PagesFor(cap=10) returned %d pages, want 2", len(pages))
	}
}

func TestPagesFor_CachesSplit(t *testing.T) {
	cache := newMockCache()
	service := NewService(&mockProgressStorage{}, cache, nil)
	article := testArticle(strings.Repeat("z", 3000))

	first := service.PagesFor(context.Background(), article, 1000)
	second := service.PagesFor(context.Background(), article, 1000)

	if len(first) != len(second) {
		t.Fatalf("page counts differ: %d vs %d", len(first), len(second))
	}
	if cache.sets != 1 {
		t.Errorf("cache stored %d entries, want 1 (second call should hit)", cache.sets)
	}
}

func TestPagesFor_CacheKeyedByUpdatedAt(t *testing.T) {
	cache := newMockCache()
	service := NewService(&mockProgressStorage{}, cache, nil)

	article := testArticle(strings.Repeat("a", 2000))
	service.PagesFor(context.Background(), article, 1000)

	// Re-extraction bumps updatedAt and changes the text; the stale cache
	// entry must not be served.
	article.ContentText = strings.Repeat("b", 900)
	article.UpdatedAt = article.UpdatedAt.Add(time.Hour)

	pages := service.PagesFor(context.Background(), article, 1000)
	if len(pages) != 1 {
		t.Errorf("PagesFor after re-extraction returned %d pages, want 1", len(pages))
	}
}
