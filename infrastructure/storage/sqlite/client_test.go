package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"readwell-api/core/domain"
	coreerrors "readwell-api/core/errors"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func newTestArticle(id, userID string) *domain.Article {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Article{
		ID:            id,
		UserID:        userID,
		URL:           "https://example.com/" + id,
		Status:        domain.ArticleStatusUnread,
		ExtractStatus: domain.ExtractStatusQueued,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestArticleStore_CreateAndGet(t *testing.T) {
	client := newTestClient(t)
	store := client.Articles()
	ctx := context.Background()

	article := newTestArticle("a1", "u1")
	if err := store.Create(ctx, article); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := store.Get(ctx, "a1", "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != "a1" || got.UserID != "u1" || got.URL != article.URL {
		t.Errorf("Get = %+v, want created article", got)
	}
	if got.Status != domain.ArticleStatusUnread || got.ExtractStatus != domain.ExtractStatusQueued {
		t.Errorf("Get status = (%s, %s), want (unread, queued)", got.Status, got.ExtractStatus)
	}
}

func TestArticleStore_GetScopedToOwner(t *testing.T) {
	client := newTestClient(t)
	store := client.Articles()
	ctx := context.Background()

	if err := store.Create(ctx, newTestArticle("a1", "u1")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err := store.Get(ctx, "a1", "someone-else")
	if !coreerrors.IsNotFound(err) {
		t.Errorf("Get with wrong owner error = %v, want not found", err)
	}
}

func TestArticleStore_ListNewestFirst(t *testing.T) {
	client := newTestClient(t)
	store := client.Articles()
	ctx := context.Background()

	older := newTestArticle("old", "u1")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := newTestArticle("new", "u1")
	other := newTestArticle("theirs", "u2")

	for _, a := range []*domain.Article{older, newer, other} {
		if err := store.Create(ctx, a); err != nil {
			t.Fatalf("Create(%s) returned error: %v", a.ID, err)
		}
	}

	articles, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("List returned %d articles, want 2", len(articles))
	}
	if articles[0].ID != "new" || articles[1].ID != "old" {
		t.Errorf("List order = [%s, %s], want [new, old]", articles[0].ID, articles[1].ID)
	}
}

func TestArticleStore_SetExtractStatus(t *testing.T) {
	client := newTestClient(t)
	store := client.Articles()
	ctx := context.Background()

	if err := store.Create(ctx, newTestArticle("a1", "u1")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := store.SetExtractStatus(ctx, "a1", "u1", domain.ExtractStatusFailed, "request timed out"); err != nil {
		t.Fatalf("SetExtractStatus returned error: %v", err)
	}

	got, err := store.Get(ctx, "a1", "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ExtractStatus != domain.ExtractStatusFailed || got.ExtractError != "request timed out" {
		t.Errorf("after failure: status = %s, error = %q", got.ExtractStatus, got.ExtractError)
	}

	// Empty message clears the stored error.
	if err := store.SetExtractStatus(ctx, "a1", "u1", domain.ExtractStatusFetching, ""); err != nil {
		t.Fatalf("SetExtractStatus returned error: %v", err)
	}
	got, err = store.Get(ctx, "a1", "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ExtractStatus != domain.ExtractStatusFetching || got.ExtractError != "" {
		t.Errorf("after retry: status = %s, error = %q, want fetching with cleared error", got.ExtractStatus, got.ExtractError)
	}
}

func TestArticleStore_SetExtractStatusWrongOwner(t *testing.T) {
	client := newTestClient(t)
	store := client.Articles()
	ctx := context.Background()

	if err := store.Create(ctx, newTestArticle("a1", "u1")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	err := store.SetExtractStatus(ctx, "a1", "intruder", domain.ExtractStatusFailed, "x")
	if !coreerrors.IsNotFound(err) {
		t.Fatalf("SetExtractStatus with wrong owner error = %v, want not found", err)
	}

	got, err := store.Get(ctx, "a1", "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ExtractStatus != domain.ExtractStatusQueued {
		t.Errorf("row mutated by wrong-owner update: status = %s", got.ExtractStatus)
	}
}

func TestArticleStore_SaveExtractedRoundTrip(t *testing.T) {
	client := newTestClient(t)
	store := client.Articles()
	ctx := context.Background()

	if err := store.Create(ctx, newTestArticle("a1", "u1")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	// A stale failure message from a previous attempt must be cleared.
	if err := store.SetExtractStatus(ctx, "a1", "u1", domain.ExtractStatusFailed, "old failure"); err != nil {
		t.Fatalf("SetExtractStatus returned error: %v", err)
	}

	extracted := &domain.ExtractedArticle{
		Title:    "A Title",
		Byline:   "Jane Doe",
		SiteName: "Example",
		Lang:     "en",
		Excerpt:  "An excerpt.",
		Content:  "<p>body</p>",
		Text:     "body",
	}
	nodes := []domain.ContentNode{
		{Kind: domain.NodeHeading1, Text: "A Title"},
		{Kind: domain.NodeParagraph, Text: "body"},
		{Kind: domain.NodeImage, Src: "/pic.png", Alt: "a pic"},
	}

	if err := store.SaveExtracted(ctx, "a1", "u1", extracted, "body", nodes); err != nil {
		t.Fatalf("SaveExtracted returned error: %v", err)
	}

	got, err := store.Get(ctx, "a1", "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ExtractStatus != domain.ExtractStatusSucceeded {
		t.Errorf("status = %s, want succeeded", got.ExtractStatus)
	}
	if got.ExtractError != "" {
		t.Errorf("extract error = %q, want cleared", got.ExtractError)
	}
	if got.Title != "A Title" || got.Author != "Jane Doe" || got.SiteName != "Example" {
		t.Errorf("metadata = (%s, %s, %s)", got.Title, got.Author, got.SiteName)
	}
	if got.Lang != "en" || got.Excerpt != "An excerpt." || got.ContentText != "body" {
		t.Errorf("content fields = (%s, %s, %s)", got.Lang, got.Excerpt, got.ContentText)
	}
	if len(got.ContentNodes) != 3 {
		t.Fatalf("stored %d nodes, want 3", len(got.ContentNodes))
	}
	if got.ContentNodes[2].Kind != domain.NodeImage || got.ContentNodes[2].Src != "/pic.png" || got.ContentNodes[2].Alt != "a pic" {
		t.Errorf("node 2 = %+v, want image", got.ContentNodes[2])
	}
}

func TestArticleStore_SetStatus(t *testing.T) {
	client := newTestClient(t)
	store := client.Articles()
	ctx := context.Background()

	if err := store.Create(ctx, newTestArticle("a1", "u1")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := store.SetStatus(ctx, "a1", "u1", domain.ArticleStatusArchived); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	got, err := store.Get(ctx, "a1", "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Status != domain.ArticleStatusArchived {
		t.Errorf("status = %s, want archived", got.Status)
	}

	if err := store.SetStatus(ctx, "missing", "u1", domain.ArticleStatusFinished); !coreerrors.IsNotFound(err) {
		t.Errorf("SetStatus on missing article error = %v, want not found", err)
	}
}

func TestProgressStore_UpsertAndGet(t *testing.T) {
	client := newTestClient(t)
	store := client.Progress()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "u1", "a1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found {
		t.Fatal("Get reported progress before any was stored")
	}

	first := &domain.ReadingProgress{
		UserID:      "u1",
		ArticleID:   "a1",
		CurrentPage: 2,
		TotalPages:  5,
		LastReadAt:  time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	got, found, err := store.Get(ctx, "u1", "a1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found {
		t.Fatal("Get did not find stored progress")
	}
	if got.CurrentPage != 2 || got.TotalPages != 5 {
		t.Errorf("Get = {%d, %d}, want {2, 5}", got.CurrentPage, got.TotalPages)
	}

	// Second write replaces, not duplicates.
	first.CurrentPage = 4
	if err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	got, _, err = store.Get(ctx, "u1", "a1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.CurrentPage != 4 {
		t.Errorf("CurrentPage after upsert = %d, want 4", got.CurrentPage)
	}
}

func TestProgressStore_ScopedPerUser(t *testing.T) {
	client := newTestClient(t)
	store := client.Progress()
	ctx := context.Background()

	if err := store.Upsert(ctx, &domain.ReadingProgress{
		UserID:      "u1",
		ArticleID:   "a1",
		CurrentPage: 3,
		TotalPages:  10,
		LastReadAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	_, found, err := store.Get(ctx, "u2", "a1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found {
		t.Error("another user can see u1's progress")
	}
}
