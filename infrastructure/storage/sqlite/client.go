// ABOUTME: SQLite-backed record store for articles and reading progress
// ABOUTME: All article mutations are owner-scoped conditional updates

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"readwell-api/core/domain"
	coreerrors "readwell-api/core/errors"
)

// Client owns the SQLite connection shared by the article and progress stores.
type Client struct {
	db       *sql.DB
	articles *ArticleStore
	progress *ProgressStore
}

// NewClient opens (or creates) the database at filePath and initializes the
// schema.
func NewClient(filePath string) (*Client, error) {
	if filePath == "" {
		filePath = "readwell.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{db: db}
	if err := client.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	client.articles = &ArticleStore{db: db}
	client.progress = &ProgressStore{db: db}
	return client, nil
}

// initSchema creates the tables if they don't exist
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			url TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'unread',
			extract_status TEXT NOT NULL DEFAULT 'queued',
			extract_error TEXT,
			title TEXT,
			site_name TEXT,
			author TEXT,
			excerpt TEXT,
			lang TEXT,
			content_text TEXT,
			content_nodes TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_articles_owner ON articles(user_id, created_at);

		CREATE TABLE IF NOT EXISTS reading_progress (
			article_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			current_page INTEGER NOT NULL,
			total_pages INTEGER NOT NULL,
			last_read_at TIMESTAMP NOT NULL,
			PRIMARY KEY (article_id, user_id)
		);
	`
	_, err := c.db.Exec(query)
	return err
}

// Articles returns the article store.
func (c *Client) Articles() *ArticleStore {
	return c.articles
}

// Progress returns the reading-progress store.
func (c *Client) Progress() *ProgressStore {
	return c.progress
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// ArticleStore implements interfaces.ArticleStorage on SQLite.
type ArticleStore struct {
	db *sql.DB
}

// Create persists a new article record
func (s *ArticleStore) Create(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (id, user_id, url, status, extract_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		article.ID, article.UserID, article.URL,
		string(article.Status), string(article.ExtractStatus),
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}
	return nil
}

const articleColumns = `id, user_id, url, status, extract_status, extract_error,
	title, site_name, author, excerpt, lang, content_text, content_nodes,
	created_at, updated_at`

// Get retrieves an article by id scoped to the owning user
func (s *ArticleStore) Get(ctx context.Context, id, userID string) (*domain.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE id = ? AND user_id = ?"
	row := s.db.QueryRowContext(ctx, query, id, userID)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return article, nil
}

// List retrieves all articles owned by the user, newest first
func (s *ArticleStore) List(ctx context.Context, userID string) ([]domain.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

// SetExtractStatus updates the extraction state fields only
func (s *ArticleStore) SetExtractStatus(ctx context.Context, id, userID string, status domain.ExtractStatus, extractError string) error {
	query := `
		UPDATE articles
		SET extract_status = ?, extract_error = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	errValue := sql.NullString{String: extractError, Valid: extractError != ""}
	result, err := s.db.ExecContext(ctx, query, string(status), errValue, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update extract status: %w", err)
	}
	return requireRow(result, id)
}

// SaveExtracted writes all extracted content fields together with
// extractStatus=succeeded in a single update
func (s *ArticleStore) SaveExtracted(ctx context.Context, id, userID string, extracted *domain.ExtractedArticle, text string, nodes []domain.ContentNode) error {
	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("failed to encode content nodes: %w", err)
	}

	query := `
		UPDATE articles
		SET title = ?, site_name = ?, author = ?, excerpt = ?, lang = ?,
			content_text = ?, content_nodes = ?,
			extract_status = ?, extract_error = NULL, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		nullable(extracted.Title), nullable(extracted.SiteName), nullable(extracted.Byline),
		nullable(extracted.Excerpt), nullable(extracted.Lang),
		text, string(nodesJSON),
		string(domain.ExtractStatusSucceeded), time.Now().UTC(),
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save extracted content: %w", err)
	}
	return requireRow(result, id)
}

// SetStatus updates the reading lifecycle status
func (s *ArticleStore) SetStatus(ctx context.Context, id, userID string, status domain.ArticleStatus) error {
	query := "UPDATE articles SET status = ?, updated_at = ? WHERE id = ? AND user_id = ?"
	result, err := s.db.ExecContext(ctx, query, string(status), time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return requireRow(result, id)
}

// requireRow surfaces an owner-scoped update that matched zero rows as
// not-found, so a mismatched owner affects nothing and errs unambiguously.
func requireRow(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return &coreerrors.NotFoundError{Resource: "article", ID: id}
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanArticle
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row scanner) (*domain.Article, error) {
	var article domain.Article
	var status, extractStatus string
	var extractError, title, siteName, author, excerpt sql.NullString
	var lang, contentText, contentNodes sql.NullString

	err := row.Scan(
		&article.ID, &article.UserID, &article.URL, &status, &extractStatus,
		&extractError, &title, &siteName, &author, &excerpt, &lang,
		&contentText, &contentNodes, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.Status = domain.ArticleStatus(status)
	article.ExtractStatus = domain.ExtractStatus(extractStatus)
	article.ExtractError = extractError.String
	article.Title = title.String
	article.SiteName = siteName.String
	article.Author = author.String
	article.Excerpt = excerpt.String
	article.Lang = lang.String
	article.ContentText = contentText.String

	if contentNodes.Valid && contentNodes.String != "" {
		if err := json.Unmarshal([]byte(contentNodes.String), &article.ContentNodes); err != nil {
			return nil, fmt.Errorf("failed to decode content nodes: %w", err)
		}
	}
	return &article, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ProgressStore implements interfaces.ProgressStorage on SQLite.
type ProgressStore struct {
	db *sql.DB
}

// Upsert creates or replaces the progress record for (userID, articleID)
func (s *ProgressStore) Upsert(ctx context.Context, progress *domain.ReadingProgress) error {
	query := `
		INSERT INTO reading_progress (article_id, user_id, current_page, total_pages, last_read_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(article_id, user_id) DO UPDATE SET
			current_page = excluded.current_page,
			total_pages = excluded.total_pages,
			last_read_at = excluded.last_read_at
	`
	_, err := s.db.ExecContext(ctx, query,
		progress.ArticleID, progress.UserID,
		progress.CurrentPage, progress.TotalPages, progress.LastReadAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert reading progress: %w", err)
	}
	return nil
}

// Get retrieves the progress record for (userID, articleID). The boolean
// reports presence; absence is not an error.
func (s *ProgressStore) Get(ctx context.Context, userID, articleID string) (*domain.ReadingProgress, bool, error) {
	query := `
		SELECT article_id, user_id, current_page, total_pages, last_read_at
		FROM reading_progress
		WHERE article_id = ? AND user_id = ?
	`
	var progress domain.ReadingProgress
	err := s.db.QueryRowContext(ctx, query, articleID, userID).Scan(
		&progress.ArticleID, &progress.UserID,
		&progress.CurrentPage, &progress.TotalPages, &progress.LastReadAt,
	)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get reading progress: %w", err)
	}
	return &progress, true, nil
}
