package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/romangod6/news-site/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// An in-memory database lives per connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS articles (
            id TEXT PRIMARY KEY,
            position INTEGER NOT NULL,
            title TEXT NOT NULL,
            excerpt TEXT NOT NULL DEFAULT '',
            body TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            image TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE INDEX IF NOT EXISTS idx_articles_position ON articles(position)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) ReplaceArticles(ctx context.Context, articles []models.Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("clear articles: %w", err)
	}

	query := `
        INSERT INTO articles (id, position, title, excerpt, body, category, image)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	for i, article := range articles {
		_, err := tx.ExecContext(ctx, query,
			article.ID,
			i,
			article.Title,
			article.Excerpt,
			article.Body,
			article.Category,
			article.Image,
		)
		if err != nil {
			return fmt.Errorf("insert article %s: %w", article.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadArticles(ctx context.Context) ([]models.Article, error) {
	query := `
        SELECT id, title, excerpt, body, category, image
        FROM articles
        ORDER BY position ASC
    `

	return queryArticles(ctx, s.db, query)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// queryArticles scans rows of (id, title, excerpt, body, category, image).
func queryArticles(ctx context.Context, db *sql.DB, query string, args ...interface{}) ([]models.Article, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		var article models.Article

		err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Excerpt,
			&article.Body,
			&article.Category,
			&article.Image,
		)
		if err != nil {
			return nil, err
		}

		articles = append(articles, article)
	}

	return articles, rows.Err()
}
