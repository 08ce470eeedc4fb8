package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/romangod6/news-site/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS articles (
            id VARCHAR(255) PRIMARY KEY,
            position INTEGER NOT NULL,
            title VARCHAR(255) NOT NULL,
            excerpt TEXT NOT NULL DEFAULT '',
            body TEXT NOT NULL DEFAULT '',
            category VARCHAR(255) NOT NULL DEFAULT '',
            image VARCHAR(2048) NOT NULL DEFAULT ''
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

// ReplaceArticles bulk-loads the collection with COPY inside one transaction.
func (s *PostgresStore) ReplaceArticles(ctx context.Context, articles []models.Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("clear articles: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("articles",
		"id", "position", "title", "excerpt", "body", "category", "image"))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for i, article := range articles {
		_, err := stmt.ExecContext(ctx,
			article.ID,
			i,
			article.Title,
			article.Excerpt,
			article.Body,
			article.Category,
			article.Image,
		)
		if err != nil {
			stmt.Close()
			return fmt.Errorf("copy article %s: %w", article.ID, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) LoadArticles(ctx context.Context) ([]models.Article, error) {
	query := `
        SELECT id, title, excerpt, body, category, image
        FROM articles
        ORDER BY position ASC
    `

	return queryArticles(ctx, s.db, query)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
