// Package articles holds the read-only article collection every page derives
// its content from.
package articles

import (
	"context"
	"errors"
	"fmt"

	"github.com/romangod6/news-site/internal/models"
	"github.com/romangod6/news-site/internal/storage"
)

var (
	// ErrDuplicateID is returned when two articles share an id.
	ErrDuplicateID = errors.New("duplicate article id")
	// ErrEmptyID is returned when an article has no id.
	ErrEmptyID = errors.New("empty article id")
)

// Store answers listing, lookup and category queries over a fixed collection.
// It is never modified after New returns, so concurrent readers need no locking.
type Store struct {
	articles []models.Article
	byID     map[string]int
}

// New builds a store from list, keeping its order. The slice is copied.
func New(list []models.Article) (*Store, error) {
	s := &Store{
		articles: make([]models.Article, len(list)),
		byID:     make(map[string]int, len(list)),
	}
	copy(s.articles, list)

	for i, a := range s.articles {
		if a.ID == "" {
			return nil, fmt.Errorf("article at position %d: %w", i, ErrEmptyID)
		}
		if _, dup := s.byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, a.ID)
		}
		s.byID[a.ID] = i
	}

	return s, nil
}

// Load reads the collection from src once and builds a store from it.
func Load(ctx context.Context, src storage.Source) (*Store, error) {
	list, err := src.LoadArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	return New(list)
}

// ListAll returns every article in insertion order.
func (s *Store) ListAll() []models.Article {
	out := make([]models.Article, len(s.articles))
	copy(out, s.articles)
	return out
}

// FindByID returns the article with the given id. The comparison is exact.
func (s *Store) FindByID(id string) (models.Article, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Article{}, false
	}
	return s.articles[i], true
}

// FilterByCategory returns the articles whose category equals name exactly,
// in store order. The result is empty, never nil, when nothing matches.
func (s *Store) FilterByCategory(name string) []models.Article {
	out := []models.Article{}
	for _, a := range s.articles {
		if a.InCategory(name) {
			out = append(out, a)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories in first-seen order.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, a := range s.articles {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		out = append(out, a.Category)
	}
	return out
}

// Len returns the number of articles.
func (s *Store) Len() int {
	return len(s.articles)
}
