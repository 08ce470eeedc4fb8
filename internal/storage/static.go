package storage

import (
	"context"

	"github.com/romangod6/news-site/internal/models"
)

const placeholderImage = "https://via.placeholder.com/150"

// StaticSource serves the built-in sample collection. The samples carry no
// body or category.
type StaticSource struct{}

func NewStaticSource() StaticSource {
	return StaticSource{}
}

func (StaticSource) LoadArticles(ctx context.Context) ([]models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []models.Article{
		{ID: "1", Title: "Sample News 1", Excerpt: "This is a sample news excerpt.", Image: placeholderImage},
		{ID: "2", Title: "Sample News 2", Excerpt: "This is a sample news excerpt.", Image: placeholderImage},
	}, nil
}
