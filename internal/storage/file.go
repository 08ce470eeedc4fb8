package storage

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/romangod6/news-site/internal/models"
)

// FileSource reads articles from a YAML document of the form
//
//	articles:
//	  - id: "1"
//	    title: ...
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type articleFile struct {
	Articles []models.Article `yaml:"articles"`
}

func (s *FileSource) LoadArticles(ctx context.Context) ([]models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	return ParseArticles(data)
}

// ParseArticles decodes a YAML article document.
func ParseArticles(data []byte) ([]models.Article, error) {
	var doc articleFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse articles: %w", err)
	}
	if doc.Articles == nil {
		doc.Articles = []models.Article{}
	}
	return doc.Articles, nil
}
