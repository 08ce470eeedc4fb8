package views

import (
	"github.com/romangod6/news-site/internal/models"
	"github.com/romangod6/news-site/internal/router"
)

// Card is the summary of one article with a link to its detail page.
type Card struct {
	ID      string
	Title   string
	Excerpt string
	Image   string
	Link    string
}

// NewCard builds the card for a. It depends only on its inputs.
func NewCard(a models.Article, r *router.Router) Card {
	return Card{
		ID:      a.ID,
		Title:   a.Title,
		Excerpt: a.Excerpt,
		Image:   a.Image,
		Link:    r.Path(router.PageDetail, router.Params{"id": a.ID}),
	}
}

func newCards(list []models.Article, r *router.Router) []Card {
	cards := make([]Card, len(list))
	for i, a := range list {
		cards[i] = NewCard(a, r)
	}
	return cards
}
