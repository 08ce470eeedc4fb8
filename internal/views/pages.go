package views

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/romangod6/news-site/internal/router"
)

// view is a page ready to execute: template name, data and response metadata.
type view struct {
	template string
	data     any
	status   int
	title    string
	meta     Meta
}

// Meta feeds the document head of full renders.
type Meta struct {
	Description string
	Category    string
	Image       string
}

type listingData struct {
	Cards []Card
}

type categoryData struct {
	Name  string
	Cards []Card
}

type detailData struct {
	ID    string
	Title string
	Image string
	Body  template.HTML
}

type missingArticleData struct {
	ID   string
	Home string
}

type notFoundData struct {
	Path string
	Home string
}

func (s *Site) page(m router.Match) (view, error) {
	switch m.Page {
	case router.PageListing:
		return s.listing(), nil
	case router.PageCategory:
		return s.category(m.Param("name")), nil
	case router.PageDetail:
		return s.detail(m.Param("id"))
	case router.PageLogin:
		return view{template: "page-login", status: http.StatusOK, title: "Login"}, nil
	case router.PageRegister:
		return view{template: "page-register", status: http.StatusOK, title: "Register"}, nil
	default:
		return view{
			template: "page-notfound",
			data:     notFoundData{Path: m.Path, Home: s.home()},
			status:   http.StatusNotFound,
			title:    "Page not found",
		}, nil
	}
}

func (s *Site) listing() view {
	return view{
		template: "page-listing",
		data:     listingData{Cards: newCards(s.store.ListAll(), s.router)},
		status:   http.StatusOK,
	}
}

func (s *Site) category(name string) view {
	return view{
		template: "page-category",
		data:     categoryData{Name: name, Cards: newCards(s.store.FilterByCategory(name), s.router)},
		status:   http.StatusOK,
		title:    name + " News",
	}
}

func (s *Site) detail(id string) (view, error) {
	a, ok := s.store.FindByID(id)
	if !ok {
		return view{
			template: "page-article-not-found",
			data:     missingArticleData{ID: id, Home: s.home()},
			status:   http.StatusNotFound,
			title:    "Article not found",
		}, nil
	}

	data := detailData{ID: a.ID, Title: a.Title, Image: a.Image}
	if a.HasBody() {
		var buf bytes.Buffer
		if err := s.markdown.Convert([]byte(a.Body), &buf); err != nil {
			return view{}, fmt.Errorf("render body of article %s: %w", a.ID, err)
		}
		// goldmark drops raw HTML unless configured otherwise, so the output is safe.
		data.Body = template.HTML(buf.String())
	}

	return view{
		template: "page-detail",
		data:     data,
		status:   http.StatusOK,
		title:    a.Title,
		meta:     Meta{Description: a.Excerpt, Category: a.Category, Image: a.Image},
	}, nil
}

func (s *Site) home() string {
	return s.router.Path(router.PageListing, nil)
}
