// Package views renders the site's pages: the shell, the article cards and
// the listing, category, detail and auth pages.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/romangod6/news-site/internal/models"
	"github.com/romangod6/news-site/internal/router"
)

// SiteName is the brand shown in the header and page titles.
const SiteName = "News Website"

// ArticleStore is the read-only view of the collection the pages need.
type ArticleStore interface {
	ListAll() []models.Article
	FindByID(id string) (models.Article, bool)
	FilterByCategory(name string) []models.Article
}

// Mode selects what Render writes.
type Mode int

const (
	// ModeFull writes a complete document: shell plus page.
	ModeFull Mode = iota
	// ModeFragment writes only the page, for in-place navigation.
	ModeFragment
)

// Result describes a completed render.
type Result struct {
	Match  router.Match
	Status int
	Title  string
}

type navLinks struct {
	Home     string
	Login    string
	Register string
}

type layoutData struct {
	Title     string
	Page      router.Page
	Body      template.HTML
	Meta      Meta
	Nav       navLinks
	Languages []Language
}

// Site resolves paths and renders the matching page.
type Site struct {
	store     ArticleStore
	router    *router.Router
	templates *template.Template
	markdown  goldmark.Markdown
	nav       navLinks
}

// NewSite parses the embedded templates and binds them to store and r.
func NewSite(store ArticleStore, r *router.Router) (*Site, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Site{
		store:     store,
		router:    r,
		templates: tmpl,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		nav: navLinks{
			Home:     r.Path(router.PageListing, nil),
			Login:    r.Path(router.PageLogin, nil),
			Register: r.Path(router.PageRegister, nil),
		},
	}, nil
}

// Render resolves path and writes the page to w. Nothing is written when an
// error is returned. Unknown paths and unknown article ids are not errors:
// they render not-found pages with a 404 status.
func (s *Site) Render(w io.Writer, path string, mode Mode) (Result, error) {
	match := s.router.Resolve(path)
	result := Result{Match: match, Status: http.StatusInternalServerError}

	v, err := s.page(match)
	if err != nil {
		return result, err
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, v.template, v.data); err != nil {
		return result, fmt.Errorf("execute %s: %w", v.template, err)
	}

	result.Status = v.status
	result.Title = documentTitle(v.title)

	if mode == ModeFragment {
		_, err := w.Write(body.Bytes())
		return result, err
	}

	var doc bytes.Buffer
	err = s.templates.ExecuteTemplate(&doc, "layout", layoutData{
		Title:     result.Title,
		Page:      match.Page,
		Body:      template.HTML(body.String()),
		Meta:      v.meta,
		Nav:       s.nav,
		Languages: Languages,
	})
	if err != nil {
		result.Status = http.StatusInternalServerError
		return result, fmt.Errorf("execute layout: %w", err)
	}

	_, err = w.Write(doc.Bytes())
	return result, err
}

func documentTitle(page string) string {
	if page == "" {
		return SiteName
	}
	return page + " | " + SiteName
}
