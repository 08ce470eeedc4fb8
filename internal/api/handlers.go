// Package api serves the site over HTTP: rendered pages, a read-only JSON API,
// the sitemap, health and metrics.
package api

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/romangod6/news-site/internal/metrics"
	"github.com/romangod6/news-site/internal/models"
	"github.com/romangod6/news-site/internal/router"
	"github.com/romangod6/news-site/internal/utils"
	"github.com/romangod6/news-site/internal/views"
)

// Headers exchanged with the in-place navigation script.
const (
	FragmentHeader  = "X-Fragment"
	PageHeader      = "X-Page"
	PageTitleHeader = "X-Page-Title"
)

// ArticleStore is what the handlers read: the page queries plus the
// category index and size.
type ArticleStore interface {
	views.ArticleStore
	Categories() []string
	Len() int
}

// Handler holds the dependencies shared by every route.
type Handler struct {
	store   ArticleStore
	site    *views.Site
	router  *router.Router
	metrics *metrics.Metrics
	log     utils.Logger
	baseURL string
}

// ErrorResponse is the JSON body of a failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaginationResponse wraps one page of a list endpoint.
type PaginationResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count"`
}

// NewHandler binds the handlers to their dependencies. baseURL prefixes sitemap
// entries and may be empty.
func NewHandler(store ArticleStore, site *views.Site, r *router.Router, m *metrics.Metrics, log utils.Logger, baseURL string) *Handler {
	return &Handler{
		store:   store,
		site:    site,
		router:  r,
		metrics: m,
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Page renders whichever page the request path resolves to. It also serves
// NoRoute, so unknown paths get the not-found page.
func (h *Handler) Page(c *gin.Context) {
	if m := c.Request.Method; m != http.MethodGet && m != http.MethodHead {
		c.Header("Allow", "GET, HEAD")
		c.AbortWithStatus(http.StatusMethodNotAllowed)
		return
	}

	mode := views.ModeFull
	if c.GetHeader(FragmentHeader) == "1" {
		mode = views.ModeFragment
	}

	var buf bytes.Buffer
	result, err := h.site.Render(&buf, c.Request.URL.EscapedPath(), mode)
	if err != nil {
		h.metrics.RenderErrors.Inc()
		h.log.Error("Failed to render page",
			utils.String("path", c.Request.URL.Path),
			utils.String("page", string(result.Match.Page)),
			utils.String("request_id", c.GetString(requestIDKey)),
			utils.Err(err),
		)
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.metrics.ObservePage(string(result.Match.Page), result.Status)

	c.Header("Vary", FragmentHeader)
	c.Header(PageHeader, string(result.Match.Page))
	c.Header(PageTitleHeader, url.PathEscape(result.Title))
	c.Data(result.Status, "text/html; charset=utf-8", buf.Bytes())
}

// ListArticles returns one page of the collection in store order.
func (h *Handler) ListArticles(c *gin.Context) {
	page, limit := getPaginationParams(c)
	list := h.store.ListAll()

	c.JSON(http.StatusOK, PaginationResponse{
		Data:       paginate(list, page, limit),
		Page:       page,
		Limit:      limit,
		TotalCount: len(list),
	})
}

// GetArticle returns one article, or 404.
func (h *Handler) GetArticle(c *gin.Context) {
	article, ok := h.store.FindByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// ListCategories returns the distinct categories in first-seen order.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Categories())
}

// GetArticlesByCategory returns one page of the articles in a category.
func (h *Handler) GetArticlesByCategory(c *gin.Context) {
	page, limit := getPaginationParams(c)
	list := h.store.FilterByCategory(c.Param("name"))

	c.JSON(http.StatusOK, PaginationResponse{
		Data:       paginate(list, page, limit),
		Page:       page,
		Limit:      limit,
		TotalCount: len(list),
	})
}

// Sitemap lists the listing page, every article and every category.
func (h *Handler) Sitemap(c *gin.Context) {
	sitemap := models.Sitemap{Xmlns: models.SitemapNamespace}
	add := func(path, priority string) {
		sitemap.Add(h.baseURL+path, priority)
	}

	add(h.router.Path(router.PageListing, nil), "1.0")
	for _, a := range h.store.ListAll() {
		add(h.router.Path(router.PageDetail, router.Params{"id": a.ID}), "0.8")
	}
	for _, name := range h.store.Categories() {
		add(h.router.Path(router.PageCategory, router.Params{"name": name}), "0.5")
	}

	out, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		h.log.Error("Failed to encode sitemap", utils.Err(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

// Health reports liveness and the collection size.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "articles": h.store.Len()})
}

// Utility functions
func getPaginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}

func paginate(list []models.Article, page, limit int) []models.Article {
	offset := (page - 1) * limit
	if offset >= len(list) {
		return []models.Article{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
