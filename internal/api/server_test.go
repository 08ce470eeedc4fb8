package api

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romangod6/news-site/internal/articles"
	"github.com/romangod6/news-site/internal/metrics"
	"github.com/romangod6/news-site/internal/models"
	"github.com/romangod6/news-site/internal/router"
	"github.com/romangod6/news-site/internal/utils"
	"github.com/romangod6/news-site/internal/views"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixture = []models.Article{
	{ID: "1", Title: "Sample News 1", Excerpt: "...", Category: "general"},
	{ID: "2", Title: "Sample News 2", Excerpt: "...", Category: "tech"},
	{ID: "3", Title: "Über & more", Excerpt: "...", Category: "tech"},
}

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	store, err := articles.New(fixture)
	require.NoError(t, err)
	r := router.Default()
	site, err := views.NewSite(store, r)
	require.NoError(t, err)
	return NewServer(opts, store, site, r, metrics.New(), utils.NewNopLogger()).Handler()
}

func do(h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPages(t *testing.T) {
	h := newTestServer(t, Options{})

	tests := []struct {
		path   string
		status int
		page   router.Page
		h1     string
	}{
		{"/", http.StatusOK, router.PageListing, ""},
		{"/article/2", http.StatusOK, router.PageDetail, "Sample News 2"},
		{"/article/99", http.StatusNotFound, router.PageDetail, "Article not found"},
		{"/category/tech", http.StatusOK, router.PageCategory, "tech News"},
		{"/login", http.StatusOK, router.PageLogin, "Login"},
		{"/login/", http.StatusOK, router.PageLogin, "Login"},
		{"/register", http.StatusOK, router.PageRegister, "Register"},
		{"/no/such/page", http.StatusNotFound, router.PageNotFound, "Page not found"},
		{"/article/a%2Fb", http.StatusNotFound, router.PageDetail, "Article not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(h, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, string(tt.page), rec.Header().Get(PageHeader))
			assert.Equal(t, FragmentHeader, rec.Header().Get("Vary"))
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

			doc, err := goquery.NewDocumentFromReader(rec.Body)
			require.NoError(t, err)
			assert.Equal(t, 1, doc.Find("header.site-header").Length())
			if tt.h1 != "" {
				assert.Equal(t, tt.h1, doc.Find("main h1").First().Text())
			}
		})
	}
}

func TestCategoryCards(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/category/tech", nil)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find(".news-card").Length())
}

func TestFragmentRequest(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/article/3", http.Header{FragmentHeader: {"1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<header")

	title, err := url.PathUnescape(rec.Header().Get(PageTitleHeader))
	require.NoError(t, err)
	assert.Equal(t, "Über & more | News Website", title)
}

func TestPageMethods(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodHead, "/article/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/", http.Header{requestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set(requestIDHeader, "def-456")
	direct := httptest.NewRecorder()
	h.ServeHTTP(direct, req)
	assert.Equal(t, "def-456", direct.Header().Get(requestIDHeader))

	generated := do(h, http.MethodGet, "/", nil).Header().Get(requestIDHeader)
	assert.Len(t, generated, 36, "a uuid is generated when none is sent")
}

func TestStatic(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/static/nav.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), FragmentHeader)
}

func TestListArticles(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/api/articles?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data       []models.Article `json:"data"`
		Page       int              `json:"page"`
		Limit      int              `json:"limit"`
		TotalCount int              `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.Limit)
	assert.Equal(t, 3, resp.TotalCount)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "3", resp.Data[0].ID)
}

func TestListArticlesPastEnd(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/api/articles?page=9&limit=500", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"page":9,"limit":10,"total_count":3}`, rec.Body.String())
}

func TestGetArticle(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/api/articles/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1","title":"Sample News 1","excerpt":"...","category":"general","image":""}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/api/articles/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Article not found"}`, rec.Body.String())
}

func TestCategoriesAPI(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["general","tech"]`, rec.Body.String())

	rec = do(h, http.MethodGet, "/api/categories/tech/articles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_count":2`)

	rec = do(h, http.MethodGet, "/api/categories/none/articles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, Options{CORSOrigins: []string{"https://front.example.com"}})

	rec := do(h, http.MethodGet, "/api/categories", http.Header{"Origin": {"https://front.example.com"}})
	assert.Equal(t, "https://front.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(h, http.MethodGet, "/api/categories", http.Header{"Origin": {"https://evil.example.com"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSitemap(t *testing.T) {
	h := newTestServer(t, Options{BaseURL: "https://news.example.com/"})

	rec := do(h, http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<?xml"))

	var sitemap models.Sitemap
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &sitemap))

	locs := make([]string, len(sitemap.URLs))
	for i, u := range sitemap.URLs {
		locs[i] = u.Loc
	}
	assert.Equal(t, []string{
		"https://news.example.com/",
		"https://news.example.com/article/1",
		"https://news.example.com/article/2",
		"https://news.example.com/article/3",
		"https://news.example.com/category/general",
		"https://news.example.com/category/tech",
	}, locs)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","articles":3}`, rec.Body.String())

	do(h, http.MethodGet, "/article/1", nil)
	rec = do(h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `newsd_pages_rendered_total{page="detail",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "newsd_articles 3")
}

func TestGetPaginationParams(t *testing.T) {
	tests := map[string][2]int{
		"":                 {1, 10},
		"page=3&limit=25":  {3, 25},
		"page=0&limit=0":   {1, 10},
		"page=x&limit=101": {1, 10},
		"limit=100":        {1, 100},
	}
	for query, want := range tests {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)

		page, limit := getPaginationParams(c)
		assert.Equal(t, want, [2]int{page, limit}, query)
	}
}
