package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/romangod6/news-site/internal/metrics"
	"github.com/romangod6/news-site/internal/router"
	"github.com/romangod6/news-site/internal/utils"
	"github.com/romangod6/news-site/internal/views"
)

// Options configures NewServer.
type Options struct {
	Port        int
	BaseURL     string
	CORSOrigins []string
}

// Server owns the gin engine and its http.Server.
type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

// NewServer builds the engine with middleware, page routes, the API group and
// the operational endpoints.
func NewServer(opts Options, store ArticleStore, site *views.Site, r *router.Router, m *metrics.Metrics, log utils.Logger) *Server {
	engine := gin.New()
	// Trailing slashes are the page router's business, not gin's.
	engine.RedirectTrailingSlash = false
	engine.Use(requestID(), requestLogger(log), recovery(log), instrument(m))

	m.Articles.Set(float64(store.Len()))
	handler := NewHandler(store, site, r, m, log, opts.BaseURL)

	// Pages
	for _, rt := range r.Routes() {
		engine.GET(rt.Pattern, handler.Page)
		engine.HEAD(rt.Pattern, handler.Page)
	}
	engine.NoRoute(handler.Page)
	engine.StaticFS("/static", http.FS(views.Static()))

	engine.GET("/sitemap.xml", handler.Sitemap)
	engine.GET("/health", handler.Health)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	api := engine.Group("/api")
	api.Use(cors.New(corsConfig(opts.CORSOrigins)))
	{
		articles := api.Group("/articles")
		{
			articles.GET("", handler.ListArticles)
			articles.GET("/:id", handler.GetArticle)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", handler.ListCategories)
			categories.GET("/:name/articles", handler.GetArticlesByCategory)
		}
	}

	return &Server{
		router: engine,
		port:   opts.Port,
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port until Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
