package crawler

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/romangod6/news-site/internal/models"
	"github.com/romangod6/news-site/internal/utils"
)

// ErrNoSitemap is returned when the crawler has no sitemap to start from.
var ErrNoSitemap = errors.New("crawler: sitemap url is required")

type CrawlerConfig struct {
	SitemapURL     string
	UserAgent      string
	AllowedDomains []string
	MaxPages       int
	RequestTimeout time.Duration
}

// Crawler is a data source that builds the article collection by walking a
// sitemap and parsing every page that carries an <article> element.
type Crawler struct {
	config *CrawlerConfig
	log    utils.Logger
}

func NewCrawler(config *CrawlerConfig, log utils.Logger) *Crawler {
	if log == nil {
		log = utils.NewNopLogger()
	}
	return &Crawler{config: config, log: log}
}

// Config returns the crawler's settings.
func (c *Crawler) Config() CrawlerConfig {
	return *c.config
}

// LoadArticles crawls the configured sitemap. Articles come back in sitemap
// order; a later page whose id repeats an earlier one is skipped. ctx is
// checked between pages; RequestTimeout bounds each fetch.
func (c *Crawler) LoadArticles(ctx context.Context) ([]models.Article, error) {
	if c.config.SitemapURL == "" {
		return nil, ErrNoSitemap
	}

	sitemap, err := c.fetchSitemap(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap %s: %w", c.config.SitemapURL, err)
	}

	articles := []models.Article{}
	seen := make(map[string]bool)

	collector := c.newCollector()
	collector.OnHTML("html", func(e *colly.HTMLElement) {
		article, ok := ParseArticle(e.DOM, e.Request.URL)
		if !ok {
			c.log.Debug("Skipping page without article", utils.String("url", e.Request.URL.String()))
			return
		}
		if seen[article.ID] {
			c.log.Warn("Skipping duplicate article id",
				utils.String("id", article.ID),
				utils.String("url", e.Request.URL.String()))
			return
		}
		seen[article.ID] = true
		articles = append(articles, article)
	})
	collector.OnError(func(r *colly.Response, err error) {
		c.log.Warn("Failed to fetch page",
			utils.String("url", r.Request.URL.String()),
			utils.Int("status", r.StatusCode),
			utils.Err(err))
	})

	visited := 0
	for _, entry := range sitemap.URLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.config.MaxPages > 0 && visited >= c.config.MaxPages {
			c.log.Info("Reached page limit", utils.Int("max_pages", c.config.MaxPages))
			break
		}
		visited++

		c.log.Debug("Visiting page", utils.String("url", entry.Loc))
		if err := collector.Visit(entry.Loc); err != nil {
			c.log.Warn("Error visiting page", utils.String("url", entry.Loc), utils.Err(err))
		}
	}

	c.log.Info("Crawl completed",
		utils.Int("pages", visited),
		utils.Int("articles", len(articles)))

	return articles, nil
}

func (c *Crawler) newCollector() *colly.Collector {
	options := []colly.CollectorOption{
		colly.AllowedDomains(c.allowedDomains()...),
	}
	if c.config.UserAgent != "" {
		options = append(options, colly.UserAgent(c.config.UserAgent))
	}

	collector := colly.NewCollector(options...)
	if c.config.RequestTimeout > 0 {
		collector.SetRequestTimeout(c.config.RequestTimeout)
	}
	return collector
}

// allowedDomains defaults to the sitemap host when none are configured.
func (c *Crawler) allowedDomains() []string {
	if len(c.config.AllowedDomains) > 0 {
		return c.config.AllowedDomains
	}
	u, err := url.Parse(c.config.SitemapURL)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	return []string{u.Hostname()}
}

func (c *Crawler) fetchSitemap(ctx context.Context) (*models.Sitemap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		sitemap  models.Sitemap
		parseErr error
	)

	collector := c.newCollector()
	collector.OnResponse(func(r *colly.Response) {
		parseErr = xml.Unmarshal(r.Body, &sitemap)
	})

	if err := collector.Visit(c.config.SitemapURL); err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, fmt.Errorf("parse sitemap: %w", parseErr)
	}

	return &sitemap, nil
}

// articleID derives a stable id from the last path segment of the page URL.
func articleID(u *url.URL) string {
	p := u.EscapedPath()
	for len(p) > 1 && p[len(p)-1] == '/' {
		p = p[:len(p)-1]
	}
	id := path.Base(p)
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	if id == "/" || id == "." {
		return ""
	}
	return id
}
