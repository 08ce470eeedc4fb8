package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/romangod6/news-site/config"
	"github.com/romangod6/news-site/internal/api"
	"github.com/romangod6/news-site/internal/articles"
	"github.com/romangod6/news-site/internal/crawler"
	"github.com/romangod6/news-site/internal/metrics"
	"github.com/romangod6/news-site/internal/router"
	"github.com/romangod6/news-site/internal/storage"
	"github.com/romangod6/news-site/internal/utils"
	"github.com/romangod6/news-site/internal/views"
)

const sourceCrawl = "crawl"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the article collection and serve the site",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := utils.NewLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	src, closeSource, err := openSource(cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetLoadTimeout())
	start := time.Now()
	store, err := articles.Load(ctx, src)
	cancel()
	if err != nil {
		return err
	}
	log.Info("Loaded articles",
		utils.String("source", cfg.Data.Source),
		utils.Int("articles", store.Len()),
		utils.Strings("categories", store.Categories()),
		utils.Duration("duration", time.Since(start)))

	r := router.Default()
	site, err := views.NewSite(store, r)
	if err != nil {
		return err
	}

	server := api.NewServer(api.Options{
		Port:        cfg.Server.Port,
		BaseURL:     cfg.Server.BaseURL,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, store, site, r, metrics.New(), log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", utils.Int("port", cfg.Server.Port))
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(errCh, server, log)
}

// openSource builds the configured data source. The crawl source is assembled
// here since it takes its settings from the crawl section.
func openSource(cfg *config.Config, log utils.Logger) (storage.Source, func() error, error) {
	switch cfg.Data.Source {
	case sourceCrawl:
		c := crawler.NewCrawler(&crawler.CrawlerConfig{
			SitemapURL:     cfg.Crawl.SitemapURL,
			UserAgent:      cfg.Crawl.UserAgent,
			AllowedDomains: cfg.Crawl.AllowedDomains,
			MaxPages:       cfg.Crawl.MaxPages,
			RequestTimeout: cfg.GetRequestTimeout(),
		}, log.With(utils.String("component", "crawler")))
		return c, func() error { return nil }, nil
	case storage.KindFile:
		return storage.Open(cfg.Data.Source, cfg.Data.File)
	default:
		return storage.Open(cfg.Data.Source, cfg.Database.URL)
	}
}

func waitForShutdown(errCh <-chan error, server *api.Server, log utils.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case sig := <-sigChan:
		log.Info("Shutting down", utils.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	log.Info("Server shut down gracefully")
	return nil
}
