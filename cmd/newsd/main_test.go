package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romangod6/news-site/config"
	"github.com/romangod6/news-site/internal/crawler"
	"github.com/romangod6/news-site/internal/storage"
	"github.com/romangod6/news-site/internal/utils"
)

func TestRoutesCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"routes"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "/article/:id")
	assert.Contains(t, out.String(), "notfound")
}

func TestOpenSource(t *testing.T) {
	var cfg config.Config
	log := utils.NewNopLogger()

	cfg.Data.Source = "crawl"
	cfg.Crawl.SitemapURL = "http://example.com/sitemap.xml"
	cfg.Crawl.RequestTimeout = "2s"
	src, closeFn, err := openSource(&cfg, log)
	require.NoError(t, err)
	require.IsType(t, &crawler.Crawler{}, src)
	assert.Equal(t, 2*time.Second, src.(*crawler.Crawler).Config().RequestTimeout)
	assert.NoError(t, closeFn())

	cfg.Data.Source = "file"
	cfg.Data.File = "articles.yaml"
	src, _, err = openSource(&cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &storage.FileSource{}, src)

	cfg.Data.Source = "redis"
	_, _, err = openSource(&cfg, log)
	assert.ErrorIs(t, err, storage.ErrUnknownSource)
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "news.db")
	seedFile := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedFile, []byte(`articles:
  - id: "1"
    title: One
  - id: "2"
    title: Two
`), 0o644))

	t.Setenv("NEWSD_DATA_SOURCE", "sqlite")
	t.Setenv("NEWSD_DATABASE_URL", db)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--config", cfgPath, "--from", seedFile})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Seeded 2 articles")

	src, closeFn, err := storage.Open(storage.KindSQLite, db)
	require.NoError(t, err)
	defer closeFn()
	list, err := src.LoadArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Two", list[1].Title)
}
