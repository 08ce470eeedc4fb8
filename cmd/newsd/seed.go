package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/romangod6/news-site/config"
	"github.com/romangod6/news-site/internal/articles"
	"github.com/romangod6/news-site/internal/storage"
)

var seedFrom string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a YAML article file into the configured database",
	Long: `seed reads an articles YAML file, validates it, and replaces the contents
of the sqlite or postgres database named by data.source and database.url.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFrom, "from", "articles.yaml", "YAML file to read articles from")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetLoadTimeout())
	defer cancel()

	data, err := os.ReadFile(seedFrom)
	if err != nil {
		return err
	}
	list, err := storage.ParseArticles(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", seedFrom, err)
	}
	if _, err := articles.New(list); err != nil {
		return fmt.Errorf("validate %s: %w", seedFrom, err)
	}

	db, err := storage.OpenSeeder(cfg.Data.Source, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	if err := db.ReplaceArticles(ctx, list); err != nil {
		return fmt.Errorf("write articles: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d articles into %s\n", len(list), cfg.Data.Source)
	return nil
}
