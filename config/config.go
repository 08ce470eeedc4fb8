package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        int
		BaseURL     string   `mapstructure:"base_url"`
		CORSOrigins []string `mapstructure:"cors_origins"`
	}
	Data struct {
		Source      string
		File        string
		LoadTimeout string `mapstructure:"load_timeout"`
	}
	Database struct {
		URL string
	}
	Crawl struct {
		SitemapURL     string   `mapstructure:"sitemap_url"`
		UserAgent      string   `mapstructure:"user_agent"`
		AllowedDomains []string `mapstructure:"allowed_domains"`
		MaxPages       int      `mapstructure:"max_pages"`
		RequestTimeout string   `mapstructure:"request_timeout"`
	}
	Log struct {
		Level string
	}
}

// LoadConfig reads config.yaml from the given path, or from . and ./config when
// path is empty. A missing file is not an error: defaults and NEWSD_* environment
// variables still apply. A .env file in the working directory is loaded first.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("NEWSD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("data.source", "static")
	v.SetDefault("data.file", "articles.yaml")
	v.SetDefault("data.load_timeout", "30s")
	v.SetDefault("database.url", "news_website.db")
	v.SetDefault("crawl.sitemap_url", "")
	v.SetDefault("crawl.user_agent", "News Site Bot v1.0")
	v.SetDefault("crawl.allowed_domains", []string{})
	v.SetDefault("crawl.max_pages", 100)
	v.SetDefault("crawl.request_timeout", "10s")
	v.SetDefault("log.level", "info")
}

// GetRequestTimeout is the per-page fetch limit for the crawl source.
func (c *Config) GetRequestTimeout() time.Duration {
	duration, err := time.ParseDuration(c.Crawl.RequestTimeout)
	if err != nil || duration <= 0 {
		return 10 * time.Second
	}
	return duration
}

func (c *Config) GetLoadTimeout() time.Duration {
	duration, err := time.ParseDuration(c.Data.LoadTimeout)
	if err != nil || duration <= 0 {
		return 30 * time.Second
	}
	return duration
}
