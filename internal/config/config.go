// Package config loads and validates scraper configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Scrape  ScrapeConfig  `mapstructure:"scrape"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig identifies the site being scraped.
type SourceConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	IndexPath string `mapstructure:"index_path"`
}

// ScrapeConfig governs request pacing and resilience.
type ScrapeConfig struct {
	Delay      time.Duration `mapstructure:"delay"`
	UserAgent  string        `mapstructure:"user_agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// OutputConfig sets where the assembled file lands.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// IndexURL joins the base URL and index path into the crawl start URL.
func (c Config) IndexURL() string {
	return strings.TrimRight(c.Source.BaseURL, "/") + c.Source.IndexPath
}

// Load builds a Config from defaults, an optional config file, and
// MKB_-prefixed environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MKB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.base_url", "https://www.stetoskop.info")
	v.SetDefault("source.index_path", "/mkb")
	v.SetDefault("scrape.delay", "200ms")
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; mkb-scraper/1.0; +https://www.batut.org.rs)")
	v.SetDefault("scrape.timeout", "30s")
	v.SetDefault("scrape.max_retries", 2)
	v.SetDefault("output.path", "mkb10.csv")
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("source.base_url must be an absolute http(s) URL")
	}
	if !strings.HasPrefix(c.Source.IndexPath, "/") {
		return fmt.Errorf("source.index_path must start with /")
	}
	if c.Scrape.Delay < 0 {
		return fmt.Errorf("scrape.delay must be >= 0")
	}
	if c.Scrape.UserAgent == "" {
		return fmt.Errorf("scrape.user_agent must be set")
	}
	if c.Scrape.Timeout <= 0 {
		return fmt.Errorf("scrape.timeout must be > 0")
	}
	if c.Scrape.MaxRetries < 0 {
		return fmt.Errorf("scrape.max_retries must be >= 0")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must be set")
	}
	return nil
}
