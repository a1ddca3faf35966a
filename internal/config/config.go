// Package config loads rank-web settings from YAML, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"top10animes.net/rank-web/internal/period"
)

// Config is the resolved runtime configuration.
type Config struct {
	Addr           string        `yaml:"addr"`
	DataSource     string        `yaml:"data_source"`
	BasePath       string        `yaml:"base_path"`
	DefaultLang    string        `yaml:"default_lang"`
	Languages      []string      `yaml:"languages"`
	MaxItems       int           `yaml:"max_items"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	PeriodFallback string        `yaml:"period_fallback"`
	Timezone       string        `yaml:"timezone"`
	SiteName       string        `yaml:"site_name"`
	SiteURL        string        `yaml:"site_url"`
	SocialURL      string        `yaml:"social_url"`
	FooterMarkdown string        `yaml:"footer_markdown"`
	LogLevel       string        `yaml:"log_level"`
	Dev            bool          `yaml:"dev"`
}

// Default returns a configuration that serves ./public on :8080.
func Default() Config {
	return Config{
		Addr:           ":8080",
		DataSource:     "public",
		DefaultLang:    "en",
		Languages:      []string{"en", "pt"},
		MaxItems:       50,
		CacheTTL:       time.Minute,
		PeriodFallback: string(period.FallbackLastWeek),
		SiteName:       "Top 10 Animes",
		SocialURL:      "https://www.instagram.com/top10_animes",
		FooterMarkdown: "[MyAnimeList](https://myanimelist.net)",
		LogLevel:       "info",
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. Port resolution prefers
// RANKWEB_PORT, then PORT.
func (c *Config) ApplyEnv(getenv func(string) string) {
	port := getenv("RANKWEB_PORT")
	if port == "" {
		port = getenv("PORT")
	}
	if port != "" {
		c.Addr = ":" + port
	}
	if v := getenv("RANKWEB_DATA"); v != "" {
		c.DataSource = v
	}
	if v := getenv("RANKWEB_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if getenv("RANKWEB_DEV") != "" || getenv("DEV") != "" {
		c.Dev = true
	}
}

// Validate rejects settings that cannot produce a page.
func (c Config) Validate() error {
	var errs []error
	if c.MaxItems < 0 {
		errs = append(errs, fmt.Errorf("max_items must not be negative, got %d", c.MaxItems))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL))
	}
	if _, ok := period.ParseFallback(c.PeriodFallback); !ok {
		errs = append(errs, fmt.Errorf("unknown period_fallback %q", c.PeriodFallback))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.DefaultLang) == "" {
		errs = append(errs, errors.New("default_lang is required"))
	}
	return errors.Join(errs...)
}

// Fallback returns the parsed period fallback.
func (c Config) Fallback() period.Fallback {
	fb, ok := period.ParseFallback(c.PeriodFallback)
	if !ok {
		return period.FallbackLastWeek
	}
	return fb
}

// Location resolves the timezone used for "last week". Blank means local time.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
