// Package config loads pipeline settings from the environment, with the
// tunable selection knobs exposed rather than hardcoded.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Source settings
	SourcesConfigPath string
	LexiconPath       string // optional vocabulary override, empty uses built-in
	SerperAPIKey      string // empty disables overseas search
	NewsMaxAge        time.Duration

	// Selection tunables
	TargetCount          int
	FingerprintThreshold float64
	TextThreshold        float64
	CrossDayOverlap      float64
	ScoreFloors          []int

	// Summarizer settings
	GeminiAPIKey   string
	GeminiModel    string
	MaxLLMRequests int // per run, 0 = unlimited
	BatchSize      int

	// Scraper settings
	ScrapeConcurrency int
	ScrapeMaxArticles int

	// Output settings
	OutputDir   string
	HistoryPath string
	PostgresDSN string // empty disables the archive

	// Email settings (optional)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	EmailTo  string

	// Telegram settings (optional)
	TelegramToken  string
	TelegramChatID string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SourcesConfigPath:    "configs/sources.yaml",
		NewsMaxAge:           48 * time.Hour,
		TargetCount:          12,
		FingerprintThreshold: 0.5,
		TextThreshold:        0.7,
		CrossDayOverlap:      0.75,
		ScoreFloors:          []int{25, 15, 10, 5, 0},
		GeminiModel:          "gemini-1.5-flash",
		MaxLLMRequests:       40,
		BatchSize:            5,
		ScrapeConcurrency:    8,
		ScrapeMaxArticles:    10,
		OutputDir:            "output",
		HistoryPath:          "news_history.json",
		SMTPHost:             "smtp.gmail.com",
		SMTPPort:             587,
		RequestTimeout:       30 * time.Second,
		RetryAttempts:        3,
		RetryDelay:           5 * time.Second,
	}

	// Load from environment
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.SerperAPIKey = os.Getenv("SERPER_API_KEY")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.PostgresDSN = os.Getenv("DATABASE_URL")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.EmailTo = os.Getenv("EMAIL_TO")
	cfg.LexiconPath = os.Getenv("LEXICON_PATH")

	cfg.SourcesConfigPath = getEnvOrDefault("SOURCES_CONFIG_PATH", cfg.SourcesConfigPath)
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.HistoryPath = getEnvOrDefault("HISTORY_PATH", cfg.HistoryPath)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.SMTPHost = getEnvOrDefault("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvIntOrDefault("SMTP_PORT", cfg.SMTPPort)

	cfg.MaxLLMRequests = getEnvIntOrDefault("MAX_LLM_REQUESTS", cfg.MaxLLMRequests)
	cfg.BatchSize = getEnvIntOrDefault("LLM_BATCH_SIZE", cfg.BatchSize)

	if v := os.Getenv("TARGET_COUNT"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.TargetCount = val
		}
	}
	if v := os.Getenv("NEWS_MAX_AGE_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.NewsMaxAge = time.Duration(val) * time.Hour
		}
	}
	if v := os.Getenv("FINGERPRINT_THRESHOLD"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 && val <= 1 {
			cfg.FingerprintThreshold = val
		}
	}
	if v := os.Getenv("TEXT_THRESHOLD"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 && val <= 1 {
			cfg.TextThreshold = val
		}
	}
	if v := os.Getenv("CROSS_DAY_OVERLAP"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 && val <= 1 {
			cfg.CrossDayOverlap = val
		}
	}
	if v := os.Getenv("SCORE_FLOORS"); v != "" {
		if floors := parseIntList(v); len(floors) > 0 {
			cfg.ScoreFloors = floors
		}
	}

	if v := os.Getenv("SCRAPE_CONCURRENCY"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.ScrapeConcurrency = val
		}
	}
	if v := os.Getenv("SCRAPE_MAX_ARTICLES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.ScrapeMaxArticles = val
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseIntList(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.TargetCount <= 0 {
		return fmt.Errorf("TARGET_COUNT must be positive")
	}
	if c.EmailTo != "" && c.SMTPUser == "" {
		return fmt.Errorf("SMTP_USER is required when EMAIL_TO is set")
	}
	return nil
}
