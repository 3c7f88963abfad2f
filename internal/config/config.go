package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"os"
)

// Config keeps runtime settings for the service.
type Config struct {
	DatabaseURL    string
	HTTPPort       string
	LogLevel       string
	TelegramToken  string
	TelegramChatID int64
	DigestTime     string // HH:MM, local time of the daily digest
	ExportPath     string // RAG export file; empty disables the export job
	ExportInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// The Telegram digest and the RAG export are both optional.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPPort:       strings.TrimSpace(os.Getenv("PORT")),
		LogLevel:       strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DigestTime:     strings.TrimSpace(os.Getenv("DIGEST_TIME")),
		ExportPath:     strings.TrimSpace(os.Getenv("RAG_EXPORT_PATH")),
		ExportInterval: parseInterval(strings.TrimSpace(os.Getenv("RAG_EXPORT_INTERVAL_HOURS"))),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "secondbrain.db"
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "1234"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DigestTime == "" {
		cfg.DigestTime = "08:00"
	}
	if cfg.ExportPath != "" && cfg.ExportInterval == 0 {
		cfg.ExportInterval = 24 * time.Hour
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
