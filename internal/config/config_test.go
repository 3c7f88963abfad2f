package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "PORT", "LOG_LEVEL",
		"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID",
		"DIGEST_TIME", "RAG_EXPORT_PATH", "RAG_EXPORT_INTERVAL_HOURS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secondbrain.db", cfg.DatabaseURL)
	assert.Equal(t, "1234", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "08:00", cfg.DigestTime)
	assert.Empty(t, cfg.TelegramToken)
	assert.Zero(t, cfg.ExportInterval)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "/data/brain.db")
	t.Setenv("PORT", "8080")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("DIGEST_TIME", "07:30")
	t.Setenv("RAG_EXPORT_PATH", "/data/export.json")
	t.Setenv("RAG_EXPORT_INTERVAL_HOURS", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/brain.db", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
	assert.Equal(t, "07:30", cfg.DigestTime)
	assert.Equal(t, 6*time.Hour, cfg.ExportInterval)
}

func TestLoadExportIntervalDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAG_EXPORT_PATH", "/data/export.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.ExportInterval)
}

func TestLoadTelegramRequiresChatID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadChatID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "abc")

	_, err := Load()
	assert.Error(t, err)
}
