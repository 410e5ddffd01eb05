package config

import (
	"log/slog"
	"testing"
	"time"
)

// clearEnv сбрасывает переменные окружения, влияющие на Load.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"FM_PORT", "FM_LOG_LEVEL", "FM_LOG_FORMAT",
		"FM_REDIS_ADDR", "FM_REDIS_DB", "FM_MONGO_URI", "FM_DB_NAME",
		"FM_FOLDER_PATH", "FM_SESSION_TTL",
		"FM_STATS_CACHE_TTL", "FM_STATS_CACHE_SIZE",
		"FM_HTTP_READ_TIMEOUT", "FM_HTTP_WRITE_TIMEOUT", "FM_HTTP_IDLE_TIMEOUT",
		"FM_SHUTDOWN_TIMEOUT",
		"FM_SERVICE_ID", "FM_DEPHEALTH_GROUP", "FM_DEPHEALTH_CHECK_INTERVAL",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
}

// TestLoad_Defaults проверяет значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if cfg.Port != 5000 {
		t.Errorf("Port: ожидалось 5000, получено %d", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel: ожидалось info, получено %v", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: ожидалось json, получено %s", cfg.LogFormat)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr: получено %s", cfg.RedisAddr)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI: получено %s", cfg.MongoURI)
	}
	if cfg.DBName != "files_manager" {
		t.Errorf("DBName: получено %s", cfg.DBName)
	}
	if cfg.FolderPath != "/tmp/files_manager" {
		t.Errorf("FolderPath: получено %s", cfg.FolderPath)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL: ожидалось 24h, получено %v", cfg.SessionTTL)
	}
	if cfg.StatsCacheTTL != 10*time.Second {
		t.Errorf("StatsCacheTTL: ожидалось 10s, получено %v", cfg.StatsCacheTTL)
	}
	if cfg.ServiceID != "files-manager" {
		t.Errorf("ServiceID: получено %s", cfg.ServiceID)
	}
}

// TestLoad_Overrides проверяет переопределение через переменные окружения.
func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FM_PORT", "8080")
	t.Setenv("FM_LOG_LEVEL", "debug")
	t.Setenv("FM_LOG_FORMAT", "text")
	t.Setenv("FM_REDIS_ADDR", "redis.local:6380")
	t.Setenv("FM_SESSION_TTL", "1h")
	t.Setenv("FM_STATS_CACHE_SIZE", "64")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port: ожидалось 8080, получено %d", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel: ожидалось debug, получено %v", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: получено %s", cfg.LogFormat)
	}
	if cfg.RedisAddr != "redis.local:6380" {
		t.Errorf("RedisAddr: получено %s", cfg.RedisAddr)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL: ожидалось 1h, получено %v", cfg.SessionTTL)
	}
	if cfg.StatsCacheSize != 64 {
		t.Errorf("StatsCacheSize: ожидалось 64, получено %d", cfg.StatsCacheSize)
	}
}

// TestLoad_Invalid проверяет отказ при некорректных значениях.
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "порт не число", key: "FM_PORT", value: "eighty"},
		{name: "порт вне диапазона", key: "FM_PORT", value: "70000"},
		{name: "порт ноль", key: "FM_PORT", value: "0"},
		{name: "неизвестный уровень логов", key: "FM_LOG_LEVEL", value: "verbose"},
		{name: "неизвестный формат логов", key: "FM_LOG_FORMAT", value: "xml"},
		{name: "некорректный TTL сессии", key: "FM_SESSION_TTL", value: "fast"},
		{name: "отрицательный TTL сессии", key: "FM_SESSION_TTL", value: "-1h"},
		{name: "нулевой размер кэша", key: "FM_STATS_CACHE_SIZE", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("ожидалась ошибка при %s=%s", tt.key, tt.value)
			}
		})
	}
}

// TestParseLogLevel проверяет разбор уровней логирования.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLogLevel(%q): ошибка = %v, ожидалась ошибка: %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseLogLevel(%q): ожидалось %v, получено %v", tt.in, got, tt.want)
		}
	}
}
