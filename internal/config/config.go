// Пакет config — загрузка и валидация конфигурации Files Manager
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Files Manager.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Backing stores ---

	// Адрес Redis (host:port) — хранилище сессий
	RedisAddr string
	// Номер базы Redis
	RedisDB int
	// URI подключения к MongoDB
	MongoURI string
	// Имя базы данных MongoDB
	DBName string

	// --- Файловое хранилище ---

	// Корневая директория содержимого файлов
	FolderPath string

	// --- Сессии ---

	// Время жизни сессии
	SessionTTL time.Duration

	// --- Кэш статистики ---

	// TTL записи кэша счётчиков /stats
	StatsCacheTTL time.Duration
	// Максимальный размер кэша счётчиков
	StatsCacheSize int

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown
	ShutdownTimeout time.Duration

	// --- topologymetrics ---

	// Имя вершины графа текущего приложения
	ServiceID string
	// Имя группы в метриках topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// FM_PORT — порт HTTP-сервера (по умолчанию 5000)
	cfg.Port, err = getEnvInt("FM_PORT", 5000)
	if err != nil {
		return nil, fmt.Errorf("FM_PORT: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("FM_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// FM_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("FM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("FM_LOG_LEVEL: %w", err)
	}

	// FM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("FM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("FM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// FM_REDIS_ADDR — адрес Redis (по умолчанию localhost:6379)
	cfg.RedisAddr = getEnvDefault("FM_REDIS_ADDR", "localhost:6379")

	// FM_REDIS_DB — номер базы Redis (по умолчанию 0)
	cfg.RedisDB, err = getEnvInt("FM_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("FM_REDIS_DB: %w", err)
	}

	// FM_MONGO_URI — URI MongoDB (по умолчанию mongodb://localhost:27017)
	cfg.MongoURI = getEnvDefault("FM_MONGO_URI", "mongodb://localhost:27017")

	// FM_DB_NAME — имя базы (по умолчанию files_manager)
	cfg.DBName = getEnvDefault("FM_DB_NAME", "files_manager")

	// FM_FOLDER_PATH — директория содержимого файлов (по умолчанию /tmp/files_manager)
	cfg.FolderPath = getEnvDefault("FM_FOLDER_PATH", "/tmp/files_manager")

	// FM_SESSION_TTL — время жизни сессии (по умолчанию 24h)
	cfg.SessionTTL, err = getEnvDuration("FM_SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("FM_SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("FM_SESSION_TTL: значение должно быть положительным")
	}

	// FM_STATS_CACHE_TTL — TTL кэша счётчиков (по умолчанию 10s)
	cfg.StatsCacheTTL, err = getEnvDuration("FM_STATS_CACHE_TTL", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_STATS_CACHE_TTL: %w", err)
	}

	// FM_STATS_CACHE_SIZE — размер кэша счётчиков (по умолчанию 16)
	cfg.StatsCacheSize, err = getEnvInt("FM_STATS_CACHE_SIZE", 16)
	if err != nil {
		return nil, fmt.Errorf("FM_STATS_CACHE_SIZE: %w", err)
	}
	if cfg.StatsCacheSize <= 0 {
		return nil, fmt.Errorf("FM_STATS_CACHE_SIZE: значение должно быть положительным")
	}

	// FM_HTTP_READ_TIMEOUT — таймаут чтения (по умолчанию 30s)
	cfg.HTTPReadTimeout, err = getEnvDuration("FM_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_HTTP_READ_TIMEOUT: %w", err)
	}

	// FM_HTTP_WRITE_TIMEOUT — таймаут записи (по умолчанию 60s)
	cfg.HTTPWriteTimeout, err = getEnvDuration("FM_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_HTTP_WRITE_TIMEOUT: %w", err)
	}

	// FM_HTTP_IDLE_TIMEOUT — таймаут простоя (по умолчанию 120s)
	cfg.HTTPIdleTimeout, err = getEnvDuration("FM_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// FM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("FM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_SHUTDOWN_TIMEOUT: %w", err)
	}

	// FM_SERVICE_ID — имя вершины графа (по умолчанию files-manager)
	cfg.ServiceID = getEnvDefault("FM_SERVICE_ID", "files-manager")

	// FM_DEPHEALTH_GROUP — имя группы в метриках (по умолчанию files-manager)
	cfg.DephealthGroup = getEnvDefault("FM_DEPHEALTH_GROUP", "files-manager")

	// FM_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("FM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("FM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 24h)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
