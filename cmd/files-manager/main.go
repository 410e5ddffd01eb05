// Точка входа Files Manager — backend файлового хранилища
// с сессионной аутентификацией.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/StanleyMurigi/alx-files-manager/internal/api/handlers"
	"github.com/StanleyMurigi/alx-files-manager/internal/api/middleware"
	"github.com/StanleyMurigi/alx-files-manager/internal/config"
	"github.com/StanleyMurigi/alx-files-manager/internal/repository"
	"github.com/StanleyMurigi/alx-files-manager/internal/server"
	"github.com/StanleyMurigi/alx-files-manager/internal/service"
	"github.com/StanleyMurigi/alx-files-manager/internal/sessions"
	"github.com/StanleyMurigi/alx-files-manager/internal/storage/filestore"
)

// connectTimeout — таймаут установки соединения с MongoDB на старте.
const connectTimeout = 10 * time.Second

func main() {
	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Files Manager запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("folder_path", cfg.FolderPath),
		slog.String("db_name", cfg.DBName),
	)

	// --- Инициализация компонентов ---

	ctx := context.Background()

	// 1. Хранилище сессий (Redis)
	sessionStore := sessions.NewRedisStore(cfg.RedisAddr, cfg.RedisDB, logger)

	// 2. Документное хранилище (MongoDB)
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	repo, err := repository.Connect(connectCtx, cfg.MongoURI, cfg.DBName, logger)
	cancel()
	if err != nil {
		logger.Error("Ошибка подключения к MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fileRepo := repository.NewFileRepository(repo.Collection("files"))
	userRepo := repository.NewUserRepository(repo.Collection("users"))

	// 3. Файловое хранилище содержимого
	store, err := filestore.New(cfg.FolderPath)
	if err != nil {
		logger.Error("Ошибка инициализации FileStore", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Сервис статистики с TTL-кэшем
	statsSvc := service.NewStatsService(userRepo, fileRepo, cfg.StatsCacheSize, cfg.StatsCacheTTL)

	// 5. topologymetrics — мониторинг зависимостей
	dephealthSvc, dephealthErr := service.NewDephealthService(
		cfg.ServiceID,
		cfg.DephealthGroup,
		"redis://"+cfg.RedisAddr,
		cfg.MongoURI,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 6. Handlers
	h := server.Handlers{
		App:   handlers.NewAppHandler(sessionStore, repo, statsSvc, logger),
		Auth:  handlers.NewAuthHandler(userRepo, sessionStore, cfg.SessionTTL, logger),
		Users: handlers.NewUsersHandler(userRepo, logger),
		Files: handlers.NewFilesHandler(fileRepo, store, logger),
	}

	// 7. Token middleware
	tokenAuth := middleware.NewTokenAuth(sessionStore, logger)

	// 8. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, h, tokenAuth)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// --- Освобождение ресурсов ---

	if dephealthSvc != nil && dephealthErr == nil {
		dephealthSvc.Stop()
	}

	if err := sessionStore.Close(); err != nil {
		logger.Warn("Ошибка закрытия соединения с Redis", slog.String("error", err.Error()))
	}

	closeCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	if err := repo.Close(closeCtx); err != nil {
		logger.Warn("Ошибка отключения от MongoDB", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("Files Manager остановлен")
}
