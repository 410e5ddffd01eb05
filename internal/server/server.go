// Пакет server — HTTP-сервер Files Manager с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на API Gateway.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/StanleyMurigi/alx-files-manager/internal/api/handlers"
	"github.com/StanleyMurigi/alx-files-manager/internal/api/middleware"
	"github.com/StanleyMurigi/alx-files-manager/internal/config"
)

// Handlers — набор обработчиков, монтируемых на роутер.
type Handlers struct {
	App   *handlers.AppHandler
	Auth  *handlers.AuthHandler
	Users *handlers.UsersHandler
	Files *handlers.FilesHandler
}

// Server — HTTP-сервер Files Manager.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// Публичные endpoints (status, stats, connect, users, metrics) монтируются
// без аутентификации; файловые операции и профиль — за TokenAuth.
func New(cfg *config.Config, logger *slog.Logger, h Handlers, auth *middleware.TokenAuth) *Server {
	router := newRouter(logger, h, auth)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// newRouter монтирует routes и middleware.
func newRouter(logger *slog.Logger, h Handlers, auth *middleware.TokenAuth) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.MetricsMiddleware())

	// Публичные endpoints
	router.Get("/status", h.App.GetStatus)
	router.Get("/stats", h.App.GetStats)
	router.Get("/connect", h.Auth.GetConnect)
	router.Post("/users", h.Users.PostUsers)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Endpoints, требующие валидной сессии
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware())

		r.Get("/disconnect", h.Auth.GetDisconnect)
		r.Get("/users/me", h.Users.GetMe)
		r.Post("/files", h.Files.PostFiles)
		r.Get("/files", h.Files.ListFiles)
		r.Get("/files/{id}", h.Files.GetFile)
	})

	return router
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
