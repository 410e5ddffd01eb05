// app.go — служебные endpoints /status и /stats.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	apierrors "github.com/StanleyMurigi/alx-files-manager/internal/api/errors"
)

// AlivenessChecker — liveness-проба внешнего коллаборатора.
type AlivenessChecker interface {
	IsAlive(ctx context.Context) bool
}

// StatsProvider — источник счётчиков для /stats.
type StatsProvider interface {
	Counts(ctx context.Context) (users, files int64, err error)
}

// AppHandler — обработчик служебных endpoints.
type AppHandler struct {
	redis  AlivenessChecker
	db     AlivenessChecker
	stats  StatsProvider
	logger *slog.Logger
}

// NewAppHandler создаёт обработчик служебных endpoints.
func NewAppHandler(redis, db AlivenessChecker, stats StatsProvider, logger *slog.Logger) *AppHandler {
	return &AppHandler{
		redis:  redis,
		db:     db,
		stats:  stats,
		logger: logger.With(slog.String("component", "app_handler")),
	}
}

// GetStatus обрабатывает GET /status.
// Возвращает liveness-флаги обоих backing store: {"redis": bool, "db": bool}.
func (h *AppHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]bool{
		"redis": h.redis.IsAlive(r.Context()),
		"db":    h.db.IsAlive(r.Context()),
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetStats обрабатывает GET /stats.
// Возвращает количество пользователей и файлов: {"users": n, "files": n}.
func (h *AppHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	users, files, err := h.stats.Counts(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения статистики", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	resp := map[string]int64{
		"users": users,
		"files": files,
	}
	writeJSON(w, http.StatusOK, resp)
}
