// auth.go — вход и выход: обмен Basic-учётных данных на opaque-токен
// сессии и отзыв токена.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/StanleyMurigi/alx-files-manager/internal/api/errors"
	"github.com/StanleyMurigi/alx-files-manager/internal/api/middleware"
	"github.com/StanleyMurigi/alx-files-manager/internal/repository"
	"github.com/StanleyMurigi/alx-files-manager/internal/sessions"
)

// AuthHandler — обработчик endpoints /connect и /disconnect.
type AuthHandler struct {
	users      repository.UserRepository
	sessions   sessions.Store
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthHandler создаёт обработчик аутентификации.
func NewAuthHandler(users repository.UserRepository, store sessions.Store, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		sessions:   store,
		sessionTTL: sessionTTL,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// GetConnect обрабатывает GET /connect.
// Basic-учётные данные проверяются по users, при успехе создаётся
// сессия с настроенным TTL и возвращается {"token": "<uuid>"}.
// Любая ошибка проверки учётных данных — 401 без уточнений.
func (h *AuthHandler) GetConnect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok || email == "" {
		apierrors.Unauthorized(w)
		return
	}

	user, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apierrors.Unauthorized(w)
			return
		}
		h.logger.Error("Ошибка аутентификации", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID, h.sessionTTL)
	if err != nil {
		h.logger.Error("Ошибка создания сессии", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	middleware.SessionsTotal.WithLabelValues("created").Inc()

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetDisconnect обрабатывает GET /disconnect (аутентифицированный).
// Отзывает текущую сессию; отзыв идемпотентен. Успех — 204 без тела.
func (h *AuthHandler) GetDisconnect(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.TokenHeader)

	if err := h.sessions.Revoke(r.Context(), token); err != nil {
		h.logger.Error("Ошибка отзыва сессии", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	middleware.SessionsTotal.WithLabelValues("revoked").Inc()

	w.WriteHeader(http.StatusNoContent)
}
