// users.go — регистрация пользователей и профиль текущей сессии.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/StanleyMurigi/alx-files-manager/internal/api/errors"
	"github.com/StanleyMurigi/alx-files-manager/internal/api/middleware"
	"github.com/StanleyMurigi/alx-files-manager/internal/repository"
)

// UsersHandler — обработчик endpoints /users и /users/me.
type UsersHandler struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUsersHandler создаёт обработчик пользователей.
func NewUsersHandler(users repository.UserRepository, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{
		users:  users,
		logger: logger.With(slog.String("component", "users_handler")),
	}
}

// createUserRequest — тело POST /users.
type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostUsers обрабатывает POST /users.
// 201 {"id", "email"} при успехе; 400 при отсутствующих полях
// или занятом email.
func (h *UsersHandler) PostUsers(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, apierrors.MsgMissingEmail)
		return
	}

	if req.Email == "" {
		apierrors.ValidationError(w, apierrors.MsgMissingEmail)
		return
	}
	if req.Password == "" {
		apierrors.ValidationError(w, apierrors.MsgMissingPassword)
		return
	}

	user, err := h.users.Create(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			apierrors.ValidationError(w, apierrors.MsgAlreadyExist)
			return
		}
		h.logger.Error("Ошибка создания пользователя", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":    user.ID,
		"email": user.Email,
	})
}

// GetMe обрабатывает GET /users/me (аутентифицированный).
// Возвращает id и email пользователя текущей сессии.
func (h *UsersHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Сессия ссылается на удалённого пользователя
			apierrors.Unauthorized(w)
			return
		}
		h.logger.Error("Ошибка получения пользователя", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":    user.ID,
		"email": user.Email,
	})
}
