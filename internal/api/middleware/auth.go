// auth.go — middleware аутентификации по opaque-токену.
// Токен приходит в заголовке X-Token и резолвится в userID через
// хранилище сессий. Отсутствующий, неизвестный и истёкший токены
// неразличимы — все дают 401.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	apierrors "github.com/StanleyMurigi/alx-files-manager/internal/api/errors"
	"github.com/StanleyMurigi/alx-files-manager/internal/sessions"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// ContextKeyUserID — ключ для userID аутентифицированной сессии в контексте запроса.
const ContextKeyUserID contextKey = "user_id"

// TokenHeader — заголовок с opaque-токеном сессии.
const TokenHeader = "X-Token"

// TokenAuth — middleware аутентификации по токену сессии.
type TokenAuth struct {
	store  sessions.Store
	logger *slog.Logger
}

// NewTokenAuth создаёт middleware аутентификации.
func NewTokenAuth(store sessions.Store, logger *slog.Logger) *TokenAuth {
	return &TokenAuth{
		store:  store,
		logger: logger.With(slog.String("component", "token_auth")),
	}
}

// Middleware возвращает HTTP middleware: извлекает X-Token, резолвит его
// в userID и помещает userID в контекст запроса. Ошибка связи с backing
// store также даёт 401 — запрос не падает из-за недоступного Redis.
func (a *TokenAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				apierrors.Unauthorized(w)
				return
			}

			userID, err := a.store.Resolve(r.Context(), token)
			if err != nil {
				a.logger.Debug("Токен не прошёл аутентификацию",
					slog.String("remote_addr", r.RemoteAddr),
				)
				apierrors.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext извлекает userID из контекста запроса.
// Возвращает пустую строку, если запрос не аутентифицирован.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(ContextKeyUserID).(string)
	return userID
}
