// Пакет sessions — эфемерное хранилище сессий поверх Redis.
// Сессия связывает opaque-токен с идентификатором пользователя
// и живёт ровно TTL: продление при чтении не выполняется.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession — токен отсутствует или сессия истекла.
// Вызывающий код не различает эти случаи.
var ErrNoSession = errors.New("сессия не найдена или истекла")

// keyPrefix — префикс ключей сессий в Redis.
const keyPrefix = "auth_"

// pingTimeout — таймаут проверки liveness Redis.
const pingTimeout = 2 * time.Second

// Store — контракт хранилища сессий.
type Store interface {
	// Resolve возвращает userID по токену или ErrNoSession.
	Resolve(ctx context.Context, token string) (string, error)
	// Create генерирует токен и привязывает его к userID на срок ttl.
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	// Revoke удаляет сессию. Идемпотентна: отсутствие токена — не ошибка.
	Revoke(ctx context.Context, token string) error
	// IsAlive проверяет доступность backing store.
	IsAlive(ctx context.Context) bool
}

// RedisStore — реализация Store поверх go-redis.
// Клиент создаётся явно и внедряется при старте (никаких ambient singletons).
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore создаёт хранилище сессий с подключением к Redis.
// Соединение ленивое: фактический dial происходит при первой операции,
// поэтому недоступный Redis на старте не фатален — /status покажет redis:false.
func NewRedisStore(addr string, db int, logger *slog.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStore{
		client: client,
		logger: logger.With(slog.String("component", "sessions")),
	}
}

// Resolve возвращает userID, привязанный к токену.
// Отсутствующий и истёкший токен неразличимы — оба дают ErrNoSession.
// Ошибка связи с Redis также трактуется как отсутствие сессии:
// запрос завершится 401, а не 500 (retry — забота клиента).
func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Ошибка чтения сессии из Redis",
				slog.String("error", err.Error()),
			)
		}
		return "", ErrNoSession
	}
	return val, nil
}

// Create генерирует opaque-токен (uuid v4) и сохраняет привязку
// token → userID с заданным TTL (семантика SETEX).
func (s *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	if err := s.client.Set(ctx, keyPrefix+token, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return token, nil
}

// Revoke удаляет сессию по токену. DEL несуществующего ключа — не ошибка.
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

// IsAlive проверяет соединение с Redis через PING с коротким таймаутом.
func (s *RedisStore) IsAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return s.client.Ping(ctx).Err() == nil
}

// Close закрывает соединение с Redis.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Проверка на этапе компиляции
var _ Store = (*RedisStore)(nil)
