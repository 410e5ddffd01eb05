// Пакет repository — слой доступа к данным MongoDB для Files Manager.
// Владеет коллекциями files и users; репозитории — единственные
// писатели своих коллекций. Все запросы — однократные round-trip'ы
// без внутренних retry (повторы — забота вызывающего кода).
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена или принадлежит другому пользователю.
	ErrNotFound = errors.New("запись не найдена")
	// ErrMissingName — не указано имя записи.
	ErrMissingName = errors.New("не указано имя")
	// ErrInvalidType — тип не входит в folder/file/image.
	ErrInvalidType = errors.New("недопустимый тип записи")
	// ErrMissingData — для файла не передано содержимое.
	ErrMissingData = errors.New("отсутствует содержимое файла")
	// ErrParentNotFound — родительская запись не существует.
	ErrParentNotFound = errors.New("родительская запись не найдена")
	// ErrParentNotFolder — родительская запись не является папкой.
	ErrParentNotFolder = errors.New("родительская запись не является папкой")
	// ErrAlreadyExists — пользователь с таким email уже зарегистрирован.
	ErrAlreadyExists = errors.New("запись уже существует")
)

// pingTimeout — таймаут проверки liveness MongoDB.
const pingTimeout = 2 * time.Second

// Repository — подключение к MongoDB и доступ к коллекциям.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect создаёт подключение к MongoDB.
// Недоступная база на старте не фатальна: выполняется ping и пишется
// предупреждение, фактическое состояние видно через IsAlive и /status.
func Connect(ctx context.Context, uri, dbName string, logger *slog.Logger) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("подключение к MongoDB: %w", err)
	}

	r := &Repository{
		client: client,
		db:     client.Database(dbName),
		logger: logger.With(slog.String("component", "repository")),
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		r.logger.Warn("MongoDB недоступна на старте, продолжаем с liveness-проверками",
			slog.String("error", err.Error()),
		)
	}

	return r, nil
}

// Collection возвращает коллекцию базы по имени.
func (r *Repository) Collection(name string) *mongo.Collection {
	return r.db.Collection(name)
}

// IsAlive проверяет соединение с MongoDB через ping с коротким таймаутом.
func (r *Repository) IsAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return r.client.Ping(ctx, readpref.Primary()) == nil
}

// Close разрывает соединение с MongoDB.
func (r *Repository) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("отключение от MongoDB: %w", err)
	}
	return nil
}
