package repository

import (
	"context"
	"crypto/sha1" //nolint:gosec // SHA-1 — исторический формат хранения паролей files_manager
	"encoding/hex"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/StanleyMurigi/alx-files-manager/internal/domain/model"
)

// userDocument — BSON-представление пользователя в коллекции users.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

// UserRepository — контракт доступа к учётным записям.
// Единственный писатель коллекции users.
type UserRepository interface {
	// Create регистрирует пользователя. ErrAlreadyExists при занятом email.
	Create(ctx context.Context, email, password string) (*model.User, error)
	// Authenticate проверяет пару email/пароль. ErrNotFound при несовпадении.
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	// GetByID возвращает пользователя по id или ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// Count возвращает количество пользователей (для /stats).
	Count(ctx context.Context) (int64, error)
}

// userRepo — реализация UserRepository поверх mongo.Collection.
type userRepo struct {
	col *mongo.Collection
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(col *mongo.Collection) UserRepository {
	return &userRepo{col: col}
}

// Create регистрирует пользователя с SHA-1-хэшем пароля.
func (r *userRepo) Create(ctx context.Context, email, password string) (*model.User, error) {
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Err()
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	doc := userDocument{
		Email:    email,
		Password: hashPassword(password),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("неожиданный тип InsertedID: %T", res.InsertedID)
	}

	return &model.User{ID: oid.Hex(), Email: email}, nil
}

// Authenticate ищет пользователя по email и хэшу пароля.
// Неверный email и неверный пароль неразличимы — оба дают ErrNotFound.
func (r *userRepo) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var doc userDocument
	err := r.col.FindOne(ctx, bson.D{
		{Key: "email", Value: email},
		{Key: "password", Value: hashPassword(password)},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка аутентификации: %w", err)
	}

	return &model.User{ID: doc.ID.Hex(), Email: doc.Email}, nil
}

// GetByID возвращает пользователя по hex ObjectID.
func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc userDocument
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return &model.User{ID: doc.ID.Hex(), Email: doc.Email}, nil
}

// Count возвращает количество пользователей в коллекции.
func (r *userRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта пользователей: %w", err)
	}
	return n, nil
}

// hashPassword возвращает SHA-1-хэш пароля в hex.
// Формат унаследован от существующей базы files_manager.
func hashPassword(password string) string {
	sum := sha1.Sum([]byte(password)) //nolint:gosec // см. комментарий к импорту
	return hex.EncodeToString(sum[:])
}
