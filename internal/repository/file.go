package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/StanleyMurigi/alx-files-manager/internal/domain/model"
)

// PageSize — фиксированный размер страницы при листинге файлов.
const PageSize = 20

// fileDocument — BSON-представление FileRecord в коллекции files.
// parent_id хранится строкой: sentinel model.RootParentID для верхнего
// уровня или hex ObjectID родительской папки. Это избавляет от поля
// смешанного типа (ObjectID | int), которое было бы нужно иначе.
type fileDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	IsPublic  bool               `bson:"is_public"`
	ParentID  string             `bson:"parent_id"`
	LocalPath string             `bson:"local_path,omitempty"`
}

// FileRepository — контракт доступа к метаданным файлов и папок.
// Единственный писатель коллекции files.
type FileRepository interface {
	// CreateFolder создаёт папку. ErrMissingName при пустом имени,
	// ErrParentNotFound/ErrParentNotFolder при некорректном родителе.
	CreateFolder(ctx context.Context, userID, name, parentID string, isPublic bool) (*model.FileRecord, error)
	// CreateFile создаёт запись файла или изображения с уже сохранённым
	// содержимым. Валидация родителя как у CreateFolder; ErrInvalidType
	// для нераспознанного типа, ErrMissingData для файла без localPath.
	CreateFile(ctx context.Context, userID, name string, typ model.FileType, parentID string, isPublic bool, localPath string) (*model.FileRecord, error)
	// GetByID возвращает запись, принадлежащую userID.
	// Чужая и несуществующая записи неразличимы — обе дают ErrNotFound.
	GetByID(ctx context.Context, userID, id string) (*model.FileRecord, error)
	// List возвращает страницу записей userID с данным parentID.
	// Не более PageSize записей, пропуск page*PageSize, порядок — по _id.
	List(ctx context.Context, userID, parentID string, page int) ([]*model.FileRecord, error)
	// Count возвращает общее количество записей (для /stats).
	Count(ctx context.Context) (int64, error)
}

// fileRepo — реализация FileRepository поверх mongo.Collection.
type fileRepo struct {
	col *mongo.Collection
}

// NewFileRepository создаёт репозиторий файлов.
func NewFileRepository(col *mongo.Collection) FileRepository {
	return &fileRepo{col: col}
}

// CreateFolder создаёт запись типа folder. local_path у папок отсутствует.
func (r *fileRepo) CreateFolder(ctx context.Context, userID, name, parentID string, isPublic bool) (*model.FileRecord, error) {
	return r.insert(ctx, userID, name, model.TypeFolder, parentID, isPublic, "")
}

// CreateFile создаёт запись типа file или image.
func (r *fileRepo) CreateFile(ctx context.Context, userID, name string, typ model.FileType, parentID string, isPublic bool, localPath string) (*model.FileRecord, error) {
	if !typ.Valid() {
		return nil, ErrInvalidType
	}
	if typ != model.TypeFolder && localPath == "" {
		return nil, ErrMissingData
	}
	if typ == model.TypeFolder {
		localPath = ""
	}
	return r.insert(ctx, userID, name, typ, parentID, isPublic, localPath)
}

// insert — общий путь создания записи: валидация имени и родителя, InsertOne.
func (r *fileRepo) insert(ctx context.Context, userID, name string, typ model.FileType, parentID string, isPublic bool, localPath string) (*model.FileRecord, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if parentID == "" {
		parentID = model.RootParentID
	}

	if err := r.validateParent(ctx, parentID); err != nil {
		return nil, err
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("некорректный userID %q: %w", userID, err)
	}

	doc := fileDocument{
		UserID:    uid,
		Name:      name,
		Type:      string(typ),
		IsPublic:  isPublic,
		ParentID:  parentID,
		LocalPath: localPath,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания записи: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("неожиданный тип InsertedID: %T", res.InsertedID)
	}
	doc.ID = oid

	return doc.toDomain(), nil
}

// validateParent проверяет, что родительская запись существует и является
// папкой. Родитель ищется без фильтра по владельцу: инвариант требует
// только существования папки в коллекции.
func (r *fileRepo) validateParent(ctx context.Context, parentID string) error {
	if parentID == model.RootParentID {
		return nil
	}

	oid, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		// Некорректный id не может ссылаться на существующую папку
		return ErrParentNotFound
	}

	var parent fileDocument
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&parent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrParentNotFound
		}
		return fmt.Errorf("ошибка поиска родительской записи: %w", err)
	}

	if parent.Type != string(model.TypeFolder) {
		return ErrParentNotFolder
	}
	return nil
}

// GetByID возвращает запись по id в рамках владельца userID.
// Некорректный hex id трактуется как отсутствие записи — никакой
// информации о существовании чужих записей наружу не уходит.
func (r *fileRepo) GetByID(ctx context.Context, userID, id string) (*model.FileRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc fileDocument
	err = r.col.FindOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "user_id", Value: uid},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return doc.toDomain(), nil
}

// List возвращает страницу записей через aggregation pipeline.
// Отрицательная страница нормализуется в 0.
func (r *fileRepo) List(ctx context.Context, userID, parentID string, page int) ([]*model.FileRecord, error) {
	if page < 0 {
		page = 0
	}
	if parentID == "" {
		parentID = model.RootParentID
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("некорректный userID %q: %w", userID, err)
	}

	cursor, err := r.col.Aggregate(ctx, buildListPipeline(uid, parentID, page))
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга записей: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []fileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка чтения результатов листинга: %w", err)
	}

	result := make([]*model.FileRecord, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toDomain())
	}
	return result, nil
}

// Count возвращает общее количество записей в коллекции.
func (r *fileRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта записей: %w", err)
	}
	return n, nil
}

// buildListPipeline строит aggregation pipeline листинга:
// $match по владельцу и родителю, $sort по _id (ObjectID монотонен по
// времени создания, так что конкатенация страниц воспроизводит порядок
// вставки без дублей и пропусков), $skip/$limit для пагинации.
func buildListPipeline(userID primitive.ObjectID, parentID string, page int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "user_id", Value: userID},
			{Key: "parent_id", Value: parentID},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$skip", Value: int64(page * PageSize)}},
		bson.D{{Key: "$limit", Value: int64(PageSize)}},
	}
}

// toDomain преобразует BSON-документ в доменную модель.
func (d *fileDocument) toDomain() *model.FileRecord {
	return &model.FileRecord{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Name:      d.Name,
		Type:      model.FileType(d.Type),
		IsPublic:  d.IsPublic,
		ParentID:  d.ParentID,
		LocalPath: d.LocalPath,
	}
}
