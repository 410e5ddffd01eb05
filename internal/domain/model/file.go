// Пакет model — доменные типы Files Manager.
package model

// FileType — тип записи файловой иерархии.
type FileType string

// Допустимые типы записей.
const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// Valid проверяет, что тип — один из трёх допустимых.
func (t FileType) Valid() bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}

// RootParentID — sentinel «нет родителя» (верхний уровень иерархии).
const RootParentID = "0"

// FileRecord — метаданные файла или папки одного пользователя.
// Записи одного пользователя образуют лес: ParentID либо RootParentID,
// либо id другой записи типа folder.
type FileRecord struct {
	// ID — уникальный идентификатор записи (hex ObjectID)
	ID string
	// UserID — владелец записи (hex ObjectID), назначается из сессии при создании
	UserID string
	// Name — имя файла или папки (непустое)
	Name string
	// Type — folder, file или image
	Type FileType
	// IsPublic — доступность записи без аутентификации
	IsPublic bool
	// ParentID — RootParentID или id родительской папки
	ParentID string
	// LocalPath — абсолютный путь содержимого на диске (пусто для папок)
	LocalPath string
}

// IsRoot возвращает true, если запись находится на верхнем уровне.
func (f *FileRecord) IsRoot() bool {
	return f.ParentID == RootParentID
}

// User — учётная запись пользователя (пароль наружу не отдаётся).
type User struct {
	// ID — уникальный идентификатор (hex ObjectID)
	ID string
	// Email — адрес, используемый для входа
	Email string
}
