// Пакет filestore — запись бинарного содержимого файлов на диск.
// Содержимое приходит целиком в base64, сохраняется под сгенерированным
// opaque-именем и дальше упоминается только по возвращённому пути.
package filestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrInvalidPayload — содержимое не является корректным base64.
var ErrInvalidPayload = errors.New("некорректное base64-содержимое")

// FileStore — запись содержимого файлов в корневую директорию.
type FileStore struct {
	// rootDir — абсолютный путь корневой директории хранения
	rootDir string
}

// New создаёт FileStore. Директория создаётся, если её ещё нет.
func New(rootDir string) (*FileStore, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("некорректный путь %s: %w", rootDir, err)
	}

	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию данных %s: %w", abs, err)
	}

	return &FileStore{rootDir: abs}, nil
}

// SaveBase64 декодирует payload и записывает его в файл с uuid-именем.
// Возвращает абсолютный путь — opaque handle для FileRecord.localPath.
//
// Паттерн: temp файл → запись → fsync → atomic rename.
// Читатель никогда не видит частично записанный файл;
// при ошибке temp файл удаляется и метаданные не создаются.
func (fs *FileStore) SaveBase64(payload string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidPayload
	}

	fullPath := filepath.Join(fs.rootDir, uuid.NewString())
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка записи данных: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return fullPath, nil
}

// RootDir возвращает путь к корневой директории хранения.
func (fs *FileStore) RootDir() string {
	return fs.rootDir
}
