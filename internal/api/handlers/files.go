// files.go — HTTP handlers файловых операций Files Manager.
// Создание записей (папки и файлы с base64-содержимым), получение
// по id, листинг с пагинацией.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/StanleyMurigi/alx-files-manager/internal/api/errors"
	"github.com/StanleyMurigi/alx-files-manager/internal/api/middleware"
	"github.com/StanleyMurigi/alx-files-manager/internal/domain/model"
	"github.com/StanleyMurigi/alx-files-manager/internal/repository"
	"github.com/StanleyMurigi/alx-files-manager/internal/storage/filestore"
)

// Persistor — запись бинарного содержимого на durable storage.
type Persistor interface {
	SaveBase64(payload string) (string, error)
}

// FilesHandler — обработчик файловых endpoints.
type FilesHandler struct {
	files  repository.FileRepository
	store  Persistor
	logger *slog.Logger
}

// NewFilesHandler создаёт обработчик файловых endpoints.
func NewFilesHandler(files repository.FileRepository, store Persistor, logger *slog.Logger) *FilesHandler {
	return &FilesHandler{
		files:  files,
		store:  store,
		logger: logger.With(slog.String("component", "files_handler")),
	}
}

// createFileRequest — тело POST /files.
// parentId декодируется в any: клиенты шлют и число 0, и hex-строку.
type createFileRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID any    `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// PostFiles обрабатывает POST /files (аутентифицированный).
// Для папок — только метаданные; для file/image содержимое сначала
// пишется на диск и лишь затем создаётся запись (порядок
// decode → write → insert: сбой записи не оставляет метаданных).
func (h *FilesHandler) PostFiles(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req createFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, apierrors.MsgMissingName)
		return
	}

	if req.Name == "" {
		apierrors.ValidationError(w, apierrors.MsgMissingName)
		return
	}

	typ := model.FileType(req.Type)
	if !typ.Valid() {
		apierrors.ValidationError(w, apierrors.MsgMissingType)
		return
	}

	if typ != model.TypeFolder && req.Data == "" {
		apierrors.ValidationError(w, apierrors.MsgMissingData)
		return
	}

	parentID := normalizeParentID(req.ParentID)

	var (
		rec *model.FileRecord
		err error
	)

	if typ == model.TypeFolder {
		rec, err = h.files.CreateFolder(r.Context(), userID, req.Name, parentID, req.IsPublic)
	} else {
		// Содержимое — на диск до любой мутации метаданных
		var localPath string
		localPath, err = h.store.SaveBase64(req.Data)
		if err != nil {
			if errors.Is(err, filestore.ErrInvalidPayload) {
				apierrors.ValidationError(w, apierrors.MsgInvalidData)
				return
			}
			h.logger.Error("Ошибка сохранения содержимого", slog.String("error", err.Error()))
			apierrors.InternalError(w)
			return
		}

		rec, err = h.files.CreateFile(r.Context(), userID, req.Name, typ, parentID, req.IsPublic, localPath)
	}

	if err != nil {
		h.writeCreateError(w, err)
		middleware.FileOperationsTotal.WithLabelValues("create", "error").Inc()
		return
	}

	middleware.FileOperationsTotal.WithLabelValues("create", "success").Inc()

	writeJSON(w, http.StatusCreated, newFileResponse(rec))
}

// writeCreateError отображает ошибки репозитория на HTTP-таксономию.
func (h *FilesHandler) writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrMissingName):
		apierrors.ValidationError(w, apierrors.MsgMissingName)
	case errors.Is(err, repository.ErrInvalidType):
		apierrors.ValidationError(w, apierrors.MsgMissingType)
	case errors.Is(err, repository.ErrMissingData):
		apierrors.ValidationError(w, apierrors.MsgMissingData)
	case errors.Is(err, repository.ErrParentNotFound):
		apierrors.ValidationError(w, apierrors.MsgParentNotFound)
	case errors.Is(err, repository.ErrParentNotFolder):
		apierrors.ValidationError(w, apierrors.MsgParentNotFolder)
	default:
		h.logger.Error("Ошибка создания записи", slog.String("error", err.Error()))
		apierrors.InternalError(w)
	}
}

// GetFile обрабатывает GET /files/{id} (аутентифицированный).
// Чужая запись неотличима от несуществующей — 404 в обоих случаях.
func (h *FilesHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	rec, err := h.files.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apierrors.NotFound(w)
			return
		}
		h.logger.Error("Ошибка получения записи", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, newFileResponse(rec))
}

// ListFiles обрабатывает GET /files?parentId=&page= (аутентифицированный).
// Пустой или отсутствующий parentId — верхний уровень; некорректный
// page трактуется как 0. Ответ — массив не более PageSize записей.
func (h *FilesHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	parentID := r.URL.Query().Get("parentId")

	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	records, err := h.files.List(r.Context(), userID, parentID, page)
	if err != nil {
		h.logger.Error("Ошибка листинга записей", slog.String("error", err.Error()))
		apierrors.InternalError(w)
		return
	}

	resp := make([]fileResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, newFileResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}
