// Пакет handlers — HTTP-обработчики Files Manager.
// Каждый запрос проходит одну и ту же цепочку состояний:
// Unauthenticated → TokenResolved (middleware) → Validated → Executed.
// Ошибки коллабораторов на любом шаге даунгрейдятся в 500 без деталей.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/StanleyMurigi/alx-files-manager/internal/domain/model"
)

// writeJSON сериализует ответ со статусом statusCode.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// fileResponse — API-представление FileRecord.
// parentId наружу уходит как число 0 для верхнего уровня
// и как hex-строка для вложенных записей.
type fileResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsPublic  bool   `json:"isPublic"`
	ParentID  any    `json:"parentId"`
	LocalPath string `json:"localPath,omitempty"`
}

// newFileResponse преобразует доменную запись в API-формат.
func newFileResponse(rec *model.FileRecord) fileResponse {
	var parentID any = rec.ParentID
	if rec.IsRoot() {
		parentID = 0
	}

	return fileResponse{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Name:      rec.Name,
		Type:      string(rec.Type),
		IsPublic:  rec.IsPublic,
		ParentID:  parentID,
		LocalPath: rec.LocalPath,
	}
}

// normalizeParentID приводит parentId из тела запроса к строковому виду.
// Клиенты передают его и числом (0), и строкой ("0", hex id) — JSON тела
// нестрогий, поэтому поле декодируется в any и нормализуется здесь.
func normalizeParentID(v any) string {
	switch val := v.(type) {
	case nil:
		return model.RootParentID
	case string:
		if val == "" {
			return model.RootParentID
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return model.RootParentID
	}
}
