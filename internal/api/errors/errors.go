// Пакет errors — запись HTTP-ошибок в формате Files Manager.
// Единый плоский формат: {"error": "<message>"}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors //nolint:revive // конфликт имени со stdlib сознательный, пакет используется как apierrors

import (
	"encoding/json"
	"net/http"
)

// Тексты ошибок API. Формулировки — часть контракта,
// клиенты сверяются с ними дословно.
const (
	MsgUnauthorized    = "Unauthorized"
	MsgNotFound        = "Not found"
	MsgMissingName     = "Missing name"
	MsgMissingType     = "Missing type"
	MsgMissingData     = "Missing data"
	MsgInvalidData     = "Invalid data"
	MsgMissingEmail    = "Missing email"
	MsgMissingPassword = "Missing password"
	MsgAlreadyExist    = "Already exist"
	MsgParentNotFound  = "Parent not found"
	MsgParentNotFolder = "Parent is not a folder"
	MsgInternalError   = "Internal Server Error"
)

// errorBody — структура тела ответа ошибки.
type errorBody struct {
	Error string `json:"error"`
}

// WriteError записывает ответ ошибки в стандартном формате.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message})
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// Unauthorized — 401 отсутствующий, неизвестный или истёкший токен.
func Unauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
}

// NotFound — 404 запись отсутствует или принадлежит другому пользователю.
func NotFound(w http.ResponseWriter) {
	WriteError(w, http.StatusNotFound, MsgNotFound)
}

// InternalError — 500 без раскрытия внутренних деталей.
func InternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, MsgInternalError)
}
