package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/StanleyMurigi/alx-files-manager/internal/api/middleware"
	"github.com/StanleyMurigi/alx-files-manager/internal/domain/model"
	"github.com/StanleyMurigi/alx-files-manager/internal/repository"
)

const testUserID = "507f1f77bcf86cd799439011"

// fakeFileRepo — репозиторий файлов в памяти для тестов handlers.
type fakeFileRepo struct {
	records map[string]*model.FileRecord
	nextID  int
	// createErr подменяет результат операций создания
	createErr error
	listed    []*model.FileRecord
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{records: map[string]*model.FileRecord{}}
}

func (f *fakeFileRepo) CreateFolder(_ context.Context, userID, name, parentID string, isPublic bool) (*model.FileRecord, error) {
	return f.create(userID, name, model.TypeFolder, parentID, isPublic, "")
}

func (f *fakeFileRepo) CreateFile(_ context.Context, userID, name string, typ model.FileType, parentID string, isPublic bool, localPath string) (*model.FileRecord, error) {
	return f.create(userID, name, typ, parentID, isPublic, localPath)
}

func (f *fakeFileRepo) create(userID, name string, typ model.FileType, parentID string, isPublic bool, localPath string) (*model.FileRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	rec := &model.FileRecord{
		ID:        "65f000000000000000000a0" + string(rune('0'+f.nextID)),
		UserID:    userID,
		Name:      name,
		Type:      typ,
		IsPublic:  isPublic,
		ParentID:  parentID,
		LocalPath: localPath,
	}
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeFileRepo) GetByID(_ context.Context, userID, id string) (*model.FileRecord, error) {
	rec, ok := f.records[id]
	if !ok || rec.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (f *fakeFileRepo) List(_ context.Context, _, _ string, _ int) ([]*model.FileRecord, error) {
	return f.listed, nil
}

func (f *fakeFileRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

// fakePersistor — запись содержимого в памяти.
type fakePersistor struct {
	saved []string
	err   error
}

func (f *fakePersistor) SaveBase64(payload string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, payload)
	return "/tmp/files_manager/fake-" + payload, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
}

// authedRequest создаёт запрос с userID в контексте,
// как после прохождения TokenAuth middleware.
func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUserID, testUserID)
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("ошибка разбора тела ошибки: %v", err)
	}
	return body["error"]
}

// TestPostFiles_Validation проверяет валидацию тела POST /files.
func TestPostFiles_Validation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "отсутствует имя",
			body:      `{"type":"file","data":"aGVsbG8="}`,
			wantError: "Missing name",
		},
		{
			name:      "отсутствует тип",
			body:      `{"name":"a.txt","data":"aGVsbG8="}`,
			wantError: "Missing type",
		},
		{
			name:      "нераспознанный тип",
			body:      `{"name":"a.txt","type":"document"}`,
			wantError: "Missing type",
		},
		{
			name:      "файл без содержимого",
			body:      `{"name":"a.txt","type":"file"}`,
			wantError: "Missing data",
		},
		{
			name:      "некорректный JSON",
			body:      `{name:`,
			wantError: "Missing name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewFilesHandler(newFakeFileRepo(), &fakePersistor{}, discardLogger())

			req := authedRequest(http.MethodPost, "/files", tt.body)
			rec := httptest.NewRecorder()
			h.PostFiles(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("статус: ожидалось 400, получено %d", rec.Code)
			}
			if got := decodeError(t, rec); got != tt.wantError {
				t.Errorf("ошибка: ожидалось %q, получено %q", tt.wantError, got)
			}
		})
	}
}

// TestPostFiles_CreateFolder проверяет создание папки: 201,
// parentId наружу уходит числом 0, localPath отсутствует.
func TestPostFiles_CreateFolder(t *testing.T) {
	repo := newFakeFileRepo()
	persistor := &fakePersistor{}
	h := NewFilesHandler(repo, persistor, discardLogger())

	req := authedRequest(http.MethodPost, "/files", `{"name":"docs","type":"folder"}`)
	rec := httptest.NewRecorder()
	h.PostFiles(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус: ожидалось 201, получено %d: %s", rec.Code, rec.Body.String())
	}
	if len(persistor.saved) != 0 {
		t.Error("для папки содержимое не должно записываться")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("ошибка разбора тела: %v", err)
	}
	if body["userId"] != testUserID {
		t.Errorf("userId: ожидалось %s, получено %v", testUserID, body["userId"])
	}
	if body["parentId"] != float64(0) {
		t.Errorf("parentId: ожидалось 0, получено %v (%T)", body["parentId"], body["parentId"])
	}
	if body["isPublic"] != false {
		t.Errorf("isPublic по умолчанию false, получено %v", body["isPublic"])
	}
	if _, ok := body["localPath"]; ok {
		t.Error("у папки не должно быть localPath")
	}
}

// TestPostFiles_CreateFile проверяет создание файла:
// содержимое пишется до создания записи, localPath попадает в ответ.
func TestPostFiles_CreateFile(t *testing.T) {
	repo := newFakeFileRepo()
	persistor := &fakePersistor{}
	h := NewFilesHandler(repo, persistor, discardLogger())

	req := authedRequest(http.MethodPost, "/files", `{"name":"a.txt","type":"file","data":"aGVsbG8="}`)
	rec := httptest.NewRecorder()
	h.PostFiles(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус: ожидалось 201, получено %d: %s", rec.Code, rec.Body.String())
	}
	if len(persistor.saved) != 1 || persistor.saved[0] != "aGVsbG8=" {
		t.Errorf("персистор должен получить payload: %v", persistor.saved)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("ошибка разбора тела: %v", err)
	}
	if body["id"] == "" || body["id"] == nil {
		t.Error("в ответе должен быть id")
	}
	if body["type"] != "file" {
		t.Errorf("type: получено %v", body["type"])
	}
	localPath, _ := body["localPath"].(string)
	if localPath == "" {
		t.Error("в ответе должен быть localPath")
	}
}

// TestPostFiles_ParentErrors проверяет отображение ошибок родителя на 400.
func TestPostFiles_ParentErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantError string
	}{
		{name: "родитель не найден", err: repository.ErrParentNotFound, wantError: "Parent not found"},
		{name: "родитель не папка", err: repository.ErrParentNotFolder, wantError: "Parent is not a folder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeFileRepo()
			repo.createErr = tt.err
			h := NewFilesHandler(repo, &fakePersistor{}, discardLogger())

			req := authedRequest(http.MethodPost, "/files",
				`{"name":"docs","type":"folder","parentId":"65f000000000000000000a01"}`)
			rec := httptest.NewRecorder()
			h.PostFiles(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("статус: ожидалось 400, получено %d", rec.Code)
			}
			if got := decodeError(t, rec); got != tt.wantError {
				t.Errorf("ошибка: ожидалось %q, получено %q", tt.wantError, got)
			}
		})
	}
}

// TestPostFiles_InternalError проверяет даунгрейд ошибки коллаборатора в 500.
func TestPostFiles_InternalError(t *testing.T) {
	repo := newFakeFileRepo()
	repo.createErr = errors.New("document store unreachable")
	h := NewFilesHandler(repo, &fakePersistor{}, discardLogger())

	req := authedRequest(http.MethodPost, "/files", `{"name":"docs","type":"folder"}`)
	rec := httptest.NewRecorder()
	h.PostFiles(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("статус: ожидалось 500, получено %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "Internal Server Error" {
		t.Errorf("внутренние детали не должны утекать, получено %q", got)
	}
}

// TestGetFile проверяет получение записи по id через chi-роутер.
func TestGetFile(t *testing.T) {
	repo := newFakeFileRepo()
	rec1, err := repo.CreateFolder(context.Background(), testUserID, "docs", model.RootParentID, false)
	if err != nil {
		t.Fatalf("ошибка подготовки: %v", err)
	}
	foreign, err := repo.CreateFolder(context.Background(), "600000000000000000000000", "other", model.RootParentID, false)
	if err != nil {
		t.Fatalf("ошибка подготовки: %v", err)
	}

	h := NewFilesHandler(repo, &fakePersistor{}, discardLogger())
	router := chi.NewRouter()
	router.Get("/files/{id}", h.GetFile)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "своя запись", id: rec1.ID, wantStatus: http.StatusOK},
		{name: "чужая запись", id: foreign.ID, wantStatus: http.StatusNotFound},
		{name: "несуществующая запись", id: "65ffffffffffffffffffffff", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, "/files/"+tt.id, "")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("статус: ожидалось %d, получено %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusNotFound {
				if got := decodeError(t, rec); got != "Not found" {
					t.Errorf("ошибка: ожидалось Not found, получено %q", got)
				}
			}
		})
	}
}

// TestListFiles проверяет листинг: JSON-массив записей.
func TestListFiles(t *testing.T) {
	repo := newFakeFileRepo()
	repo.listed = []*model.FileRecord{
		{ID: "65f000000000000000000a01", UserID: testUserID, Name: "a", Type: model.TypeFolder, ParentID: model.RootParentID},
		{ID: "65f000000000000000000a02", UserID: testUserID, Name: "b", Type: model.TypeFile, ParentID: model.RootParentID, LocalPath: "/tmp/x"},
	}
	h := NewFilesHandler(repo, &fakePersistor{}, discardLogger())

	req := authedRequest(http.MethodGet, "/files?parentId=0&page=0", "")
	rec := httptest.NewRecorder()
	h.ListFiles(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус: ожидалось 200, получено %d", rec.Code)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("ошибка разбора тела: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("ожидалось 2 записи, получено %d", len(body))
	}
	if body[0]["name"] != "a" || body[1]["name"] != "b" {
		t.Errorf("порядок записей нарушен: %v", body)
	}
}

// TestListFiles_Empty проверяет, что пустой результат — [] , а не null.
func TestListFiles_Empty(t *testing.T) {
	h := NewFilesHandler(newFakeFileRepo(), &fakePersistor{}, discardLogger())

	req := authedRequest(http.MethodGet, "/files", "")
	rec := httptest.NewRecorder()
	h.ListFiles(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус: ожидалось 200, получено %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("ожидался пустой массив [], получено %s", got)
	}
}

// TestNormalizeParentID проверяет нормализацию parentId из тела запроса.
func TestNormalizeParentID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: model.RootParentID},
		{name: "число 0", in: float64(0), want: model.RootParentID},
		{name: "строка 0", in: "0", want: model.RootParentID},
		{name: "пустая строка", in: "", want: model.RootParentID},
		{name: "hex id", in: "65f000000000000000000a01", want: "65f000000000000000000a01"},
		{name: "неожиданный тип", in: true, want: model.RootParentID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeParentID(tt.in); got != tt.want {
				t.Errorf("normalizeParentID(%v): ожидалось %q, получено %q", tt.in, tt.want, got)
			}
		})
	}
}
