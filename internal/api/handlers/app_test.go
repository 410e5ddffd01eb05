package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeChecker — liveness-проба с фиксированным ответом.
type fakeChecker struct{ alive bool }

func (f fakeChecker) IsAlive(_ context.Context) bool { return f.alive }

// fakeStats — источник счётчиков с фиксированным ответом.
type fakeStats struct {
	users, files int64
	err          error
}

func (f fakeStats) Counts(_ context.Context) (int64, int64, error) {
	return f.users, f.files, f.err
}

// TestGetStatus проверяет liveness-флаги обоих backing store.
func TestGetStatus(t *testing.T) {
	tests := []struct {
		name  string
		redis bool
		db    bool
	}{
		{name: "оба живы", redis: true, db: true},
		{name: "redis недоступен", redis: false, db: true},
		{name: "db недоступна", redis: true, db: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppHandler(fakeChecker{tt.redis}, fakeChecker{tt.db}, fakeStats{}, discardLogger())

			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			rec := httptest.NewRecorder()
			h.GetStatus(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("статус: ожидалось 200, получено %d", rec.Code)
			}

			var body map[string]bool
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("ошибка разбора тела: %v", err)
			}
			if body["redis"] != tt.redis || body["db"] != tt.db {
				t.Errorf("тело: ожидалось {redis:%v db:%v}, получено %v", tt.redis, tt.db, body)
			}
		})
	}
}

// TestGetStats проверяет счётчики пользователей и файлов.
func TestGetStats(t *testing.T) {
	h := NewAppHandler(fakeChecker{true}, fakeChecker{true}, fakeStats{users: 12, files: 1231}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	h.GetStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус: ожидалось 200, получено %d", rec.Code)
	}

	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("ошибка разбора тела: %v", err)
	}
	if body["users"] != 12 || body["files"] != 1231 {
		t.Errorf("тело: ожидалось {users:12 files:1231}, получено %v", body)
	}
}

// TestGetStats_Error проверяет 500 при недоступном хранилище.
func TestGetStats_Error(t *testing.T) {
	h := NewAppHandler(fakeChecker{true}, fakeChecker{true},
		fakeStats{err: errors.New("count failed")}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	h.GetStats(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("статус: ожидалось 500, получено %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "Internal Server Error" {
		t.Errorf("ошибка: получено %q", got)
	}
}
