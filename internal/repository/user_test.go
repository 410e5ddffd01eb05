package repository

import "testing"

// TestHashPassword проверяет SHA-1 hex — формат, совместимый
// с существующей базой files_manager.
func TestHashPassword(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"hello", "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
	}

	for _, tt := range tests {
		if got := hashPassword(tt.password); got != tt.want {
			t.Errorf("hashPassword(%q): ожидалось %s, получено %s", tt.password, tt.want, got)
		}
	}
}

// TestHashPassword_Deterministic проверяет стабильность хэша.
func TestHashPassword_Deterministic(t *testing.T) {
	if hashPassword("secret") != hashPassword("secret") {
		t.Error("хэш одного пароля должен совпадать")
	}
	if hashPassword("secret") == hashPassword("Secret") {
		t.Error("хэши разных паролей не должны совпадать")
	}
}
