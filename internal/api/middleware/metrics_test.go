package middleware

import "testing"

// TestNormalizePath проверяет нормализацию id-сегментов пути.
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/status", "/status"},
		{"/stats", "/stats"},
		{"/files", "/files"},
		{"/files/507f1f77bcf86cd799439011", "/files/{id}"},
		{"/files/507F1F77BCF86CD799439011", "/files/{id}"},
		{"/files/not-an-id", "/files/not-an-id"},
		{"/files/507f1f77bcf86cd79943901", "/files/507f1f77bcf86cd79943901"}, // 23 символа
		{"/metrics", "/metrics"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q): ожидалось %q, получено %q", tt.path, tt.want, got)
		}
	}
}
