// metrics.go — Prometheus HTTP метрики Files Manager.
// Регистрирует метрики: fm_http_requests_total, fm_http_request_duration_seconds.
// Бизнес-метрики (fm_file_operations_total, fm_sessions_total) экспортируются
// для обновления из handlers и сервисного слоя.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fm_http_requests_total",
			Help: "Общее количество HTTP-запросов к Files Manager",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fm_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к Files Manager в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Бизнес-метрики (экспортируются для обновления из handlers)
var (
	// FileOperationsTotal — количество операций над записями файлов.
	FileOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fm_file_operations_total",
			Help: "Общее количество операций над записями файлов",
		},
		[]string{"operation", "result"},
	)

	// SessionsTotal — количество операций с сессиями.
	SessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fm_sessions_total",
			Help: "Общее количество созданных и отозванных сессий",
		},
		[]string{"operation"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			// (заменяем id на {id} для предотвращения кардинальности)
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath заменяет id-сегмент /files/{id} на {id} для предотвращения
// взрывного роста кардинальности метрик.
// /files/65f1c2d3a4b5c6d7e8f90a1b → /files/{id}
func normalizePath(path string) string {
	const filesPrefix = "/files/"
	if strings.HasPrefix(path, filesPrefix) && len(path) > len(filesPrefix) {
		if isObjectIDSegment(path[len(filesPrefix):]) {
			return "/files/{id}"
		}
	}
	return path
}

// isObjectIDSegment проверяет, является ли сегмент hex ObjectID (24 hex-символа).
func isObjectIDSegment(segment string) bool {
	if len(segment) != 24 {
		return false
	}
	for _, c := range segment {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
