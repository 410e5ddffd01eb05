// Пакет service — сервисный слой Files Manager.
// StatsService — счётчики /stats с LRU-кэшем и TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики кэша статистики.
var (
	statsCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_stats_cache_hits_total",
		Help: "Общее количество попаданий в кэш счётчиков /stats.",
	})
	statsCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_stats_cache_misses_total",
		Help: "Общее количество промахов кэша счётчиков /stats.",
	})
)

// Ключи кэша счётчиков.
const (
	cacheKeyUsers = "users"
	cacheKeyFiles = "files"
)

// documentCounter — источник счётчика коллекции документного хранилища.
type documentCounter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsService — счётчики пользователей и файлов с коротким TTL-кэшем.
// Каждый экземпляр сервиса имеет собственный in-memory кэш:
// /stats не обязан быть строго консистентным, но не должен
// превращать каждый запрос в два COUNT по базе.
type StatsService struct {
	users documentCounter
	files documentCounter
	cache *expirable.LRU[string, int64]
}

// NewStatsService создаёт сервис статистики.
// maxSize — максимальное количество записей в кэше,
// ttl — время жизни записи после добавления.
func NewStatsService(users, files documentCounter, maxSize int, ttl time.Duration) *StatsService {
	cache := expirable.NewLRU[string, int64](maxSize, nil, ttl)
	return &StatsService{
		users: users,
		files: files,
		cache: cache,
	}
}

// Counts возвращает количество пользователей и файлов.
func (s *StatsService) Counts(ctx context.Context) (users, files int64, err error) {
	users, err = s.count(ctx, cacheKeyUsers, s.users)
	if err != nil {
		return 0, 0, err
	}

	files, err = s.count(ctx, cacheKeyFiles, s.files)
	if err != nil {
		return 0, 0, err
	}

	return users, files, nil
}

// count возвращает счётчик из кэша или запрашивает его у источника.
func (s *StatsService) count(ctx context.Context, key string, src documentCounter) (int64, error) {
	if val, ok := s.cache.Get(key); ok {
		statsCacheHitsTotal.Inc()
		return val, nil
	}
	statsCacheMissesTotal.Inc()

	val, err := src.Count(ctx)
	if err != nil {
		return 0, err
	}

	s.cache.Add(key, val)
	return val, nil
}
