package services

import (
	"context"
	"time"

	"lifeline/pkg/cache"
	"lifeline/pkg/logger"
)

// CacheService is the read-through cache used by the repositories. It is an
// optimization only: the store's conditional updates remain the sole mutation
// gate, and every transition invalidates the cached copy.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	redis  *cache.RedisCache
	logger *logger.Logger
}

func NewCacheService(redis *cache.RedisCache, logger *logger.Logger) CacheService {
	return &redisCacheService{
		redis:  redis,
		logger: logger,
	}
}

func (s *redisCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.redis.Get(ctx, key, dest)
}

func (s *redisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := s.redis.Set(ctx, key, value, expiration); err != nil {
		// A failed cache write is not worth failing the operation over.
		s.logger.WithError(err).WithField("key", key).Warn("cache set failed")
		return err
	}
	return nil
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) error {
	if err := s.redis.Delete(ctx, keys...); err != nil {
		s.logger.WithError(err).Warn("cache delete failed")
		return err
	}
	return nil
}

func (s *redisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redis.Exists(ctx, key)
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx)
}
