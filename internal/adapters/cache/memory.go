package cache

import (
	"context"
	"time"

	"github.com/athebyme/vendor-product-service/internal/utils"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache кэш в памяти процесса, используется когда Redis отключен
type MemoryCache struct {
	cache *gocache.Cache
}

var _ interfaces.CachePort = (*MemoryCache)(nil)

func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, found := m.cache.Get(key)
	if !found {
		return nil, utils.ErrCacheMiss
	}
	return value.([]byte), nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if expiration == 0 {
		expiration = gocache.DefaultExpiration
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.cache.Set(key, stored, expiration)
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *MemoryCache) Close() error {
	m.cache.Flush()
	return nil
}
