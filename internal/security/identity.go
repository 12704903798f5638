package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/athebyme/vendor-product-service/internal/utils"
	"github.com/athebyme/vendor-product-service/pkg/auth"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
)

const identityKeyPrefix = "identity:"

// UserLookup возвращает идентификатор пользователя каталога по токену
type UserLookup interface {
	Me(ctx context.Context, token string) (string, error)
}

// CatalogIdentityResolver определяет продавца запросом me к каталогу.
// Идентификатор продавца совпадает с идентификатором пользователя каталога.
type CatalogIdentityResolver struct {
	users  UserLookup
	cache  interfaces.CachePort
	ttl    time.Duration
	logger interfaces.LoggerPort
	now    func() time.Time
}

var _ interfaces.IdentityResolver = (*CatalogIdentityResolver)(nil)

// NewCatalogIdentityResolver создает резолвер. cache может быть nil, тогда кэширование отключено
func NewCatalogIdentityResolver(users UserLookup, cache interfaces.CachePort, ttl time.Duration, logger interfaces.LoggerPort) *CatalogIdentityResolver {
	return &CatalogIdentityResolver{
		users:  users,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (r *CatalogIdentityResolver) ResolveVendor(ctx context.Context, credential string) (string, error) {
	token := auth.NormalizeCredential(credential)
	if token == "" {
		return "", nil
	}

	now := r.now()
	if err := CheckExpiry(token, now); err != nil {
		r.logger.DebugWithContext(ctx, "Токен просрочен, запрос к каталогу не выполняется")
		return "", nil
	}

	key := cacheKey(token)
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, key)
		switch {
		case err == nil:
			return string(cached), nil
		case !errors.Is(err, utils.ErrCacheMiss):
			r.logger.WarnWithContext(ctx, "Не удалось прочитать идентификатор из кэша",
				interfaces.LogField{Key: "error", Value: err.Error()})
		}
	}

	vendorID, err := r.users.Me(ctx, token)
	if err != nil {
		return "", err
	}
	if vendorID == "" {
		return "", nil
	}

	r.remember(ctx, key, vendorID, token, now)
	return vendorID, nil
}

func (r *CatalogIdentityResolver) remember(ctx context.Context, key, vendorID, token string, now time.Time) {
	if r.cache == nil || r.ttl <= 0 {
		return
	}

	ttl := r.ttl
	if expiry, ok := TokenExpiry(token); ok {
		if remaining := expiry.Sub(now); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl <= 0 {
		return
	}

	if err := r.cache.Set(ctx, key, []byte(vendorID), ttl); err != nil {
		r.logger.WarnWithContext(ctx, "Не удалось сохранить идентификатор в кэш",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
}

// cacheKey хэширует токен, чтобы он не попадал в кэш в открытом виде
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return identityKeyPrefix + hex.EncodeToString(sum[:])
}
