package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/catalog-scraper/pkg/utils"
)

const pageCachePrefix = "catalog:page:"

// PageCacheImpl provides a concrete implementation for the PageCache interface using Redis.
type PageCacheImpl struct {
	client *redis.Client
}

// NewPageCache creates a new instance of PageCacheImpl.
func NewPageCache(client *redis.Client) *PageCacheImpl {
	return &PageCacheImpl{client: client}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *PageCacheImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", pageCachePrefix, utils.HashURL(url))
}

// Get returns the cached page body for url.
func (r *PageCacheImpl) Get(ctx context.Context, url string) ([]byte, bool, error) {
	body, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Set stores the page body with an expiry.
func (r *PageCacheImpl) Set(ctx context.Context, url string, body []byte, expiry time.Duration) error {
	return r.client.SetEx(ctx, r.generateKey(url), body, expiry).Err()
}
