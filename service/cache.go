package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeu5/pricing-rl/types"
)

// Cache short-circuits repeated recommendation requests on the serving
// path. Lookups and writes are best effort; a cache outage degrades to
// recomputing.
type Cache interface {
	GetRecommendation(ctx context.Context, productID int64, c types.Constraints) (types.Recommendation, bool)
	SetRecommendation(ctx context.Context, productID int64, c types.Constraints, rec types.Recommendation)
}

// RedisCache caches serialized recommendations with a short TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Cache = &RedisCache{}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:        addr,
			DialTimeout: 100 * time.Millisecond,
		}),
		ttl: ttl,
	}
}

func (r *RedisCache) GetRecommendation(ctx context.Context, productID int64, c types.Constraints) (types.Recommendation, bool) {
	val, err := r.client.Get(ctx, cacheKey(productID, c)).Result()
	if err != nil {
		return types.Recommendation{}, false
	}
	var rec types.Recommendation
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return types.Recommendation{}, false
	}
	return rec, true
}

func (r *RedisCache) SetRecommendation(ctx context.Context, productID int64, c types.Constraints, rec types.Recommendation) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	r.client.Set(ctx, cacheKey(productID, c), data, r.ttl)
}

func cacheKey(productID int64, c types.Constraints) string {
	return fmt.Sprintf("rec:%d:%.4f:%.2f", productID, c.MinMargin, c.MaxPrice)
}
