package cache

import (
	"context"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisCache backs the cache port with Redis. Each tag keeps a set of member
// keys under tagKey(tag); invalidation deletes the members and the set.
type RedisCache struct {
	rdb *goredis.Client
}

// Init selects the Redis cache when addr is set and reachable, otherwise
// keeps the in-process cache.
func Init(addr string) {
	if addr == "" {
		log.Println("[CACHE] REDIS_ADDR not set, using in-memory cache")
		return
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[CACHE] Redis ping failed (%v), using in-memory cache", err)
		_ = rdb.Close()
		return
	}

	Client = &RedisCache{rdb: rdb}
	log.Printf("[CACHE] Connected to Redis at %s", addr)
}

func tagKey(tag string) string {
	return "cache-tag:" + tag
}

func (r *RedisCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, tags []string, compute func(context.Context) ([]byte, error)) ([]byte, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		return data, nil
	}
	if err != goredis.Nil {
		// Degrade to computing directly when Redis is unhealthy.
		log.Printf("[CACHE] Redis get %s failed: %v", key, err)
		return compute(ctx)
	}

	data, err = compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("[CACHE] Redis set %s failed: %v", key, err)
		return data, nil
	}
	for _, tag := range tags {
		if err := r.rdb.SAdd(ctx, tagKey(tag), key).Err(); err != nil {
			log.Printf("[CACHE] Redis tag %s failed: %v", tag, err)
		}
	}

	return data, nil
}

func (r *RedisCache) InvalidateTag(ctx context.Context, tag string) error {
	keys, err := r.rdb.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return r.rdb.Del(ctx, tagKey(tag)).Err()
}
