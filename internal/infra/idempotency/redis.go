package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Idempotency-Keyで同じ注文確定の二重送信を弾く
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisClient(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

// 初めてのキーならtrue。TTLの間は同じキーでfalseになる
func (g *RedisGuard) Acquire(ctx context.Context, userID int64, key string) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, redisKey(userID, key), "processing", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// 失敗した注文確定はキーを外して再送できるようにする
func (g *RedisGuard) Release(ctx context.Context, userID int64, key string) error {
	if err := g.rdb.Del(ctx, redisKey(userID, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func redisKey(userID int64, key string) string {
	return fmt.Sprintf("idempotent-key:%d:%s", userID, key)
}
