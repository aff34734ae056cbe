// Package credstore implements the panel's "remember me" persistence as a
// small JSON key-value store.
package credstore

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"salon_reviews/internal/adapters/observability"
)

type Redis struct{ c *redis.Client }

func NewRedis(addr, pass string, db int) *Redis {
	return &Redis{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveStore("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveStore("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

// Set persists without expiry; credentials live until the user disables
// remember-me.
func (r *Redis) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveStore("redis", "set")
	return r.c.Set(ctx, key, b, 0).Err()
}

func (r *Redis) Del(ctx context.Context, key string) error {
	observability.ObserveStore("redis", "del")
	return r.c.Del(ctx, key).Err()
}
