package cache

import (
	"context"
	"time"
)

type prefixed struct {
	inner  Cache
	prefix string
}

// WithPrefix returns a view of c that prepends prefix to every key.
// Use it to keep renderer entries apart from other users of a shared Redis.
//
//	shared, _ := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: "cache:6379"})
//	c := cache.WithPrefix(shared, "welcomescreen:")
func WithPrefix(c Cache, prefix string) Cache {
	if prefix == "" {
		return c
	}
	return &prefixed{inner: c, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return p.inner.Set(ctx, p.prefix+key, data, ttl)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Close() error {
	return p.inner.Close()
}
