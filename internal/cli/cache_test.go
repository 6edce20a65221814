package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/welcomescreen/pkg/cache"
	"github.com/matzehuels/welcomescreen/pkg/config"
)

func TestNewCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx := context.Background()

	cfg := config.Default()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "bg")

	got, err := c.newCache(ctx, cfg, false)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	fc, ok := got.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache = %T, want *cache.FileCache", got)
	}
	if fc.Dir() != cfg.Cache.Dir {
		t.Errorf("Dir = %q, want %q", fc.Dir(), cfg.Cache.Dir)
	}

	if _, ok := must(c.newCache(ctx, cfg, true)).(*cache.NullCache); !ok {
		t.Error("--no-cache should return a NullCache")
	}

	cfg.Cache.Disabled = true
	if _, ok := must(c.newCache(ctx, cfg, false)).(*cache.NullCache); !ok {
		t.Error("cache.disabled should return a NullCache")
	}
}

func TestNewCacheRedisUnreachable(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.RedisAddr = "127.0.0.1:1"

	if _, err := New(io.Discard, LogInfo).newCache(context.Background(), cfg, false); err == nil {
		t.Error("unreachable redis should fail")
	}
}

func must(c cache.Cache, err error) cache.Cache {
	if err != nil {
		panic(err)
	}
	return c
}
