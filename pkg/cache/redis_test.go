package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("S7DB_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("S7DB_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisOptions{
		Addr:   addr,
		Prefix: "s7db-test:" + uuid.NewString() + ":",
	})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	t.Cleanup(func() {
		_, _ = c.Clear(context.Background())
		c.Close()
	})
	return c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c := newTestRedis(t)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get(k) = %q, %v, %v; want v hit", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	c := newTestRedis(t)

	for _, k := range []string{"a", "b"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := NewRedisCache(ctx, RedisOptions{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("NewRedisCache should fail for an unreachable server")
	}
}
