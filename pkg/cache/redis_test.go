package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestRedisCacheUnavailable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisOptions{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache() error = %v, want ErrUnavailable", err)
	}
}

// TestRedisCache runs against a live server named by WORDCLOUD_TEST_REDIS.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("WORDCLOUD_TEST_REDIS")
	if addr == "" {
		t.Skip("WORDCLOUD_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := "wordcloud:test:" + t.Name()
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get before Set: hit = %v, err = %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
}
