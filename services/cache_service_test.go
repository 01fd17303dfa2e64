package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheService(client, time.Minute), mr
}

func TestCacheServiceRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	cache.SetJSON(ctx, "summary:test", payload{Name: "P@80", Value: 17.5})

	var got payload
	hit, err := cache.GetJSON(ctx, "summary:test", &got)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Name != "P@80" || got.Value != 17.5 {
		t.Errorf("got %+v", got)
	}
}

func TestCacheServiceMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	var dest map[string]string
	hit, err := cache.GetJSON(context.Background(), "summary:absent", &dest)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("expected miss")
	}
}

func TestCacheServiceExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.SetJSON(ctx, "summary:ttl", "v")
	mr.FastForward(2 * time.Minute)

	var dest string
	if hit, _ := cache.GetJSON(ctx, "summary:ttl", &dest); hit {
		t.Error("entry should have expired")
	}
}

func TestCacheServiceCorruptEntryIsMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Set("summary:bad", "{not json")

	var dest map[string]string
	hit, err := cache.GetJSON(context.Background(), "summary:bad", &dest)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("corrupt entry should read as a miss")
	}
}

func TestCacheServiceInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.SetJSON(ctx, "summary:nba:a", "v")
	cache.SetJSON(ctx, "summary:nba:b", "v")
	cache.SetJSON(ctx, "other:key", "v")

	cache.Invalidate(ctx, "summary:*")

	var dest string
	if hit, _ := cache.GetJSON(ctx, "summary:nba:a", &dest); hit {
		t.Error("summary entry survived invalidation")
	}
	if hit, _ := cache.GetJSON(ctx, "other:key", &dest); !hit {
		t.Error("unrelated entry was invalidated")
	}
}

// A nil cache is a no-op, never a panic.
func TestNilCacheService(t *testing.T) {
	var cache *CacheService
	ctx := context.Background()

	cache.SetJSON(ctx, "k", "v")
	cache.Invalidate(ctx, "*")

	var dest string
	hit, err := cache.GetJSON(ctx, "k", &dest)
	if err != nil || hit {
		t.Errorf("nil cache GetJSON = (%v, %v), want miss with no error", hit, err)
	}
}
