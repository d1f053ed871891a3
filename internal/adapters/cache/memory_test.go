package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(func() time.Time { return now })
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, ok, err := c.Get(ctx, "k"); err != nil || !ok || got != "v" {
		t.Fatalf("expected hit v, got %q ok=%v err=%v", got, ok, err)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire after its ttl")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(nil)
	ctx := context.Background()
	_ = c.Set(ctx, "a", "1", 0)
	_ = c.Set(ctx, "b", "2", 0)

	if err := c.Delete(ctx, "a", "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be deleted")
	}
	if got, ok, _ := c.Get(ctx, "b"); !ok || got != "2" {
		t.Fatalf("expected b to survive, got %q ok=%v", got, ok)
	}
}
