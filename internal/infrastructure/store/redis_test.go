package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return NewRedisStore(rdb)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()

	cred, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get on empty store: %v", err)
	}
	if cred != "" {
		t.Fatalf("expected empty credential, got %q", cred)
	}

	if err := s.Set(ctx, "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	cred, err = s.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cred != "abc" {
		t.Fatalf("credential = %q, want %q", cred, "abc")
	}

	if err := s.Remove(ctx); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	cred, _ = s.Get(ctx)
	if cred != "" {
		t.Fatalf("credential survived Remove")
	}
}

func TestRedisStore_RemoveIdempotent(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()

	if err := s.Remove(ctx); err != nil {
		t.Fatalf("Remove on empty store: %v", err)
	}
	if err := s.Remove(ctx); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
}

func TestRedisStore_OverwriteReplacesCredential(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "first"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	cred, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cred != "second" {
		t.Fatalf("credential = %q, want %q", cred, "second")
	}
}
