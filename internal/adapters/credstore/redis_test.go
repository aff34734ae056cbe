package credstore_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"salon_reviews/internal/adapters/credstore"
	"salon_reviews/internal/domain"
)

func TestRedisStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	store := credstore.NewRedis(mr.Addr(), "", 0)
	ctx := context.Background()

	const key = "salon_reviews:credentials"
	in := domain.Credentials{
		BusinessID: "5f8b6c2e-4f3d-4b9a-8c1e-2d7f9a0b1c2d",
		Email:      "amy@salon.com",
		Password:   "secret",
		Platform:   domain.PlatformPhorest,
		RememberMe: true,
	}

	var out domain.Credentials
	if ok, err := store.Get(ctx, key, &out); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, key, in); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ok, err := store.Get(ctx, key, &out); err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	// credentials persist until explicitly deleted
	if mr.TTL(key) != 0 {
		t.Fatalf("unexpected expiry: %v", mr.TTL(key))
	}

	if err := store.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := store.Get(ctx, key, &out); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := credstore.NewMemory()
	ctx := context.Background()

	in := domain.Credentials{Email: "amy@salon.com", Platform: domain.PlatformMindbody}
	if err := store.Set(ctx, "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out domain.Credentials
	if ok, err := store.Get(ctx, "k", &out); err != nil || !ok || out != in {
		t.Fatalf("get: ok=%v err=%v out=%+v", ok, err, out)
	}
	if err := store.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := store.Get(ctx, "k", &out); ok {
		t.Fatalf("expected miss after delete")
	}
}
