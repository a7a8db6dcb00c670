package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "stayhub/internal/adapters/redis"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	type payload struct {
		ID   string `json:"id"`
		Star int    `json:"star"`
	}

	// miss
	var out payload
	ok, err := c.Get(ctx, "k", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}

	// set + hit
	if err := c.Set(ctx, "k", payload{ID: "r1", Star: 4}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err = c.Get(ctx, "k", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if out.ID != "r1" || out.Star != 4 {
		t.Fatalf("unexpected payload: %+v", out)
	}

	// ttl applied
	if mr.TTL("k") <= 0 {
		t.Fatal("expected TTL on key")
	}

	// del
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "k", &out)
	if ok {
		t.Fatal("expected miss after del")
	}
}
