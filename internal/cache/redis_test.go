package cache

import (
	"VendorChat/internal/config"
	"context"
	"os"
	"testing"
	"time"
)

func TestDisabled(t *testing.T) {
	conf := &config.Config{}
	r, err := NewRedis(conf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Error("expected nil client when disabled")
	}
}

func TestRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	conf := &config.Config{}
	conf.Redis.Enabled = true
	conf.Redis.Addr = addr

	r, err := NewRedis(conf)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer r.Close()

	ctx := context.Background()
	key := "vendorchat:test:" + time.Now().Format(time.RFC3339Nano)

	miss, err := r.Get(ctx, key)
	if err != nil || miss != nil {
		t.Fatalf("expected miss, got %q, %v", miss, err)
	}
	if err = r.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := r.Get(ctx, key)
	if err != nil || string(got) != "value" {
		t.Fatalf("expected value, got %q, %v", got, err)
	}
}
