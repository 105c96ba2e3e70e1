package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := New(50*time.Millisecond, time.Second)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss for unset key, got ok=%v err=%v", ok, err)
	}

	if err := c.SetTTL(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("SetTTL: %v", err)
	}
	v, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(v) != "v" {
		t.Fatalf("got %q, want %q", v, "v")
	}

	if err := c.Overwrite(ctx, "k", []byte("v2"), time.Minute); err != nil {
		t.Fatalf("Overwrite: %v", err)
	}
	v, _, _ = c.Get(ctx, "k")
	if string(v) != "v2" {
		t.Fatalf("got %q after overwrite, want %q", v, "v2")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryCache_DefaultExpiration(t *testing.T) {
	c := New(20*time.Millisecond, time.Second)
	ctx := context.Background()

	if err := c.SetTTL(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("SetTTL: %v", err)
	}
	time.Sleep(40 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("expected key to have expired under the default TTL")
	}
}
