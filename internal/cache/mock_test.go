package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if _, ok, err := c.GetDocument(ctx, "missing"); err != nil || ok {
		t.Errorf("cold read = ok:%v err:%v, want miss without error", ok, err)
	}

	if err := c.SetDocument(ctx, "doc", []byte(`{"articles":[]}`), time.Minute); err != nil {
		t.Fatalf("SetDocument failed: %v", err)
	}

	data, ok, err := c.GetDocument(ctx, "doc")
	if err != nil || !ok {
		t.Fatalf("warm read = ok:%v err:%v, want hit", ok, err)
	}
	if string(data) != `{"articles":[]}` {
		t.Errorf("cached data = %q", data)
	}

	if err := c.Invalidate(ctx, "doc"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, ok, _ := c.GetDocument(ctx, "doc"); ok {
		t.Error("entry survived Invalidate")
	}
}

func TestMemoryCacheHonorsTTL(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.SetDocument(ctx, "doc", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatalf("SetDocument failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok, _ := c.GetDocument(ctx, "doc"); ok {
		t.Error("entry survived its TTL")
	}
}
