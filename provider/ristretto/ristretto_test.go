package ristretto

import (
	"context"
	"testing"
	"time"

	"github.com/dev-indra/toolcache/internal/providertest"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{
		NumCounters: 10_000,
		MaxCost:     1 << 20,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestConformance(t *testing.T) {
	p := newTestProvider(t)
	providertest.Run(t, p, providertest.Options{
		Sync:    p.Wait,
		TTL:     200 * time.Millisecond,
		TTLWait: 400 * time.Millisecond,
	})
}

func TestInvalidConfigRejected(t *testing.T) {
	cases := []Config{
		{},
		{NumCounters: 100, MaxCost: 0, BufferItems: 64},
		{NumCounters: 0, MaxCost: 1 << 20, BufferItems: 64},
		{NumCounters: 100, MaxCost: 1 << 20, BufferItems: 0},
	}
	for _, cfg := range cases {
		if _, err := New(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

// Entries whose stored shape is not []byte (foreign writes through the
// shared cache handle) are swept on read.
func TestUnexpectedEntryShapeSelfHeals(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	p.c.SetWithTTL("weird", 12345, 1, 0)
	p.c.Wait()

	if _, ok, err := p.Get(ctx, "weird"); ok || err != nil {
		t.Fatalf("non-byte entry surfaced: ok=%v err=%v", ok, err)
	}
	p.c.Wait()
	if _, ok := p.c.Get("weird"); ok {
		t.Fatalf("non-byte entry not deleted")
	}
}

func TestMetricsFlowIntoInfo(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	if ok, err := p.Set(ctx, "k", []byte("value"), 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	p.Wait()

	if _, ok, _ := p.Get(ctx, "k"); !ok {
		t.Fatalf("expected hit")
	}
	if _, ok, _ := p.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss")
	}

	info, err := p.Info(ctx)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Backend != "ristretto" {
		t.Fatalf("backend: %q", info.Backend)
	}
	if info.Hits < 1 {
		t.Fatalf("hits not counted: %+v", info)
	}
	if info.Misses < 1 {
		t.Fatalf("misses not counted: %+v", info)
	}
}
