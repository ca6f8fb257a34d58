package bigcache

import (
	"context"
	"testing"
	"time"

	"github.com/dev-indra/toolcache/internal/providertest"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{LifeWindow: time.Minute, CleanWindow: 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestConformance(t *testing.T) {
	p := newTestProvider(t)
	providertest.Run(t, p, providertest.Options{
		TTL:     200 * time.Millisecond,
		TTLWait: 400 * time.Millisecond,
	})
}

// Entries that bypass the deadline frame (foreign writes, partial
// corruption) are swept on read instead of surfacing as values.
func TestCorruptFrameSelfHeals(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	if err := p.c.Set("corrupt", []byte("no frame header here")); err != nil {
		t.Fatalf("raw set: %v", err)
	}
	if _, ok, err := p.Get(ctx, "corrupt"); ok || err != nil {
		t.Fatalf("corrupt entry surfaced: ok=%v err=%v", ok, err)
	}
	// physically gone after the healing read
	if _, err := p.c.Get("corrupt"); err == nil {
		t.Fatalf("corrupt entry not deleted")
	}
}

func TestDelOnExpiredEntryReportsAbsent(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	if ok, err := p.Set(ctx, "k", []byte("v"), 50*time.Millisecond); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	time.Sleep(120 * time.Millisecond)

	// the entry is physically present but logically expired
	if removed, err := p.Del(ctx, "k"); err != nil || removed {
		t.Fatalf("Del of expired entry: removed=%v err=%v", removed, err)
	}
}

func TestInfoCountsEntries(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if ok, err := p.Set(ctx, key, []byte("v"), time.Minute); err != nil || !ok {
			t.Fatalf("Set(%q): ok=%v err=%v", key, ok, err)
		}
	}
	info, err := p.Info(ctx)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Backend != "bigcache" {
		t.Fatalf("backend: %q", info.Backend)
	}
	if info.Keys != 3 {
		t.Fatalf("keys: got %d want 3", info.Keys)
	}
	if info.UsedMemory == "" {
		t.Fatalf("used memory not reported")
	}
}

func TestTTLNeverNegativeForLiveEntries(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	if ok, err := p.Set(ctx, "k", []byte("v"), 30*time.Second); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, err := p.TTL(ctx, "k")
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if got <= 0 || got > 30 {
		t.Fatalf("TTL out of bounds: %d", got)
	}
	if got != 30 {
		// rounding up keeps a fresh entry at its full TTL
		t.Fatalf("fresh entry should report full TTL, got %d", got)
	}
}
