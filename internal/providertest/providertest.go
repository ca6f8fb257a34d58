// Package providertest holds a conformance suite that every provider
// implementation's tests run against the shared contract: byte
// transparency, miss semantics, TTL sentinels, expiry, flush, and health.
package providertest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dev-indra/toolcache/provider"
)

// Options tunes the suite for one implementation.
type Options struct {
	// Sync flushes asynchronous writes (ristretto buffers). May be nil.
	Sync func()
	// TTL is the entry lifetime used by expiry subtests.
	TTL time.Duration
	// TTLWait is how far past TTL the suite moves before asserting expiry.
	TTLWait time.Duration
	// AdvanceTime moves virtual time forward (miniredis FastForward).
	// When nil the suite sleeps TTLWait of wall time instead.
	AdvanceTime func(d time.Duration)
	// SkipInfo skips Info assertions for backends without diagnostics.
	SkipInfo bool
}

// Run exercises p against the provider contract.
func Run(t *testing.T, p provider.Provider, opts Options) {
	t.Helper()
	ctx := context.Background()

	sync := opts.Sync
	if sync == nil {
		sync = func() {}
	}
	write := func(t *testing.T, key string, val []byte, ttl time.Duration) {
		t.Helper()
		ok, err := p.Set(ctx, key, val, ttl)
		if err != nil || !ok {
			t.Fatalf("Set(%q): ok=%v err=%v", key, ok, err)
		}
		sync()
	}
	pass := func(d time.Duration) {
		if opts.AdvanceTime != nil {
			opts.AdvanceTime(d)
			return
		}
		time.Sleep(d)
	}

	t.Run("round_trip_is_byte_transparent", func(t *testing.T) {
		payloads := [][]byte{
			[]byte(`{"value":{"price":1.5},"timestamp":"2026-08-25T10:00:00Z","ttl":60}`),
			{0x00, 0xFF, 0x10, 0x42},
			[]byte("plain text"),
			{},
		}
		for i, want := range payloads {
			key := "conformance:rt:" + string(rune('a'+i))
			write(t, key, want, opts.TTL)
			got, ok, err := p.Get(ctx, key)
			if err != nil || !ok {
				t.Fatalf("Get(%q): ok=%v err=%v", key, ok, err)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("Get(%q): got %x want %x", key, got, want)
			}
		}
	})

	t.Run("get_missing_is_a_miss_not_an_error", func(t *testing.T) {
		v, ok, err := p.Get(ctx, "conformance:never-written")
		if err != nil || ok || v != nil {
			t.Fatalf("got (%x, %v, %v), want (nil, false, nil)", v, ok, err)
		}
	})

	t.Run("set_overwrites", func(t *testing.T) {
		key := "conformance:overwrite"
		write(t, key, []byte("old"), opts.TTL)
		write(t, key, []byte("new"), opts.TTL)
		got, ok, err := p.Get(ctx, key)
		if err != nil || !ok || string(got) != "new" {
			t.Fatalf("got (%q, %v, %v), want new", got, ok, err)
		}
	})

	t.Run("del_reports_presence", func(t *testing.T) {
		key := "conformance:del"
		write(t, key, []byte("v"), opts.TTL)
		if removed, err := p.Del(ctx, key); err != nil || !removed {
			t.Fatalf("first Del: removed=%v err=%v", removed, err)
		}
		if removed, err := p.Del(ctx, key); err != nil || removed {
			t.Fatalf("second Del: removed=%v err=%v", removed, err)
		}
		if _, ok, _ := p.Get(ctx, key); ok {
			t.Fatalf("key survived Del")
		}
	})

	t.Run("exists_tracks_lifecycle", func(t *testing.T) {
		key := "conformance:exists"
		if ok, err := p.Exists(ctx, key); err != nil || ok {
			t.Fatalf("before write: ok=%v err=%v", ok, err)
		}
		write(t, key, []byte("v"), opts.TTL)
		if ok, err := p.Exists(ctx, key); err != nil || !ok {
			t.Fatalf("after write: ok=%v err=%v", ok, err)
		}
		if _, err := p.Del(ctx, key); err != nil {
			t.Fatalf("Del: %v", err)
		}
		if ok, err := p.Exists(ctx, key); err != nil || ok {
			t.Fatalf("after delete: ok=%v err=%v", ok, err)
		}
	})

	t.Run("ttl_sentinels", func(t *testing.T) {
		if got, err := p.TTL(ctx, "conformance:ttl-missing"); err != nil || got != provider.TTLMissing {
			t.Fatalf("missing key: got %d err %v, want %d", got, err, provider.TTLMissing)
		}

		forever := "conformance:ttl-forever"
		write(t, forever, []byte("v"), 0)
		if got, err := p.TTL(ctx, forever); err != nil || got != provider.TTLNoExpiry {
			t.Fatalf("no-expiry key: got %d err %v, want %d", got, err, provider.TTLNoExpiry)
		}

		bounded := "conformance:ttl-bounded"
		write(t, bounded, []byte("v"), opts.TTL)
		got, err := p.TTL(ctx, bounded)
		if err != nil {
			t.Fatalf("TTL: %v", err)
		}
		max := provider.CeilSeconds(opts.TTL)
		if got <= 0 || got > max {
			t.Fatalf("fresh entry TTL out of bounds: got %d, want 0 < ttl <= %d", got, max)
		}
	})

	t.Run("entries_expire", func(t *testing.T) {
		key := "conformance:expiry"
		write(t, key, []byte("v"), opts.TTL)
		if _, ok, err := p.Get(ctx, key); err != nil || !ok {
			t.Fatalf("before expiry: ok=%v err=%v", ok, err)
		}

		pass(opts.TTLWait)

		if _, ok, err := p.Get(ctx, key); err != nil || ok {
			t.Fatalf("after expiry Get: ok=%v err=%v", ok, err)
		}
		if ok, err := p.Exists(ctx, key); err != nil || ok {
			t.Fatalf("after expiry Exists: ok=%v err=%v", ok, err)
		}
		if got, err := p.TTL(ctx, key); err != nil || got != provider.TTLMissing {
			t.Fatalf("after expiry TTL: got %d err %v", got, err)
		}
	})

	t.Run("flush_clears_everything", func(t *testing.T) {
		keys := []string{"conformance:flush:a", "conformance:flush:b", "conformance:flush:c"}
		for _, key := range keys {
			write(t, key, []byte("v"), opts.TTL)
		}
		if err := p.Flush(ctx); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		sync()
		for _, key := range keys {
			if _, ok, _ := p.Get(ctx, key); ok {
				t.Fatalf("key %q survived Flush", key)
			}
		}
	})

	t.Run("ping_succeeds_while_open", func(t *testing.T) {
		if err := p.Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})

	if !opts.SkipInfo {
		t.Run("info_identifies_backend", func(t *testing.T) {
			info, err := p.Info(ctx)
			if err != nil {
				t.Fatalf("Info: %v", err)
			}
			if info.Backend == "" {
				t.Fatalf("Info.Backend is empty")
			}
		})
	}
}
