package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dev-indra/toolcache/internal/providertest"
	pr "github.com/dev-indra/toolcache/provider"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	p, err := New(Config{Client: client, CloseClient: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return mr, p
}

func TestConformance(t *testing.T) {
	mr, p := newTestRedis(t)
	providertest.Run(t, p, providertest.Options{
		TTL:         60 * time.Second,
		TTLWait:     61 * time.Second,
		AdvanceTime: mr.FastForward,
		// miniredis implements only a sliver of INFO; the parser has its
		// own tests against real server output.
		SkipInfo: true,
	})
}

func TestNilClientRejected(t *testing.T) {
	if _, err := New(Config{}); err != ErrNilClient {
		t.Fatalf("expected ErrNilClient, got %v", err)
	}
}

func TestOpenValidatesURL(t *testing.T) {
	if _, err := Open("://not-a-url"); err == nil {
		t.Fatalf("expected error on malformed URL")
	}
}

func TestOpenConnectsLazily(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	p, err := Open("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	ctx := context.Background()
	if ok, err := p.Set(ctx, "k", []byte("v"), time.Minute); err != nil || !ok {
		t.Fatalf("Set through opened client: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get through opened client: got=%q ok=%v err=%v", got, ok, err)
	}
}

// Construction must succeed even when the server is unreachable; errors
// surface per call so the store above can degrade instead of failing boot.
func TestOpenUnreachableServerFailsPerCall(t *testing.T) {
	p, err := Open("redis://127.0.0.1:1")
	if err != nil {
		t.Fatalf("Open should not dial: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	ctx := context.Background()
	if _, _, err := p.Get(ctx, "k"); err == nil {
		t.Fatalf("expected transport error from Get")
	}
	if err := p.Ping(ctx); err == nil {
		t.Fatalf("expected transport error from Ping")
	}
}

func TestDownedServerSurfacesErrors(t *testing.T) {
	mr, p := newTestRedis(t)
	ctx := context.Background()

	if ok, err := p.Set(ctx, "k", []byte("v"), time.Minute); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}

	mr.Close()

	if _, _, err := p.Get(ctx, "k"); err == nil {
		t.Fatalf("expected error from Get after server stop")
	}
	if ok, err := p.Set(ctx, "k", []byte("v"), time.Minute); err == nil || ok {
		t.Fatalf("expected error from Set after server stop, got ok=%v", ok)
	}
	if got, err := p.TTL(ctx, "k"); err == nil || got != pr.TTLMissing {
		t.Fatalf("expected (TTLMissing, error) from TTL, got (%d, %v)", got, err)
	}
	if err := p.Ping(ctx); err == nil {
		t.Fatalf("expected error from Ping after server stop")
	}
	if _, err := p.Info(ctx); err == nil {
		t.Fatalf("expected error from Info after server stop")
	}
}

// go-redis returns the RESP sentinels as raw negative durations; they must
// map onto the provider sentinels, not divide down to zero.
func TestTTLSentinelMapping(t *testing.T) {
	mr, p := newTestRedis(t)
	ctx := context.Background()

	if got, err := p.TTL(ctx, "ttl:absent"); err != nil || got != pr.TTLMissing {
		t.Fatalf("absent: got (%d, %v), want (%d, nil)", got, err, pr.TTLMissing)
	}

	mr.Set("ttl:forever", "v") // no expiry
	if got, err := p.TTL(ctx, "ttl:forever"); err != nil || got != pr.TTLNoExpiry {
		t.Fatalf("no expiry: got (%d, %v), want (%d, nil)", got, err, pr.TTLNoExpiry)
	}

	if ok, err := p.Set(ctx, "ttl:bounded", []byte("v"), 90*time.Second); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	if got, err := p.TTL(ctx, "ttl:bounded"); err != nil || got <= 0 || got > 90 {
		t.Fatalf("bounded: got (%d, %v), want 0 < ttl <= 90", got, err)
	}
}

func TestCloseRespectsClientOwnership(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	p, err := New(Config{Client: client, CloseClient: false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// shared client stays usable after provider close
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("client closed despite CloseClient=false: %v", err)
	}

	owned, err := New(Config{Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), CloseClient: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := owned.Close(context.Background()); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := owned.Close(context.Background()); err != nil {
		t.Fatalf("second Close should be a no-op: %v", err)
	}
}
