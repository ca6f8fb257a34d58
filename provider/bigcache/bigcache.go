// Package bigcache adapts allegro/bigcache to the provider contract.
// bigcache only has a global LifeWindow, so per-entry TTLs ride in a
// deadline frame and reads past the deadline are misses. Get strips the
// frame, keeping the provider byte-transparent.
package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"
	"github.com/dustin/go-humanize"

	"github.com/dev-indra/toolcache/internal/wire"
	pr "github.com/dev-indra/toolcache/provider"
)

type Provider struct {
	c     *bc.BigCache
	start time.Time
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	// LifeWindow is bigcache's physical upper bound on entry lifetime and
	// should exceed the largest TTL written through this provider.
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Provider, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, start: time.Now()}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	deadline, payload, derr := wire.DecodeFrame(b)
	if derr != nil || expired(deadline) {
		_ = p.c.Delete(key)
		return nil, false, nil
	}
	return payload, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}
	if err := p.c.Set(key, wire.EncodeFrame(deadline, value)); err != nil {
		return false, err
	}
	return true, nil
}

// Del reports true only when a live entry was removed; physically present
// but expired or corrupt entries are cleaned up and reported absent, the
// same answer a backend with native expiry would give.
func (p *Provider) Del(_ context.Context, key string) (bool, error) {
	b, err := p.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	live := false
	if deadline, _, derr := wire.DecodeFrame(b); derr == nil {
		live = !expired(deadline)
	}
	if err := p.c.Delete(key); err != nil && err != bc.ErrEntryNotFound {
		return false, err
	}
	return live, nil
}

func (p *Provider) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := p.Get(ctx, key)
	return ok, err
}

func (p *Provider) TTL(_ context.Context, key string) (int64, error) {
	b, err := p.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return pr.TTLMissing, nil
	}
	if err != nil {
		return pr.TTLMissing, err
	}
	deadline, _, derr := wire.DecodeFrame(b)
	if derr != nil {
		_ = p.c.Delete(key)
		return pr.TTLMissing, nil
	}
	if deadline.IsZero() {
		return pr.TTLNoExpiry, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		_ = p.c.Delete(key)
		return pr.TTLMissing, nil
	}
	return pr.CeilSeconds(remaining), nil
}

// Ping always succeeds; an in-process store is reachable by definition.
func (p *Provider) Ping(context.Context) error { return nil }

func (p *Provider) Info(context.Context) (pr.Info, error) {
	stats := p.c.Stats()
	return pr.Info{
		Backend: "bigcache",
		// Capacity is the allocated window, which bigcache holds regardless
		// of entry count.
		UsedMemory:    humanize.Bytes(uint64(p.c.Capacity())),
		UptimeSeconds: int64(time.Since(p.start).Seconds()),
		Keys:          int64(p.c.Len()),
		Hits:          stats.Hits,
		Misses:        stats.Misses,
	}, nil
}

func (p *Provider) Flush(context.Context) error {
	return p.c.Reset()
}

func (p *Provider) Close(context.Context) error {
	return p.c.Close()
}

func expired(deadline time.Time) bool {
	return !deadline.IsZero() && !time.Now().Before(deadline)
}
