// Package ristretto adapts dgraph-io/ristretto to the provider contract.
// ristretto supports per-entry TTLs natively, so no deadline framing is
// needed. Writes are admission-controlled and asynchronous; tests should
// call Wait before reading their own writes.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"
	"github.com/dustin/go-humanize"

	pr "github.com/dev-indra/toolcache/provider"
)

type Provider struct {
	c     *rc.Cache
	start time.Time
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, start: time.Now()}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set stores value with cost = len(value). ok=false means the admission
// policy rejected the write under pressure, not a failure.
func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0 // ristretto treats 0 as "never expires" and negatives as a no-op
	}
	return p.c.SetWithTTL(key, value, int64(len(value)), ttl), nil
}

func (p *Provider) Del(_ context.Context, key string) (bool, error) {
	_, existed := p.c.Get(key)
	p.c.Del(key)
	return existed, nil
}

func (p *Provider) Exists(_ context.Context, key string) (bool, error) {
	_, ok := p.c.Get(key)
	return ok, nil
}

func (p *Provider) TTL(_ context.Context, key string) (int64, error) {
	d, ok := p.c.GetTTL(key)
	if !ok {
		return pr.TTLMissing, nil
	}
	if d == 0 {
		return pr.TTLNoExpiry, nil
	}
	return pr.CeilSeconds(d), nil
}

// Ping always succeeds; an in-process store is reachable by definition.
func (p *Provider) Ping(context.Context) error { return nil }

// Info reports ristretto metrics when enabled. Key and memory figures are
// derived from add/evict counters and stay approximate.
func (p *Provider) Info(context.Context) (pr.Info, error) {
	info := pr.Info{
		Backend:       "ristretto",
		UptimeSeconds: int64(time.Since(p.start).Seconds()),
	}
	if m := p.c.Metrics; m != nil {
		info.Hits = int64(m.Hits())
		info.Misses = int64(m.Misses())
		if added, evicted := m.KeysAdded(), m.KeysEvicted(); added >= evicted {
			info.Keys = int64(added - evicted)
		}
		if added, evicted := m.CostAdded(), m.CostEvicted(); added >= evicted {
			info.UsedMemory = humanize.Bytes(added - evicted)
		}
	}
	return info, nil
}

func (p *Provider) Flush(context.Context) error {
	p.c.Clear()
	return nil
}

func (p *Provider) Close(context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Wait blocks until buffered writes have been applied.
func (p *Provider) Wait() { p.c.Wait() }

// Metrics exposes the underlying ristretto metrics (nil unless enabled).
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
