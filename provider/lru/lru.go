// Package lru adapts hashicorp/golang-lru to the provider contract.
// The underlying cache is capacity-bounded with no notion of expiry, so
// per-entry TTLs ride in a deadline frame and reads past the deadline are
// misses. Get strips the frame, keeping the provider byte-transparent.
package lru

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	hlru "github.com/hashicorp/golang-lru/v2"

	"github.com/dev-indra/toolcache/internal/wire"
	pr "github.com/dev-indra/toolcache/provider"
)

type Provider struct {
	c     *hlru.Cache[string, []byte]
	start time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	Size int // maximum number of entries, evicting least recently used
}

func New(cfg Config) (*Provider, error) {
	if cfg.Size <= 0 {
		return nil, errors.New("lru: size must be positive")
	}
	c, err := hlru.New[string, []byte](cfg.Size)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, start: time.Now()}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := p.c.Get(key)
	if !ok {
		p.misses.Add(1)
		return nil, false, nil
	}
	deadline, payload, derr := wire.DecodeFrame(b)
	if derr != nil || expired(deadline) {
		p.c.Remove(key)
		p.misses.Add(1)
		return nil, false, nil
	}
	p.hits.Add(1)
	return payload, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}
	p.c.Add(key, wire.EncodeFrame(deadline, value))
	return true, nil
}

// Del reports true only when a live entry was removed; expired or corrupt
// entries are cleaned up and reported absent.
func (p *Provider) Del(_ context.Context, key string) (bool, error) {
	b, ok := p.c.Peek(key)
	if !ok {
		return false, nil
	}
	live := false
	if deadline, _, derr := wire.DecodeFrame(b); derr == nil {
		live = !expired(deadline)
	}
	p.c.Remove(key)
	return live, nil
}

// Exists peeks without promoting the entry in the eviction order.
func (p *Provider) Exists(_ context.Context, key string) (bool, error) {
	b, ok := p.c.Peek(key)
	if !ok {
		return false, nil
	}
	deadline, _, derr := wire.DecodeFrame(b)
	if derr != nil || expired(deadline) {
		p.c.Remove(key)
		return false, nil
	}
	return true, nil
}

func (p *Provider) TTL(_ context.Context, key string) (int64, error) {
	b, ok := p.c.Peek(key)
	if !ok {
		return pr.TTLMissing, nil
	}
	deadline, _, derr := wire.DecodeFrame(b)
	if derr != nil {
		p.c.Remove(key)
		return pr.TTLMissing, nil
	}
	if deadline.IsZero() {
		return pr.TTLNoExpiry, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		p.c.Remove(key)
		return pr.TTLMissing, nil
	}
	return pr.CeilSeconds(remaining), nil
}

// Ping always succeeds; an in-process store is reachable by definition.
func (p *Provider) Ping(context.Context) error { return nil }

// Info derives memory use by walking current values; Keys counts physically
// present entries, including any not yet swept expired ones.
func (p *Provider) Info(context.Context) (pr.Info, error) {
	var used uint64
	for _, v := range p.c.Values() {
		used += uint64(len(v))
	}
	return pr.Info{
		Backend:       "lru",
		UsedMemory:    humanize.Bytes(used),
		UptimeSeconds: int64(time.Since(p.start).Seconds()),
		Keys:          int64(p.c.Len()),
		Hits:          p.hits.Load(),
		Misses:        p.misses.Load(),
	}, nil
}

func (p *Provider) Flush(context.Context) error {
	p.c.Purge()
	return nil
}

func (p *Provider) Close(context.Context) error {
	p.c.Purge()
	return nil
}

func expired(deadline time.Time) bool {
	return !deadline.IsZero() && !time.Now().Before(deadline)
}
