package toolcache

import (
	"context"
	"sync/atomic"
	"time"

	c "github.com/dev-indra/toolcache/codec"
	"github.com/dev-indra/toolcache/internal/wire"
	pr "github.com/dev-indra/toolcache/provider"
)

const defaultStoreTTL = 5 * time.Minute

type store[V any] struct {
	provider   pr.Provider
	codec      c.Codec[V]
	log        Logger
	hooks      Hooks
	enabled    bool
	defaultTTL time.Duration
	connected  atomic.Bool
}

func newStore[V any](opts StoreOptions[V]) (*store[V], error) {
	if opts.Provider == nil {
		return nil, optErr("store", "Provider", "is required")
	}
	if opts.Codec == nil {
		return nil, optErr("store", "Codec", "is required")
	}
	if opts.DefaultTTL < 0 {
		return nil, optErr("store", "DefaultTTL", "must not be negative")
	}

	s := &store[V]{
		provider: opts.Provider,
		codec:    opts.Codec,
		enabled:  !opts.Disabled,
	}

	// defaults
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	s.defaultTTL = coalesce[time.Duration](opts.DefaultTTL, defaultStoreTTL)

	// Optimistic until the first failed round-trip; the provider is
	// injected already constructed, so there is nothing to probe yet.
	s.connected.Store(true)
	return s, nil
}

func (s *store[V]) Enabled() bool { return s.enabled }

func (s *store[V]) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

func (s *store[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) bool {
	if key == "" || !s.ready(ctx) {
		return false
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	payload, err := s.codec.Encode(value)
	if err != nil {
		s.log.Error("value encode failed", Fields{"key": key, "err": err})
		return false
	}
	blob, err := wire.EncodeEnvelope(payload, time.Now(), ttl)
	if err != nil {
		s.log.Error("envelope encode failed", Fields{"key": key, "err": err})
		return false
	}
	ok, err := s.provider.Set(ctx, key, blob, ttl)
	if err != nil {
		s.backendError("set", key, err)
		return false
	}
	s.setConnected(true)
	if !ok {
		s.log.Debug("set rejected by provider (pressure)", Fields{"key": key})
	}
	return ok
}

func (s *store[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V
	if key == "" || !s.ready(ctx) {
		return zero, false
	}
	raw, ok, err := s.provider.Get(ctx, key)
	if err != nil {
		s.backendError("get", key, err)
		return zero, false
	}
	s.setConnected(true)
	if !ok {
		return zero, false
	}
	env, err := wire.DecodeEnvelope(raw)
	if err != nil {
		s.selfHeal(ctx, key, "corrupt")
		return zero, false
	}
	v, err := s.codec.Decode(env.Value)
	if err != nil {
		s.selfHeal(ctx, key, "value_decode")
		return zero, false
	}
	return v, true
}

func (s *store[V]) Exists(ctx context.Context, key string) bool {
	if key == "" || !s.ready(ctx) {
		return false
	}
	ok, err := s.provider.Exists(ctx, key)
	if err != nil {
		s.backendError("exists", key, err)
		return false
	}
	s.setConnected(true)
	return ok
}

func (s *store[V]) TTL(ctx context.Context, key string) int64 {
	if key == "" || !s.ready(ctx) {
		return pr.TTLMissing
	}
	ttl, err := s.provider.TTL(ctx, key)
	if err != nil {
		s.backendError("ttl", key, err)
		return pr.TTLMissing
	}
	s.setConnected(true)
	return ttl
}

func (s *store[V]) Delete(ctx context.Context, key string) bool {
	if key == "" || !s.ready(ctx) {
		return false
	}
	ok, err := s.provider.Del(ctx, key)
	if err != nil {
		s.backendError("delete", key, err)
		return false
	}
	s.setConnected(true)
	return ok
}

func (s *store[V]) Healthy(ctx context.Context) bool {
	if !s.enabled {
		return false
	}
	return s.ping(ctx) == nil
}

func (s *store[V]) HealthInfo(ctx context.Context) HealthInfo {
	hi := HealthInfo{
		Status:    StatusUnhealthy,
		LastCheck: time.Now().UTC(),
	}
	if !s.enabled {
		hi.Error = "cache disabled"
		return hi
	}
	info, err := s.provider.Info(ctx)
	if err != nil {
		s.backendError("info", "", err)
		hi.Error = err.Error()
		return hi
	}
	s.setConnected(true)
	hi.Status = StatusHealthy
	hi.Connected = true
	hi.Backend = info.Backend
	hi.Version = info.Version
	hi.UsedMemory = info.UsedMemory
	hi.ConnectedClients = info.ConnectedClients
	hi.UptimeSeconds = info.UptimeSeconds
	return hi
}

func (s *store[V]) Stats(ctx context.Context) CacheStats {
	var st CacheStats
	if !s.ready(ctx) {
		return st
	}
	info, err := s.provider.Info(ctx)
	if err != nil {
		s.backendError("info", "", err)
		return st
	}
	s.setConnected(true)
	st.Keys = info.Keys
	st.UsedMemory = info.UsedMemory
	st.ConnectedClients = info.ConnectedClients
	st.UptimeSeconds = info.UptimeSeconds
	if total := info.Hits + info.Misses; total > 0 {
		st.HitRate = float64(info.Hits) / float64(total) * 100
	}
	return st
}

func (s *store[V]) Flush(ctx context.Context) bool {
	if !s.ready(ctx) {
		return false
	}
	if err := s.provider.Flush(ctx); err != nil {
		s.backendError("flush", "", err)
		return false
	}
	s.setConnected(true)
	s.log.Info("cache flushed", nil)
	return true
}

// ready gates every operation: disabled stores never touch the provider,
// and once the connected flag is down the backend is re-probed with a ping
// before any further traffic (the probe fails fast against a dead host).
func (s *store[V]) ready(ctx context.Context) bool {
	if !s.enabled {
		return false
	}
	if s.connected.Load() {
		return true
	}
	return s.ping(ctx) == nil
}

func (s *store[V]) ping(ctx context.Context) error {
	err := s.provider.Ping(ctx)
	if err != nil {
		s.setConnected(false)
		s.log.Warn("backend unreachable", Fields{"err": err})
		s.hooks.BackendError("ping", "", err)
		return err
	}
	s.setConnected(true)
	return nil
}

func (s *store[V]) setConnected(up bool) {
	if s.connected.Swap(up) != up {
		s.hooks.HealthChanged(up)
	}
}

func (s *store[V]) backendError(op, key string, err error) {
	s.setConnected(false)
	s.log.Warn("backend operation failed", Fields{"op": op, "key": key, "err": err})
	s.hooks.BackendError(op, key, err)
}

func (s *store[V]) selfHeal(ctx context.Context, key, reason string) {
	_, _ = s.provider.Del(ctx, key)
	s.log.Error("undecodable entry dropped", Fields{"key": key, "reason": reason})
	s.hooks.SelfHeal(key, reason)
}
