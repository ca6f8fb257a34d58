package toolcache

import (
	"context"
	"time"

	c "github.com/dev-indra/toolcache/codec"
	pr "github.com/dev-indra/toolcache/provider"
)

// TTL sentinels returned by Store.TTL, matching the Redis TTL command.
const (
	TTLNoExpiry = pr.TTLNoExpiry // key exists with no expiry
	TTLMissing  = pr.TTLMissing  // key absent, expired, or backend unreachable
)

// HealthInfo.Status values.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Args is the named-argument set an operation is keyed by.
type Args map[string]any

// FetchFunc produces a fresh value on a cache miss.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Store is a keyed TTL store over a Provider. Every operation is fail-open:
// backend and serialization failures are logged and collapse to the
// documented degrade value (false, absent, TTLMissing) instead of an error.
// Miss, expiry, and backend outage are indistinguishable to callers.
type Store[V any] interface {
	// Set writes value under key with the given TTL (ttl <= 0 selects the
	// store default). Empty keys are rejected. Reports whether the value
	// was actually stored.
	Set(ctx context.Context, key string, value V, ttl time.Duration) bool

	// Get returns the stored value if present and decodable.
	Get(ctx context.Context, key string) (V, bool)

	// Exists reports whether a live entry is stored at key.
	Exists(ctx context.Context, key string) bool

	// TTL returns the remaining lifetime of key in whole seconds, or
	// TTLNoExpiry / TTLMissing.
	TTL(ctx context.Context, key string) int64

	// Delete removes key and reports whether an entry was actually removed.
	Delete(ctx context.Context, key string) bool

	// Healthy pings the backend and updates the connection-health flag.
	Healthy(ctx context.Context) bool

	// HealthInfo returns backend diagnostics for operational visibility.
	HealthInfo(ctx context.Context) HealthInfo

	// Stats returns backend cache statistics; zero values on failure.
	Stats(ctx context.Context) CacheStats

	// Flush clears the whole backend. Use with caution.
	Flush(ctx context.Context) bool

	Enabled() bool
	Close(ctx context.Context) error
}

// Invoker wraps fetch operations with cache-aside behavior: one Store read,
// at most one fetch and one best-effort Store write per Invoke. No retries,
// no single-flight; concurrent misses on one key may fetch twice and the
// last writer wins.
type Invoker[V any] interface {
	// Invoke returns the cached value for (kind, args) when present,
	// otherwise calls fetch, stores its result under the policy TTL for
	// kind, and returns it. A fetch error propagates unmodified and
	// nothing is written.
	Invoke(ctx context.Context, kind string, args Args, fetch FetchFunc[V]) (V, error)

	// Forget drops the cached entry for (kind, args).
	Forget(ctx context.Context, kind string, args Args) bool

	// Cached reports whether (kind, args) currently has a live entry.
	Cached(ctx context.Context, kind string, args Args) bool

	// Key returns the cache key Invoke would use for (kind, args).
	Key(kind string, args Args) string
}

// HealthInfo is a point-in-time backend diagnostics record.
type HealthInfo struct {
	Status           string // StatusHealthy or StatusUnhealthy
	Connected        bool
	Backend          string
	Version          string
	UsedMemory       string
	ConnectedClients int64
	UptimeSeconds    int64
	LastCheck        time.Time
	Error            string // failure detail when unhealthy
}

// CacheStats summarizes backend cache effectiveness.
type CacheStats struct {
	Keys             int64
	UsedMemory       string
	HitRate          float64 // percentage of backend reads served from cache
	ConnectedClients int64
	UptimeSeconds    int64
}

// StoreOptions tune a Store. Provider and Codec are required.
type StoreOptions[V any] struct {
	// Required
	Provider pr.Provider
	Codec    c.Codec[V]

	Logger     Logger        // if nil, NopLogger is used
	Hooks      Hooks         // if nil, NopHooks is used
	DefaultTTL time.Duration // applied when Set gets ttl <= 0; 0 => 5m
	Disabled   bool          // default false (enabled)
}

// NewStore builds a fail-open keyed TTL store over opts.Provider.
func NewStore[V any](opts StoreOptions[V]) (Store[V], error) {
	return newStore[V](opts)
}

// InvokerOptions tune an Invoker. Namespace and Store are required.
type InvokerOptions[V any] struct {
	// Required
	Namespace string // key prefix isolating this invoker, e.g. "mcp"
	Store     Store[V]

	Policy Policy // zero value: every kind gets the store default TTL
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// NewInvoker builds a cache-aside invoker on top of an existing Store.
func NewInvoker[V any](opts InvokerOptions[V]) (Invoker[V], error) {
	return newInvoker[V](opts)
}
