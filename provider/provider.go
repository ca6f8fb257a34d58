// Package provider defines the storage abstraction used by toolcache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation). If a store performs internal transforms
// (e.g., compression or expiry framing), they MUST be fully reversed so that the
// bytes returned by Get are identical to the bytes provided to Set.
package provider

import (
	"context"
	"time"
)

// TTL sentinels, matching the Redis TTL command.
const (
	TTLNoExpiry int64 = -1 // key exists with no expiry
	TTLMissing  int64 = -2 // key absent (or state unknowable)
)

// Provider is a byte store with per-entry TTLs and health introspection.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL; ttl <= 0 means no expiry.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key and reports whether it was present.
	Del(ctx context.Context, key string) (bool, error)

	// Exists reports whether a live (unexpired) entry is stored at key.
	Exists(ctx context.Context, key string) (bool, error)

	// TTL returns the remaining lifetime of key in whole seconds, or one of
	// the TTL sentinels.
	TTL(ctx context.Context, key string) (int64, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Info returns backend diagnostics. Fields a backend cannot supply are
	// left at their zero values.
	Info(ctx context.Context) (Info, error)

	// Flush removes every entry from the backend.
	Flush(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Info is a snapshot of backend diagnostics, shaped after the fields of the
// Redis INFO command that matter for cache health.
type Info struct {
	Backend          string // implementation name, e.g. "redis"
	Version          string
	UsedMemory       string // human-readable, e.g. "1.03M"
	ConnectedClients int64
	UptimeSeconds    int64
	Keys             int64
	Hits             int64
	Misses           int64
}

// CeilSeconds converts a remaining lifetime to whole seconds, rounding up,
// so a freshly written entry reports its full TTL. Non-positive remainders
// round to zero.
func CeilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}
