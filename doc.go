// Package toolcache implements a cache-aside facade over a pluggable
// key-value backend, with a per-operation TTL policy and fail-open
// semantics. Store operations never surface backend or serialization
// failures to callers; they degrade to false/absent so a cache outage
// costs latency, never correctness. The one asymmetry is deliberate:
// fetch failures inside Invoke propagate verbatim.
//
// Components:
//   - Provider: byte store with TTL (e.g. Redis, BigCache, Ristretto, LRU).
//   - Codec[V]: (de)serializes V <-> JSON text.
//   - Store[V]: keyed TTL store; wraps codec output in a JSON envelope
//     {value, timestamp, ttl} on the backend.
//   - Invoker[V]: cache-aside wrapper; derives keys from
//     (namespace, kind, args) and TTLs from a static Policy.
//
// Keys:
//
//	<namespace>:<kind>:<canonical args>
//
// Cache-aside pattern:
//
//	inv, _ := toolcache.NewInvoker(toolcache.InvokerOptions[Quote]{
//	    Namespace: "mcp",
//	    Store:     store,
//	    Policy: toolcache.Policy{
//	        TTLs:    map[string]time.Duration{"price_data": time.Minute},
//	        Default: 5 * time.Minute,
//	    },
//	})
//	q, err := inv.Invoke(ctx, "price_data", toolcache.Args{"symbol": "BTC"}, fetchQuote)
package toolcache
