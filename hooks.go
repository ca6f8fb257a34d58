package toolcache

// Hooks are lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking; the store and invoker
// call them on hot paths. Wrap with hooks/async when a sink can block.
type Hooks interface {
	// Invoke served the value from cache.
	Hit(kind, key string)

	// Invoke fell through to fetch.
	Miss(kind, key string)

	// A backend operation failed and the caller saw a degraded value.
	// op ∈ {"get", "set", "delete", "exists", "ttl", "ping", "info", "flush"}
	BackendError(op, key string, err error)

	// An undecodable entry was deleted by the store on read.
	// reason ∈ {"corrupt", "value_decode"}
	SelfHeal(key, reason string)

	// The connection-health flag flipped.
	HealthChanged(connected bool)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string, string)                 {}
func (NopHooks) Miss(string, string)                {}
func (NopHooks) BackendError(string, string, error) {}
func (NopHooks) SelfHeal(string, string)            {}
func (NopHooks) HealthChanged(bool)                 {}
