package toolcache

import "time"

// Policy maps operation kinds to cache TTLs. It is static per deployment:
// loaded from configuration at startup and never mutated afterwards.
// NewInvoker copies the table, so later changes to the map passed in have
// no effect.
type Policy struct {
	TTLs    map[string]time.Duration
	Default time.Duration
}

// TTLFor returns the TTL configured for kind, or Default for unlisted
// kinds. A non-positive result makes the store fall back to its own
// default TTL at write time.
func (p Policy) TTLFor(kind string) time.Duration {
	if ttl, ok := p.TTLs[kind]; ok {
		return ttl
	}
	return p.Default
}

func (p Policy) clone() Policy {
	out := Policy{Default: p.Default}
	if len(p.TTLs) > 0 {
		out.TTLs = make(map[string]time.Duration, len(p.TTLs))
		for kind, ttl := range p.TTLs {
			out.TTLs[kind] = ttl
		}
	}
	return out
}
