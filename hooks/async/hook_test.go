package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/dev-indra/toolcache"
)

type countingHooks struct {
	mu            sync.Mutex
	hits          int
	misses        int
	backendErrs   int
	selfHeals     int
	healthChanges int
}

var _ toolcache.Hooks = (*countingHooks)(nil)

func (c *countingHooks) Hit(kind, key string) {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *countingHooks) Miss(kind, key string) {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

func (c *countingHooks) BackendError(op, key string, err error) {
	c.mu.Lock()
	c.backendErrs++
	c.mu.Unlock()
}

func (c *countingHooks) SelfHeal(key, reason string) {
	c.mu.Lock()
	c.selfHeals++
	c.mu.Unlock()
}

func (c *countingHooks) HealthChanged(connected bool) {
	c.mu.Lock()
	c.healthChanges++
	c.mu.Unlock()
}

// gatedHooks blocks every Hit until the gate closes, so the queue
// can be filled deterministically.
type gatedHooks struct {
	countingHooks
	gate chan struct{}
}

func (g *gatedHooks) Hit(kind, key string) {
	<-g.gate
	g.countingHooks.Hit(kind, key)
}

func TestDeliversAllEventsBeforeClose(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 16)

	h.Hit("price_data", "k")
	h.Miss("news", "k")
	h.BackendError("get", "k", errors.New("connection refused"))
	h.SelfHeal("k", "corrupt")
	h.HealthChanged(false)
	h.Close()

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if inner.hits != 1 || inner.misses != 1 || inner.backendErrs != 1 ||
		inner.selfHeals != 1 || inner.healthChanges != 1 {
		t.Fatalf("delivered hits=%d misses=%d backendErrs=%d selfHeals=%d healthChanges=%d, want one of each",
			inner.hits, inner.misses, inner.backendErrs, inner.selfHeals, inner.healthChanges)
	}
}

func TestOverflowDropsInsteadOfBlocking(t *testing.T) {
	gate := make(chan struct{})
	inner := &gatedHooks{gate: gate}
	h := New(inner, 1, 1)

	// The single worker blocks on the first event; the queue holds at
	// most one more. Everything else must be dropped, not block us.
	for i := 0; i < 100; i++ {
		h.Hit("price_data", "k")
	}
	close(gate)
	h.Close()

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if inner.hits < 1 || inner.hits > 2 {
		t.Fatalf("delivered hits = %d, want 1 or 2 with the rest dropped", inner.hits)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	h := New(&countingHooks{}, 1, 4)
	h.Close()
	h.Close()
}
