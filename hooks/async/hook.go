// Package asynchook decouples hook sinks from the cache hot path: events
// are queued to a worker pool and dropped when the queue is full, so a slow
// sink can never stall a cache operation.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    HitEvery:  100, // sample logs: ~every 100th hit
//	    MissEvery: 10,
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	store, _ := toolcache.NewStore[Quote](toolcache.StoreOptions[Quote]{
//	    Provider: provider,
//	    Codec:    codec.JSONCodec[Quote]{},
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/dev-indra/toolcache"
)

type Hooks struct {
	inner toolcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ toolcache.Hooks = (*Hooks)(nil)

func New(inner toolcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and stops the workers. Close the cache first;
// events must not be emitted after Close.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(kind, key string)  { h.try(func() { h.inner.Hit(kind, key) }) }
func (h *Hooks) Miss(kind, key string) { h.try(func() { h.inner.Miss(kind, key) }) }
func (h *Hooks) BackendError(op, key string, err error) {
	h.try(func() { h.inner.BackendError(op, key, err) })
}
func (h *Hooks) SelfHeal(key, reason string) { h.try(func() { h.inner.SelfHeal(key, reason) }) }
func (h *Hooks) HealthChanged(up bool)       { h.try(func() { h.inner.HealthChanged(up) }) }
