package toolcache

import (
	"context"

	"github.com/dev-indra/toolcache/internal/util"
)

type invoker[V any] struct {
	ns     string
	store  Store[V]
	policy Policy
	log    Logger
	hooks  Hooks
}

func newInvoker[V any](opts InvokerOptions[V]) (*invoker[V], error) {
	if opts.Namespace == "" {
		return nil, optErr("invoker", "Namespace", "is required")
	}
	if opts.Store == nil {
		return nil, optErr("invoker", "Store", "is required")
	}

	iv := &invoker[V]{
		ns:     opts.Namespace,
		store:  opts.Store,
		policy: opts.Policy.clone(),
	}
	iv.log = coalesce[Logger](opts.Logger, NopLogger{})
	iv.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return iv, nil
}

func (iv *invoker[V]) Invoke(ctx context.Context, kind string, args Args, fetch FetchFunc[V]) (V, error) {
	key := iv.Key(kind, args)
	if v, ok := iv.store.Get(ctx, key); ok {
		iv.hooks.Hit(kind, key)
		iv.log.Debug("cache hit", Fields{"kind": kind, "key": key})
		return v, nil
	}
	iv.hooks.Miss(kind, key)
	iv.log.Debug("cache miss", Fields{"kind": kind, "key": key})

	v, err := fetch(ctx)
	if err != nil {
		// fetch errors pass through untouched; nothing is written
		var zero V
		return zero, err
	}
	iv.store.Set(ctx, key, v, iv.policy.TTLFor(kind))
	return v, nil
}

func (iv *invoker[V]) Forget(ctx context.Context, kind string, args Args) bool {
	return iv.store.Delete(ctx, iv.Key(kind, args))
}

func (iv *invoker[V]) Cached(ctx context.Context, kind string, args Args) bool {
	return iv.store.Exists(ctx, iv.Key(kind, args))
}

// Key derives the storage key for (kind, args): names sorted, primitives
// rendered verbatim, compound values reduced to a stable short hash.
// Identical argument sets key identically regardless of insertion order.
func (iv *invoker[V]) Key(kind string, args Args) string {
	return iv.ns + ":" + kind + ":" + util.CanonArgs(args)
}
