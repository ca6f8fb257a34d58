// Package redis provides a Provider backed by a Redis-compatible server via
// go-redis. Entries rely on native SETEX expiry, so values on the server are
// exactly the bytes handed to Set and stay readable by other clients of the
// same keyspace.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/dev-indra/toolcache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Socket timeouts applied by Open when the URL does not override them.
// Every backend call stays bounded even when the server hangs.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
)

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// Open parses url (redis://[user:pass@]host:port[/db]) and returns a provider
// owning the resulting client. Nothing is dialed here; the first operation
// connects, so an unreachable server degrades at call time instead of
// failing construction.
func Open(url string) (*Redis, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if opt.DialTimeout == 0 {
		opt.DialTimeout = DefaultDialTimeout
	}
	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = DefaultReadTimeout
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = DefaultWriteTimeout
	}
	return &Redis{rdb: goredis.NewClient(opt), closeClient: true}, nil
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 0 // treat non-positive TTLs as "no expiry" per provider contract
	}

	err := p.rdb.Set(ctx, key, value, ttl).Err()
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Del(ctx context.Context, key string) (bool, error) {
	n, err := p.rdb.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (p *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := p.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TTL maps go-redis durations back to the RESP sentinels: the client returns
// raw -1/-2 (as nanoseconds) for keys without expiry or missing keys.
func (p *Redis) TTL(ctx context.Context, key string) (int64, error) {
	d, err := p.rdb.TTL(ctx, key).Result()
	if err != nil {
		return pr.TTLMissing, err
	}
	switch d {
	case -1:
		return pr.TTLNoExpiry, nil
	case -2:
		return pr.TTLMissing, nil
	}
	return int64(d / time.Second), nil
}

func (p *Redis) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *Redis) Info(ctx context.Context) (pr.Info, error) {
	text, err := p.rdb.Info(ctx).Result()
	if err != nil {
		return pr.Info{}, err
	}
	fields := parseInfo(text)
	info := pr.Info{
		Backend:          "redis",
		Version:          fields["redis_version"],
		UsedMemory:       fields["used_memory_human"],
		ConnectedClients: intField(fields, "connected_clients"),
		UptimeSeconds:    intField(fields, "uptime_in_seconds"),
		Hits:             intField(fields, "keyspace_hits"),
		Misses:           intField(fields, "keyspace_misses"),
	}
	// DBSIZE is a separate command; tolerate failure and keep the rest.
	if n, err := p.rdb.DBSize(ctx).Result(); err == nil {
		info.Keys = n
	}
	return info, nil
}

func (p *Redis) Flush(ctx context.Context) error {
	return p.rdb.FlushDB(ctx).Err()
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
