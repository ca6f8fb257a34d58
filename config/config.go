// Package config loads toolcache settings from a YAML file and TOOLCACHE_*
// environment variables. Values layer in the usual order: built-in defaults
// first, then the file, then the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dev-indra/toolcache"
)

// EnvPrefix namespaces every environment variable read by this package,
// e.g. TOOLCACHE_REDIS_URL or TOOLCACHE_DEFAULT_TTL_SECONDS.
const EnvPrefix = "TOOLCACHE_"

// Config carries everything needed to stand up a store and invoker around a
// Redis backend. TTLs are plain seconds so tables read the same in YAML and
// in the environment.
type Config struct {
	// RedisURL is handed to the redis provider as-is
	// (redis://[user:pass@]host:port[/db]).
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`

	// Namespace prefixes every cache key.
	Namespace string `yaml:"namespace" env:"NAMESPACE"`

	// Enabled turns caching off entirely when false; every store operation
	// degrades to a no-op and invokers call the fetcher every time.
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// DefaultTTLSeconds applies to kinds absent from TTLSeconds.
	DefaultTTLSeconds int `yaml:"default_ttl_seconds" env:"DEFAULT_TTL_SECONDS"`

	// TTLSeconds maps operation kinds to expiries. In the environment the
	// table is written as kind:seconds pairs separated by commas:
	//
	//	TOOLCACHE_TTL_SECONDS=get_crypto_price_data:60,get_crypto_news:900
	TTLSeconds map[string]int `yaml:"ttl_seconds" env:"TTL_SECONDS"`
}

// Default returns the baseline configuration: caching enabled against a
// local Redis, five minute default TTL, no per-kind table.
func Default() Config {
	return Config{
		RedisURL:          "redis://localhost:6379",
		Namespace:         "mcp",
		Enabled:           true,
		DefaultTTLSeconds: 300,
	}
}

// Load layers the YAML file at path, then the environment, over Default.
// A missing file is not an error; the environment alone can configure
// everything.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to the environment
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv is Load without a file.
func FromEnv() (Config, error) {
	return Load("")
}

// Validate rejects values the constructors downstream would refuse anyway,
// so a bad deployment fails at startup rather than at first use.
func (c Config) Validate() error {
	if c.Namespace == "" {
		return &toolcache.OptionsError{Component: "config", Field: "namespace", Reason: "is required"}
	}
	if c.DefaultTTLSeconds < 0 {
		return &toolcache.OptionsError{Component: "config", Field: "default_ttl_seconds", Reason: "must not be negative"}
	}
	for kind, secs := range c.TTLSeconds {
		if secs < 0 {
			return &toolcache.OptionsError{
				Component: "config",
				Field:     fmt.Sprintf("ttl_seconds[%s]", kind),
				Reason:    "must not be negative",
			}
		}
	}
	return nil
}

// DefaultTTL returns DefaultTTLSeconds as a duration.
func (c Config) DefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLSeconds) * time.Second
}

// Policy converts the TTL table into the form NewInvoker takes.
func (c Config) Policy() toolcache.Policy {
	p := toolcache.Policy{Default: c.DefaultTTL()}
	if len(c.TTLSeconds) > 0 {
		p.TTLs = make(map[string]time.Duration, len(c.TTLSeconds))
		for kind, secs := range c.TTLSeconds {
			p.TTLs[kind] = time.Duration(secs) * time.Second
		}
	}
	return p
}
