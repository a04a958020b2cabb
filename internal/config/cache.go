package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// ClientCacheConfig controls the browser-side caching of the popular courses
// endpoint. Nothing is cached on the server; responses carry Cache-Control
// max-age and an ETag so clients can revalidate cheaply.
type ClientCacheConfig struct {
	Enabled bool          `env:"CLIENT_CACHE_ENABLED" envDefault:"true"`
	TTL     time.Duration `env:"CLIENT_CACHE_TTL" envDefault:"60s"`
}

// LoadClientCacheConfig reads CLIENT_CACHE_* variables. A non-positive TTL
// disables max-age but keeps ETag revalidation.
func LoadClientCacheConfig() (ClientCacheConfig, error) {
	cfg, err := env.ParseAs[ClientCacheConfig]()
	if err != nil {
		return ClientCacheConfig{}, err
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}
	return cfg, nil
}
