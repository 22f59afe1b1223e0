// Package config loads cache configuration from environment variables.
// A .env file in the working directory is honored when present, so local
// development and deployed environments share one configuration surface.
package config

import (
	"context"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/gozephyr/snapcache"
	cacheerrors "github.com/gozephyr/snapcache/errors"
	"github.com/gozephyr/snapcache/store"
)

var dotenvOnce sync.Once

// Config is the recognized configuration surface. Persistence defaults to
// enabled exactly when a storage target (snapshot path or redis URL) is
// set; SNAPCACHE_PERSISTENCE overrides that in either direction.
type Config struct {
	MaxSize     int           `env:"SNAPCACHE_MAX_SIZE" envDefault:"100"`
	DefaultTTL  time.Duration `env:"SNAPCACHE_DEFAULT_TTL"`
	AutoCleanup bool          `env:"SNAPCACHE_AUTO_CLEANUP" envDefault:"true"`
	CacheName   string        `env:"SNAPCACHE_NAME" envDefault:"snapcache"`

	SnapshotPath string `env:"SNAPCACHE_SNAPSHOT_PATH"`
	Compress     bool   `env:"SNAPCACHE_SNAPSHOT_COMPRESS"`

	RedisURL string `env:"SNAPCACHE_REDIS_URL"`
	RedisKey string `env:"SNAPCACHE_REDIS_KEY" envDefault:"snapcache:snapshot"`

	Persistence *bool `env:"SNAPCACHE_PERSISTENCE"`
}

// Load parses the environment into a Config. The default .env file is
// loaded once per process; a missing file is not an error.
func Load() (Config, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options materializes cache options from the configuration, constructing
// the appropriate snapshot store. Redis takes precedence over the file
// target when both are configured.
func Options[V any](ctx context.Context, cfg Config) ([]snapcache.Option[V], error) {
	opts := []snapcache.Option[V]{
		snapcache.WithMaxSize[V](cfg.MaxSize),
		snapcache.WithDefaultTTL[V](cfg.DefaultTTL),
		snapcache.WithAutoCleanup[V](cfg.AutoCleanup),
		snapcache.WithCacheName[V](cfg.CacheName),
	}

	var target store.Store
	switch {
	case cfg.RedisURL != "":
		redisCfg := store.DefaultRedisConfig(cfg.RedisURL)
		redisCfg.Key = cfg.RedisKey
		s, err := store.DialRedis(ctx, redisCfg, nil)
		if err != nil {
			return nil, err
		}
		target = s
	case cfg.SnapshotPath != "":
		fileCfg := store.DefaultFileConfig(cfg.SnapshotPath)
		fileCfg.Compress = cfg.Compress
		s, err := store.NewFileStore(fileCfg, nil)
		if err != nil {
			return nil, err
		}
		target = s
	}

	if target != nil {
		opts = append(opts, snapcache.WithStore[V](target))
	}

	if cfg.Persistence != nil {
		if *cfg.Persistence && target == nil {
			return nil, cacheerrors.WrapError("Options", nil, cacheerrors.ErrNoStore)
		}
		opts = append(opts, snapcache.WithPersistence[V](*cfg.Persistence))
	}

	return opts, nil
}
