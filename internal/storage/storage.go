// Package storage persists the small key/value state the client keeps
// between runs: the bearer token and the user snapshot.
package storage

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

// Store is a string key/value store. Get reports ok=false for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// Open builds the store selected by STORAGE_DRIVER.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "memory":
		return NewMemory(), nil
	case "sqlite", "postgres":
		return NewGorm(cfg.StorageDSN)
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
	}
}
