package session

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Options selects and configures a backend.
type Options struct {
	Backend    string
	RedisAddr  string
	SQLitePath string
	TTL        time.Duration
}

// Open builds the Store named by opts.Backend. An empty backend selects memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, RedisConfig{Addr: opts.RedisAddr, TTL: opts.TTL})
	case BackendSQLite:
		return NewSQLiteStore(opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported session backend: %s (supported: memory, redis, sqlite)", opts.Backend)
	}
}
