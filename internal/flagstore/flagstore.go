// Package flagstore picks the persistence backend for the session flags.
package flagstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/prefs"
	"github.com/jask/notewise/internal/secrets"
	"github.com/jask/notewise/internal/session"
)

const (
	BackendSQLite    = "sqlite"
	BackendFile      = "file"
	BackendEncrypted = "encrypted"
	BackendRedis     = "redis"
	BackendMemory    = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend      string
	DB           *sql.DB // sqlite
	FilePath     string  // file
	SecretPath   string  // encrypted
	RedisAddr    string  // redis
	RedisProfile string  // redis
}

// Open returns the configured store and a close function that is always safe to call.
func Open(ctx context.Context, o Options) (session.Store, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(o.Backend)) {
	case "", BackendSQLite:
		if o.DB == nil {
			return nil, noop, fmt.Errorf("flagstore: sqlite backend needs a database")
		}
		return repository.NewFlagRepo(o.DB), noop, nil
	case BackendFile:
		f, err := prefs.OpenFlagFile(o.FilePath)
		if err != nil {
			return nil, noop, fmt.Errorf("flagstore: %w", err)
		}
		return f, noop, nil
	case BackendEncrypted:
		s, err := secrets.Open(o.SecretPath)
		if err != nil {
			return nil, noop, fmt.Errorf("flagstore: %w", err)
		}
		return s, noop, nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: o.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("flagstore: redis %s: %w", o.RedisAddr, err)
		}
		return NewRedisStore(client, o.RedisProfile), client.Close, nil
	case BackendMemory:
		return session.NewMemoryStore(nil), noop, nil
	default:
		return nil, noop, fmt.Errorf("flagstore: unknown backend %q", o.Backend)
	}
}
