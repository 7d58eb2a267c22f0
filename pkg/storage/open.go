package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	_ "modernc.org/sqlite"

	"github.com/electa-dev/electa/internal/errors"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Options selects and configures a backend for Open.
type Options struct {
	// Driver is one of memory, bolt, sqlite or redis.
	Driver string

	// Path is the bbolt file path or the SQLite DSN.
	Path string

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string

	// RedisPassword is the optional Redis password.
	RedisPassword string

	// RedisDB selects the Redis database.
	RedisDB int

	// RedisTTL expires idle visitor scopes in Redis (0 disables).
	RedisTTL time.Duration
}

// Open creates the backend described by opts.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryBackend(), nil

	case DriverBolt:
		b, err := OpenBolt(opts.Path)
		if err != nil {
			return nil, errors.New("E203").Wrap(err)
		}
		return b, nil

	case DriverSQLite:
		db, err := sql.Open("sqlite", opts.Path)
		if err != nil {
			return nil, errors.New("E203").Wrap(err)
		}
		// SQLite serialises writers; one connection also keeps
		// ":memory:" databases from splitting per connection.
		db.SetMaxOpenConns(1)
		backend := NewSQLBackend(db, WithSQLDialect(DialectSQLite))
		if err := backend.Migrate(ctx); err != nil {
			db.Close()
			return nil, errors.New("E203").Wrap(fmt.Errorf("migrate: %w", err))
		}
		return &ownedSQLBackend{SQLBackend: backend, db: db}, nil

	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, errors.New("E203").Wrap(fmt.Errorf("ping redis at %s: %w", opts.RedisAddr, err))
		}
		return &ownedRedisBackend{
			RedisBackend: NewRedisBackend(client, WithRedisTTL(opts.RedisTTL)),
			client:       client,
		}, nil

	default:
		return nil, errors.New("E403").WithSuggestion(fmt.Sprintf("got %q", opts.Driver))
	}
}

// ownedSQLBackend closes the database it opened.
type ownedSQLBackend struct {
	*SQLBackend
	db *sql.DB
}

func (o *ownedSQLBackend) Close() error {
	o.SQLBackend.Close()
	return o.db.Close()
}

// ownedRedisBackend closes the client it opened.
type ownedRedisBackend struct {
	*RedisBackend
	client *redis.Client
}

func (o *ownedRedisBackend) Close() error {
	o.RedisBackend.Close()
	return o.client.Close()
}
