package storage

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// defaultBoltBucket is the root bucket holding one sub-bucket per scope.
const defaultBoltBucket = "electa_local"

// BoltBackend is a bbolt-backed backend. It is the default on-disk medium
// for single-server deployments.
type BoltBackend struct {
	db     *bolt.DB
	bucket []byte
}

// BoltOption configures BoltBackend behavior.
type BoltOption func(*boltConfig)

type boltConfig struct {
	bucket  string
	timeout time.Duration
}

// WithBoltBucket sets the root bucket name.
// Default: "electa_local".
func WithBoltBucket(name string) BoltOption {
	return func(c *boltConfig) {
		c.bucket = name
	}
}

// WithBoltTimeout sets how long Open waits for the file lock.
// Default: 1 second.
func WithBoltTimeout(d time.Duration) BoltOption {
	return func(c *boltConfig) {
		c.timeout = d
	}
}

// OpenBolt opens (or creates) a bbolt database at path.
func OpenBolt(path string, opts ...BoltOption) (*BoltBackend, error) {
	cfg := &boltConfig{
		bucket:  defaultBoltBucket,
		timeout: time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: cfg.timeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %s: %w", path, err)
	}

	bucket := []byte(cfg.bucket)
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", cfg.bucket, err)
	}

	return &BoltBackend{db: db, bucket: bucket}, nil
}

// Get returns the value stored under key in scope.
func (b *BoltBackend) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(b.bucket)
		if root == nil {
			return nil
		}
		sb := root.Bucket([]byte(scope))
		if sb == nil {
			return nil
		}
		if v := sb.Get([]byte(key)); v != nil {
			// v is only valid for the life of the transaction
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, translateBoltErr(err)
	}
	return value, found, nil
}

// Set stores value under key in scope.
func (b *BoltBackend) Set(ctx context.Context, scope, key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(b.bucket)
		if root == nil {
			return fmt.Errorf("bucket %s missing", b.bucket)
		}
		sb, err := root.CreateBucketIfNotExists([]byte(scope))
		if err != nil {
			return err
		}
		return sb.Put([]byte(key), []byte(value))
	})
	return translateBoltErr(err)
}

// Delete removes key from scope.
func (b *BoltBackend) Delete(ctx context.Context, scope, key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(b.bucket)
		if root == nil {
			return nil
		}
		sb := root.Bucket([]byte(scope))
		if sb == nil {
			return nil
		}
		return sb.Delete([]byte(key))
	})
	return translateBoltErr(err)
}

// Close closes the underlying database file.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func translateBoltErr(err error) error {
	if err == bolt.ErrDatabaseNotOpen {
		return ErrClosed
	}
	return err
}
