package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
)

// SQLBackend is a database/sql backed backend.
// Requires a table with schema (see Migrate):
//
//	CREATE TABLE electa_local_storage (
//	    scope      TEXT NOT NULL,
//	    item_key   TEXT NOT NULL,
//	    value      TEXT NOT NULL,
//	    updated_at TIMESTAMP NOT NULL,
//	    PRIMARY KEY (scope, item_key)
//	);
type SQLBackend struct {
	db        *sql.DB
	tableName string
	dialect   SQLDialect
	closed    atomic.Bool
}

// SQLDialect represents the SQL dialect for query generation.
type SQLDialect int

const (
	// DialectSQLite uses SQLite syntax (? placeholders).
	DialectSQLite SQLDialect = iota
	// DialectPostgreSQL uses PostgreSQL syntax ($1, $2 placeholders).
	DialectPostgreSQL
)

// SQLOption configures SQLBackend behavior.
type SQLOption func(*sqlConfig)

type sqlConfig struct {
	tableName string
	dialect   SQLDialect
}

// WithSQLTableName sets the table name.
// Default: "electa_local_storage".
func WithSQLTableName(name string) SQLOption {
	return func(c *sqlConfig) {
		c.tableName = name
	}
}

// WithSQLDialect sets the SQL dialect for query generation.
// Default: DialectSQLite.
func WithSQLDialect(dialect SQLDialect) SQLOption {
	return func(c *sqlConfig) {
		c.dialect = dialect
	}
}

// NewSQLBackend creates a new SQL-backed backend on an open database.
func NewSQLBackend(db *sql.DB, opts ...SQLOption) *SQLBackend {
	cfg := &sqlConfig{
		tableName: "electa_local_storage",
		dialect:   DialectSQLite,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &SQLBackend{
		db:        db,
		tableName: cfg.tableName,
		dialect:   cfg.dialect,
	}
}

// Migrate creates the storage table if it does not exist.
func (s *SQLBackend) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			scope      TEXT NOT NULL,
			item_key   TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (scope, item_key)
		)
	`, s.tableName)
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// placeholder returns the placeholder syntax for the dialect.
func (s *SQLBackend) placeholder(n int) string {
	if s.dialect == DialectPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Get returns the value stored under key in scope.
func (s *SQLBackend) Get(ctx context.Context, scope, key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}

	query := fmt.Sprintf(`SELECT value FROM %s WHERE scope = %s AND item_key = %s`,
		s.tableName, s.placeholder(1), s.placeholder(2))

	var value string
	err := s.db.QueryRowContext(ctx, query, scope, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key in scope.
func (s *SQLBackend) Set(ctx context.Context, scope, key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	var query string
	switch s.dialect {
	case DialectPostgreSQL:
		query = fmt.Sprintf(`
			INSERT INTO %s (scope, item_key, value, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (scope, item_key) DO UPDATE SET
				value = EXCLUDED.value,
				updated_at = NOW()
		`, s.tableName)
	default:
		query = fmt.Sprintf(`
			INSERT OR REPLACE INTO %s (scope, item_key, value, updated_at)
			VALUES (?, ?, ?, datetime('now'))
		`, s.tableName)
	}

	_, err := s.db.ExecContext(ctx, query, scope, key, value)
	return err
}

// Delete removes key from scope.
func (s *SQLBackend) Delete(ctx context.Context, scope, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE scope = %s AND item_key = %s`,
		s.tableName, s.placeholder(1), s.placeholder(2))
	_, err := s.db.ExecContext(ctx, query, scope, key)
	return err
}

// Close marks the backend as closed.
// Note: This does not close the underlying database connection,
// as it may be shared with other components.
func (s *SQLBackend) Close() error {
	s.closed.Store(true)
	return nil
}
