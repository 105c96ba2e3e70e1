// Package database holds the process-wide database connection singleton,
// adapted from the teacher's PostgreSQLClient: a thin *sql.DB wrapper with
// an explicit constructor and health check, initialized once at startup
// and torn down at shutdown per §5's shared-resource policy.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the bounded connection pool used by the POI store
// and the pgvector-backed vector index.
type PostgresClient struct {
	DB *sql.DB
}

// Config bounds the connection pool per §5 ("typical 10-50 connections").
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewPostgresClient opens and pings the pool, failing fast if the database
// is unreachable at startup.
func NewPostgresClient(cfg Config) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open pool: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 20
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}

	return &PostgresClient{DB: db}, nil
}

// Close releases the pool, called once at shutdown.
func (c *PostgresClient) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// HealthCheck reports whether the pool can still reach the database.
func (c *PostgresClient) HealthCheck() error {
	if c.DB == nil {
		return fmt.Errorf("postgres: client not initialized")
	}
	return c.DB.Ping()
}
