package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/idwallet-server/database"
)

// uniqueViolation is the SQLSTATE Postgres reports for unique constraint failures.
const uniqueViolation = "23505"

// Connection is the pool shared by every wallet repository.
type Connection struct {
	*pgxpool.Pool
}

// PoolOption tunes the pool before it is opened.
type PoolOption func(*pgxpool.Config)

// WithMaxConns caps open connections. Non-positive values keep the pgx default.
func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

// WithConnMaxIdleTime closes connections idle for longer than d.
func WithConnMaxIdleTime(d time.Duration) PoolOption {
	return func(c *pgxpool.Config) {
		if d > 0 {
			c.MaxConnIdleTime = d
		}
	}
}

// NewConection applies the wallet migrations and opens a verified pool.
func NewConection(ctx context.Context, dsn string, opts ...PoolOption) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	for _, opt := range opts {
		opt(conf)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	return &Connection{Pool: pool}, nil
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

// Ping backs the health endpoint.
func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return errors.New("postgres pool is not initialized")
	}
	return s.Pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
