package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/yigit/schoolreg/internal/config"
	"github.com/yigit/schoolreg/internal/pkg/logger"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Database wraps the shared *sql.DB together with the dialect it speaks.
type Database struct {
	SQL     *sql.DB
	Dialect string

	pool *pgxpool.Pool
}

// Open connects to the configured store and verifies the connection.
func Open(cfg *config.Config) (*Database, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return openPostgres(cfg)
	case config.DriverSQLite:
		return openSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// openPostgres creates a pgx connection pool and exposes it through database/sql
func openPostgres(cfg *config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	// Connection pool configuration
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = maxLifetime

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &Database{
		SQL:     stdlib.OpenDBFromPool(pool),
		Dialect: config.DriverPostgres,
		pool:    pool,
	}, nil
}

func openSQLite(cfg *config.Config) (*Database, error) {
	sqlDB, err := sql.Open("sqlite", cfg.GetSQLiteDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Every new connection to :memory: would see an empty database.
	if cfg.IsInMemorySQLite() {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &Database{SQL: sqlDB, Dialect: config.DriverSQLite}, nil
}

// NewInMemory opens a private in-memory SQLite database. Used by tests and the
// zero-config development mode.
func NewInMemory() (*Database, error) {
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = ":memory:"
	return openSQLite(cfg)
}

// Builder returns a squirrel statement builder with the dialect's placeholders.
func (db *Database) Builder() sq.StatementBuilderType {
	return StatementBuilder(db.Dialect)
}

// StatementBuilder returns a squirrel statement builder for dialect.
func StatementBuilder(dialect string) sq.StatementBuilderType {
	if dialect == config.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Ping verifies the store is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}

// Close closing method
func (db *Database) Close() {
	if db.SQL != nil {
		if err := db.SQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close database handle")
		}
	}
	if db.pool != nil {
		db.pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs a function within a transaction
func WithTransaction(ctx context.Context, sqlDB *sql.DB, fn TransactionFn) error {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithTransaction runs fn in a transaction on this database.
func (db *Database) WithTransaction(ctx context.Context, fn TransactionFn) error {
	return WithTransaction(ctx, db.SQL, fn)
}
