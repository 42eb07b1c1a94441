package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolreg/internal/config"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Source returns the embedded migration files for dialect.
func Source(dialect string) (source.Driver, error) {
	switch dialect {
	case config.DriverPostgres, config.DriverSQLite:
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
	sub, err := fs.Sub(files, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return iofs.New(sub, ".")
}

// Migrator manages database migrations
type Migrator struct {
	db      *sql.DB
	dialect string
	logger  zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB, dialect string, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		db:      db,
		dialect: dialect,
		logger:  lgr,
	}
}

// Up applies every pending migration. Running it on an up-to-date schema is a no-op.
func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, func(mg *migrate.Migrate) error {
		if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		return nil
	})
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(ctx context.Context, steps int) error {
	if steps < 1 {
		return fmt.Errorf("invalid number of steps %d", steps)
	}
	return m.run(ctx, func(mg *migrate.Migrate) error {
		if err := mg.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		return nil
	})
}

// Force sets the schema version without running migrations, clearing the dirty flag.
func (m *Migrator) Force(ctx context.Context, version int) error {
	return m.run(ctx, func(mg *migrate.Migrate) error {
		return mg.Force(version)
	})
}

// Version reports the current schema version.
func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := m.run(ctx, func(mg *migrate.Migrate) error {
		var err error
		version, dirty, err = mg.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})
	return version, dirty, err
}

// run builds a migrate instance over the shared handle. Neither the instance
// nor its database driver is closed: both would close the shared *sql.DB.
func (m *Migrator) run(ctx context.Context, fn func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := Source(m.dialect)
	if err != nil {
		return err
	}
	defer src.Close()

	var driver database.Driver
	switch m.dialect {
	case config.DriverPostgres:
		driver, err = migratepgx.WithInstance(m.db, &migratepgx.Config{})
	case config.DriverSQLite:
		driver, err = migratesqlite.WithInstance(m.db, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", src, m.dialect, driver)
	if err != nil {
		return fmt.Errorf("failed to initialise migrations: %w", err)
	}
	mg.Log = &migrateLogger{logger: m.logger}

	return fn(mg)
}

// migrateLogger adapts zerolog to migrate.Logger.
type migrateLogger struct {
	logger zerolog.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return l.logger.GetLevel() <= zerolog.DebugLevel
}
