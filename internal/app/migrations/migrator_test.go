package migrations

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/schoolreg/internal/db"
)

func newTestMigrator(t *testing.T) (*Migrator, *db.Database) {
	t.Helper()

	database, err := db.NewInMemory()
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(database.Close)

	return NewMigrator(database.SQL, database.Dialect, zerolog.Nop()), database
}

func tableExists(t *testing.T, database *db.Database, name string) bool {
	t.Helper()
	var count int
	err := database.SQL.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return count == 1
}

func TestMigratorUpDownKeepsHandleOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, database := newTestMigrator(t)

	for i := 0; i < 2; i++ {
		if err := m.Up(ctx); err != nil {
			t.Fatalf("Up() #%d error = %v", i+1, err)
		}
	}

	version, dirty, err := m.Version(ctx)
	if err != nil || version != 1 || dirty {
		t.Fatalf("Version() = %d, %v, %v, want 1, false, nil", version, dirty, err)
	}
	for _, table := range []string{"users", "courses", "enrollments"} {
		if !tableExists(t, database, table) {
			t.Errorf("table %s missing after Up", table)
		}
	}

	if err := m.Down(ctx, 1); err != nil {
		t.Fatalf("Down(1) error = %v", err)
	}
	if tableExists(t, database, "users") {
		t.Error("users table still present after Down")
	}
	version, _, err = m.Version(ctx)
	if err != nil || version != 0 {
		t.Fatalf("Version() after Down = %d, %v, want 0, nil", version, err)
	}

	if err := database.Ping(ctx); err != nil {
		t.Fatalf("Ping() after migrations error = %v", err)
	}
	if err := m.Up(ctx); err != nil {
		t.Fatalf("Up() after Down error = %v", err)
	}
}

func TestMigratorRejectsBadInput(t *testing.T) {
	t.Parallel()
	m, _ := newTestMigrator(t)

	if err := m.Down(context.Background(), 0); err == nil {
		t.Error("Down(0) error = nil, want error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Up(ctx); err == nil {
		t.Error("Up(canceled) error = nil, want error")
	}

	if _, err := Source("mysql"); err == nil {
		t.Error("Source(mysql) error = nil, want error")
	}
	for _, dialect := range []string{"postgres", "sqlite"} {
		src, err := Source(dialect)
		if err != nil {
			t.Fatalf("Source(%s) error = %v", dialect, err)
		}
		if _, err := src.First(); err != nil {
			t.Errorf("Source(%s).First() error = %v", dialect, err)
		}
		_ = src.Close()
	}
}
