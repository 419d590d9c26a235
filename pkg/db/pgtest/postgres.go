// Package pgtest connects repository tests to a real Postgres database.
// Tests are skipped when ART_TEST_DB_DSN is not set.
package pgtest

import (
	"context"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lumenarts/gallery-api/pkg/config"
	"github.com/lumenarts/gallery-api/pkg/migrate"
)

// Open migrates the test database to the latest schema and returns a
// transaction that is rolled back when the test ends, so tests never see
// each other's rows. Run with -p 1 so packages do not migrate concurrently.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(config.EnvTestDBDSN)
	if dsn == "" {
		t.Skipf("%s is not set", config.EnvTestDBDSN)
	}

	conn, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrator, err := migrate.New(sqlDB, migrate.Embedded())
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}
	if _, err := migrator.Up(context.Background()); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin test tx: %v", tx.Error)
	}
	t.Cleanup(func() { tx.Rollback() })
	return tx
}
