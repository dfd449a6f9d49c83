package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/light-bringer/foxshop-service/internal/app/product/repo/gormrepo"
	"github.com/light-bringer/foxshop-service/internal/pkg/database"
)

// SetupPostgresTest opens TEST_DATABASE_DSN, migrates it and empties the
// tables. The test is skipped when no DSN is configured.
func SetupPostgresTest(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{DSN: dsn, MaxOpenConns: 5, MaxIdleConns: 5})
	require.NoError(t, err, "failed to open database")
	require.NoError(t, gormrepo.AutoMigrate(ctx, db), "failed to migrate database")

	TruncateTables(t, db)

	cleanup := func() {
		TruncateTables(t, db)
		_ = database.Close(db)
	}
	return db, cleanup
}

// SetupPostgresStores wires the gorm repositories over a clean database.
func SetupPostgresStores(t *testing.T) (*Stores, *gorm.DB, func()) {
	t.Helper()

	db, cleanup := SetupPostgresTest(t)
	stores := &Stores{
		Products: gormrepo.NewProductRepo(db),
		History:  gormrepo.NewPriceHistoryRepo(db),
		Reads:    gormrepo.NewReadModel(db),
	}
	return stores, db, cleanup
}

// TruncateTables empties both tables and restarts their ID sequences.
func TruncateTables(t *testing.T, db *gorm.DB) {
	t.Helper()

	err := db.Exec("TRUNCATE TABLE price_history, products RESTART IDENTITY CASCADE").Error
	require.NoError(t, err, "failed to truncate tables")
}
