// Command migrate creates the schema for the configured store.
//
//	migrate -driver spanner  -project p -instance i -database d
//	migrate -driver postgres -dsn postgres://...
//
// Applied files are recorded in a schema_migrations table and skipped on
// later runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
)

var (
	driver     = flag.String("driver", getEnvOrDefault("STORAGE_DRIVER", "spanner"), "Store to migrate: spanner or postgres")
	migrateDir = flag.String("migrations", "", "Directory containing migration SQL files (default migrations/<driver>)")

	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "product-catalog-db"), "Spanner database ID")

	dsn = flag.String("dsn", os.Getenv("DATABASE_DSN"), "PostgreSQL connection string")
)

func main() {
	flag.Parse()

	_ = logger.Init(logger.Config{Level: getEnvOrDefault("LOG_LEVEL", "info"), Format: "text"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error(ctx, "migration failed", "error", err)
		os.Exit(1)
	}

	logger.Info(ctx, "migrations completed successfully")
}

func run(ctx context.Context) error {
	dir := *migrateDir
	if dir == "" {
		dir = filepath.Join("migrations", *driver)
	}

	files, err := migrationFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn(ctx, "no migration files found", "dir", dir)
		return nil
	}

	switch *driver {
	case "spanner":
		return migrateSpanner(ctx, spannerTarget{
			project:  *projectID,
			instance: *instanceID,
			database: *databaseID,
		}, files)
	case "postgres":
		if *dsn == "" {
			return fmt.Errorf("-dsn or DATABASE_DSN is required for postgres")
		}
		return migratePostgres(ctx, *dsn, files)
	default:
		return fmt.Errorf("unknown driver %q", *driver)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
