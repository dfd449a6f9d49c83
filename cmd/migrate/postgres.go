package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
)

const postgresVersionTableDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func migratePostgres(ctx context.Context, dsn string, files []migration) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, postgresVersionTableDDL); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	rows, err := conn.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	for _, m := range pending(files, applied) {
		content, err := m.read()
		if err != nil {
			return err
		}

		logger.Info(ctx, "applying migration", "version", m.Version)
		if err := applyPostgresMigration(ctx, conn, m.Version, content); err != nil {
			return fmt.Errorf("failed to apply %s: %w", m.Version, err)
		}
	}

	return nil
}

// applyPostgresMigration runs one file and records it in the same transaction.
func applyPostgresMigration(ctx context.Context, conn *pgx.Conn, version, content string) error {
	return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
		// No arguments: pgx uses the simple protocol, which accepts multiple statements
		if _, err := tx.Exec(ctx, content); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version)
		return err
	})
}
