package main

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/foxshop-service/internal/pkg/committer"
	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
)

const versionTable = "schema_migrations"

const spannerVersionTableDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
  version STRING(MAX) NOT NULL,
  applied_at TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp = true),
) PRIMARY KEY (version)`

type spannerTarget struct {
	project  string
	instance string
	database string
}

func (t spannerTarget) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", t.project, t.instance)
}

func (t spannerTarget) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", t.instancePath(), t.database)
}

func emulatorMode() bool {
	return os.Getenv("SPANNER_EMULATOR_HOST") != ""
}

func migrateSpanner(ctx context.Context, t spannerTarget, files []migration) error {
	if emulatorMode() {
		logger.Info(ctx, "using Spanner emulator", "host", os.Getenv("SPANNER_EMULATOR_HOST"))

		// Only the emulator gets an instance on demand
		if err := ensureInstance(ctx, t); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	if err := ensureDatabase(ctx, adminClient, t); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	if err := updateDDL(ctx, adminClient, t, []string{spannerVersionTableDDL}); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	client, err := spanner.NewClient(ctx, t.databasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()
	comm := committer.NewCommitter(client)

	applied, err := spannerAppliedVersions(ctx, client)
	if err != nil {
		return err
	}

	for _, m := range pending(files, applied) {
		content, err := m.read()
		if err != nil {
			return err
		}

		logger.Info(ctx, "applying migration", "version", m.Version)
		if err := updateDDL(ctx, adminClient, t, splitDDLStatements(content)); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", m.Version, err)
		}

		if err := comm.Apply(ctx, versionPlan(m.Version)); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.Version, err)
		}
	}

	return nil
}

// versionPlan records one applied migration file.
func versionPlan(version string) *committer.CommitPlan {
	plan := committer.NewPlan()
	plan.Add(spanner.InsertOrUpdate(versionTable,
		[]string{"version", "applied_at"},
		[]interface{}{version, spanner.CommitTimestamp}))
	return plan
}

func ensureInstance(ctx context.Context, t spannerTarget) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: t.instancePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check instance: %w", err)
	}

	logger.Info(ctx, "creating instance", "instance", t.instance)
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + t.project,
		InstanceId: t.instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", t.project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}

	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to wait for instance creation: %w", err)
	}
	return nil
}

func ensureDatabase(ctx context.Context, adminClient *database.DatabaseAdminClient, t spannerTarget) error {
	_, err := adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: t.databasePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to check database: %w", err)
	}

	logger.Info(ctx, "creating database", "database", t.database)
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          t.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", t.database),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}

	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

func updateDDL(ctx context.Context, adminClient *database.DatabaseAdminClient, t spannerTarget, statements []string) error {
	op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   t.databasePath(),
		Statements: statements,
	})
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func spannerAppliedVersions(ctx context.Context, client *spanner.Client) (map[string]bool, error) {
	iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT version FROM schema_migrations"})
	defer iter.Stop()

	applied := make(map[string]bool)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return applied, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read applied migrations: %w", err)
		}

		var version string
		if err := row.Columns(&version); err != nil {
			return nil, fmt.Errorf("failed to parse migration version: %w", err)
		}
		applied[version] = true
	}
}
