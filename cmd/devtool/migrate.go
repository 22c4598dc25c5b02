package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"

	"github.com/osse101/realmkeeper/internal/database/migrations"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}

	ctx := context.Background()
	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		PrintHeader("Applying migrations")
		if err := migrations.Up(ctx, pool); err != nil {
			return err
		}
	case "down":
		PrintHeader("Rolling back last migration")
		if err := migrations.Down(ctx, pool); err != nil {
			return err
		}
	case "status":
		return c.status(ctx, pool)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}

	PrintSuccess("Migrations complete")
	return nil
}

func (c *MigrateCommand) status(ctx context.Context, pool *pgxpool.Pool) error {
	provider, closeDB, err := migrations.NewProvider(pool)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	PrintHeader("Migration status")
	for _, s := range statuses {
		if s.State == goose.StateApplied {
			PrintSuccess("%05d %s (applied %s)", s.Source.Version, s.Source.Path, s.AppliedAt.Format("2006-01-02 15:04:05"))
			continue
		}
		PrintWarning("%05d %s (%s)", s.Source.Version, s.Source.Path, s.State)
	}
	return nil
}
