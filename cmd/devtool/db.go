package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/realmkeeper/internal/config"
	"github.com/osse101/realmkeeper/internal/database"
)

// connect opens a pool using the same environment as the server
func connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	PrintInfo("Connecting to %s:%s/%s as %s", cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser)
	return database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns,
		database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
}
