// Package migrations embeds the SQL schema and applies it with goose.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/realmkeeper/internal/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

// FS returns the migration files rooted at the migrations directory
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewProvider builds a goose provider over the pool
func NewProvider(pool *pgxpool.Pool) (*goose.Provider, func() error, error) {
	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS())
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf(ErrFmtProvider, err)
	}
	return provider, db.Close, nil
}

// Up applies every pending migration
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	provider, closeDB, err := NewProvider(pool)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf(ErrFmtApply, err)
	}

	log := logger.FromContext(ctx)
	for _, r := range results {
		log.Info(LogMsgApplied, "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf(ErrFmtVersion, err)
	}
	log.Info(LogMsgUpToDate, "version", version, "applied", len(results))
	return nil
}

// Down rolls back the most recent migration
func Down(ctx context.Context, pool *pgxpool.Pool) error {
	provider, closeDB, err := NewProvider(pool)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf(ErrFmtRollback, err)
	}
	logger.FromContext(ctx).Info(LogMsgRolledBack, "version", result.Source.Version)
	return nil
}
