package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/pressly/goose/v3"
)

const DefaultDir = "migrations"

// Run executes a goose command against db.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// UpFromPool applies pending migrations through a database/sql view of the pool.
func UpFromPool(ctx context.Context, pool *pgxpool.Pool, dir string, logg *logger.Logger) error {
	if pool == nil {
		return fmt.Errorf("pool is required")
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	ctx = logg.WithField(ctx, "dir", dir)
	logg.Info(ctx, "running goose migrations")

	if err := Run(ctx, sqlDB, dir, "up"); err != nil {
		return err
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}

// Validate parses every migration file in dir without touching a database.
func Validate(dir string) (int, error) {
	migrations, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("collect migrations: %w", err)
	}
	if len(migrations) == 0 {
		return 0, fmt.Errorf("no migrations found in %s", dir)
	}
	return len(migrations), nil
}
