package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	portfoliomigrations "github.com/Black-And-White-Club/portfolio-bot/app/modules/portfolio/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"
)

const (
	sqlitePrefix = "sqlite:"
	memoryDSN    = ":memory:"
)

// Open connects to the database named by dsn and returns a bun handle with the
// matching dialect. DSNs starting with "postgres://" or "postgresql://" use
// pgdriver; "sqlite:<path>" (or "sqlite::memory:") uses the SQLite shim.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return openPostgres(ctx, dsn)
	case strings.HasPrefix(dsn, sqlitePrefix):
		return openSQLite(ctx, strings.TrimPrefix(dsn, sqlitePrefix))
	default:
		return nil, fmt.Errorf("unsupported database DSN %q", redact(dsn))
	}
}

func openPostgres(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func openSQLite(ctx context.Context, path string) (*bun.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite DSN is missing a file path")
	}
	source := "file:" + path
	if path == memoryDSN {
		source = "file::memory:"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// One connection keeps PRAGMA state and an in-memory database alive, and
	// serializes writers the way SQLite expects.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(time.Duration(0))

	if _, err := sqldb.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Migrate creates the bun migration tables and applies pending portfolio
// migrations. Running it on an up-to-date schema is a no-op.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	migrator := migrate.NewMigrator(db, portfoliomigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	if err := migrator.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock migrations: %w", err)
	}
	defer func() {
		if err := migrator.Unlock(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to unlock migrations", slog.Any("error", err))
		}
	}()

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run portfolio migrations: %w", err)
	}
	if group.IsZero() {
		logger.InfoContext(ctx, "No portfolio migrations to run")
	} else {
		logger.InfoContext(ctx, "Ran portfolio migrations", slog.Int64("group_id", group.ID))
	}
	return nil
}

// redact strips credentials from a DSN before it is logged or returned.
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
