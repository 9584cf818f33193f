package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Source returns the embedded migration files as a golang-migrate source.
func Source() (source.Driver, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return src, nil
}

// EnsureMigrated applies all pending migrations and returns the resulting schema version.
func EnsureMigrated(db *sql.DB, logger *slog.Logger, dbHost string) (uint, error) {
	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_start", "event", "db_migration_start", "status", "in_progress")

	src, err := Source()
	if err != nil {
		return 0, fail(log, start, err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return 0, fail(log, start, fmt.Errorf("create migrate driver: %w", err))
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return 0, fail(log, start, fmt.Errorf("create migrate instance: %w", err))
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info("db_migration_skip",
			"event", "db_migration_skip",
			"status", "success",
			"detail", "schema already up to date",
			"duration_ms", time.Since(start).Milliseconds(),
		)
	case err != nil:
		return 0, fail(log, start, fmt.Errorf("run migrations: %w", err))
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fail(log, start, fmt.Errorf("read migration version: %w", err))
	}
	if dirty {
		return version, fail(log, start, fmt.Errorf("schema version %d is dirty", version))
	}

	log.Info("db_migration_success",
		"event", "db_migration_success",
		"status", "success",
		"version", version,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return version, nil
}

func fail(log *slog.Logger, start time.Time, err error) error {
	log.Error("db_migration_failed",
		"event", "db_migration_failed",
		"status", "error",
		"error_message", err.Error(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return err
}
